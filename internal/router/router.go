package router

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/user/pnmovie/internal/handler"
	"github.com/user/pnmovie/internal/middleware"
)

// RegisterRoutes registers every route of the API.
func RegisterRoutes(r *gin.Engine, h *handler.Handler) {
	requireAuth := middleware.RequireAuth(h.Config.SecretKey, h.Repos.User)
	requireAdmin := middleware.RequireAdmin()

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Uploaded media
	r.Static("/uploads/posters", filepath.Join(h.Config.UploadDir, "posters"))
	r.Static("/uploads/videos", filepath.Join(h.Config.UploadDir, "videos"))
	r.Static("/uploads/trailers", filepath.Join(h.Config.UploadDir, "trailers"))

	api := r.Group("/api")
	{
		// ==================== Auth & profile ====================
		api.POST("/register", h.Register)
		api.POST("/login", h.Login)
		api.GET("/profile", requireAuth, h.Profile)
		api.PATCH("/profile", requireAuth, h.UpdateProfile)
		api.POST("/request-otp", h.RequestOTP)
		api.POST("/verify-otp-reset", h.VerifyOTPReset)

		// ==================== Curated movie catalog ====================
		api.GET("/movies", h.ListMovies)
		api.GET("/movies/:id", h.GetMovie)
		api.POST("/movies", requireAuth, requireAdmin, h.CreateMovie)
		api.PUT("/movies/:id", requireAuth, requireAdmin, h.UpdateMovie)
		api.DELETE("/movies/:id", requireAuth, requireAdmin, h.DeleteMovie)

		// ==================== Per-user lists ====================
		api.POST("/favorite", requireAuth, h.AddFavorite)
		api.GET("/favorite", requireAuth, h.GetFavorites)
		api.DELETE("/favorite", requireAuth, h.RemoveFavorite)
		api.POST("/watchlater", requireAuth, h.AddWatchLater)
		api.GET("/watchlater", requireAuth, h.GetWatchLater)
		api.DELETE("/watchlater", requireAuth, h.RemoveWatchLater)

		// ==================== Reviews ====================
		api.POST("/reviews", requireAuth, h.AddReview)
		api.GET("/reviews/:movie_id", h.ListReviews)
		api.GET("/reviews/:movie_id/summary", h.ReviewSummary)

		// ==================== Admin users ====================
		api.GET("/users", requireAuth, requireAdmin, h.AdminListUsers)
		api.PATCH("/users/:username", requireAuth, requireAdmin, h.AdminUpdateUser)
		api.DELETE("/users/:username", requireAuth, requireAdmin, h.AdminDeleteUser)

		// ==================== Categories ====================
		api.GET("/categories", h.ListCategories)
		api.POST("/categories", requireAuth, requireAdmin, h.CreateCategory)
		api.PUT("/categories/:id", requireAuth, requireAdmin, h.UpdateCategory)
		api.DELETE("/categories/:id", requireAuth, requireAdmin, h.DeleteCategory)

		// ==================== TMDb proxy ====================
		tmdb := api.Group("/tmdb")
		{
			tmdb.GET("/genres", h.TMDBGenres)
			tmdb.GET("/popular", h.TMDBPopular)
			tmdb.GET("/top-rated", h.TMDBTopRated)
			tmdb.GET("/movie/:id", h.TMDBMovieDetail)
			tmdb.GET("/movie/:id/videos", h.TMDBMovieVideos)
			tmdb.GET("/movie/:id/credits", h.TMDBMovieCredits)
			tmdb.GET("/movie/:id/similar", h.TMDBMovieSimilar)
			tmdb.GET("/movie/:id/reviews", h.TMDBMovieReviews)
			tmdb.GET("/movie/:id/images", h.TMDBMovieImages)
			tmdb.GET("/movie/:id/keywords", h.TMDBMovieKeywords)
			tmdb.GET("/movie/:id/recommendations", h.TMDBMovieRecommendations)
			tmdb.GET("/discover", h.TMDBDiscover)
			tmdb.GET("/search", h.TMDBSearch)
			tmdb.GET("/countries", h.Countries)
			tmdb.GET("/configuration/languages", h.TMDBLanguages)
			tmdb.GET("/configuration/countries", h.TMDBCountriesConfig)
		}

		// ==================== Actors ====================
		api.GET("/actors", h.AllActors)
		api.GET("/actors/popular", h.PopularActors)
		api.GET("/actors/:id", h.ActorDetail)
	}
}
