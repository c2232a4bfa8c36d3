package handler

import (
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ==================== TMDb proxy ====================

// writeUpstream relays the upstream body and status, or a passthrough error
// when the call itself failed. No retry anywhere.
func writeUpstream(c *gin.Context, body []byte, status int, err error) {
	if err != nil {
		log.Printf("[TMDB] proxy error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "TMDb proxy failed", "detail": err.Error()})
		return
	}
	c.Data(status, "application/json", body)
}

func localeParams() url.Values {
	params := url.Values{}
	params.Set("language", "vi-VN")
	return params
}

// TMDBGenres returns the movie genre list (cached briefly).
func (h *Handler) TMDBGenres(c *gin.Context) {
	body, status, err := h.TMDB.GetCached("/genre/movie/list", localeParams())
	writeUpstream(c, body, status, err)
}

// TMDBPopular proxies the popular movie list.
func (h *Handler) TMDBPopular(c *gin.Context) {
	params := localeParams()
	params.Set("page", c.DefaultQuery("page", "1"))
	body, status, err := h.TMDB.Get("/movie/popular", params)
	writeUpstream(c, body, status, err)
}

// TMDBTopRated proxies the top-rated movie list.
func (h *Handler) TMDBTopRated(c *gin.Context) {
	body, status, err := h.TMDB.Get("/movie/top_rated", localeParams())
	writeUpstream(c, body, status, err)
}

// TMDBMovieDetail proxies a movie detail lookup.
func (h *Handler) TMDBMovieDetail(c *gin.Context) {
	body, status, err := h.TMDB.Get("/movie/"+c.Param("id"), localeParams())
	writeUpstream(c, body, status, err)
}

// TMDBMovieVideos proxies a movie's videos.
func (h *Handler) TMDBMovieVideos(c *gin.Context) {
	body, status, err := h.TMDB.Get("/movie/"+c.Param("id")+"/videos", nil)
	writeUpstream(c, body, status, err)
}

// TMDBMovieCredits proxies a movie's credits.
func (h *Handler) TMDBMovieCredits(c *gin.Context) {
	body, status, err := h.TMDB.Get("/movie/"+c.Param("id")+"/credits", nil)
	writeUpstream(c, body, status, err)
}

// TMDBMovieSimilar proxies similar movies.
func (h *Handler) TMDBMovieSimilar(c *gin.Context) {
	body, status, err := h.TMDB.Get("/movie/"+c.Param("id")+"/similar", localeParams())
	writeUpstream(c, body, status, err)
}

// TMDBMovieReviews proxies upstream reviews.
func (h *Handler) TMDBMovieReviews(c *gin.Context) {
	body, status, err := h.TMDB.Get("/movie/"+c.Param("id")+"/reviews", localeParams())
	writeUpstream(c, body, status, err)
}

// TMDBMovieImages proxies a movie's images.
func (h *Handler) TMDBMovieImages(c *gin.Context) {
	body, status, err := h.TMDB.Get("/movie/"+c.Param("id")+"/images", nil)
	writeUpstream(c, body, status, err)
}

// TMDBMovieKeywords proxies a movie's keywords.
func (h *Handler) TMDBMovieKeywords(c *gin.Context) {
	body, status, err := h.TMDB.Get("/movie/"+c.Param("id")+"/keywords", nil)
	writeUpstream(c, body, status, err)
}

// TMDBMovieRecommendations proxies recommendations.
func (h *Handler) TMDBMovieRecommendations(c *gin.Context) {
	body, status, err := h.TMDB.Get("/movie/"+c.Param("id")+"/recommendations", localeParams())
	writeUpstream(c, body, status, err)
}

// TMDBSearch proxies a movie search; query is required.
func (h *Handler) TMDBSearch(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing query param"})
		return
	}
	params := localeParams()
	params.Set("query", query)
	body, status, err := h.TMDB.Get("/search/movie", params)
	writeUpstream(c, body, status, err)
}

// TMDBDiscover forwards the filtered discover query with clamped
// pagination.
func (h *Handler) TMDBDiscover(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		page = 1
	}
	filters := map[string]string{
		"with_genres":            c.Query("with_genres"),
		"region":                 c.Query("region"),
		"with_origin_country":    c.Query("with_origin_country"),
		"with_original_language": c.Query("with_original_language"),
		"primary_release_year":   c.Query("primary_release_year"),
		"certification":          c.Query("certification"),
		"certification_country":  c.Query("certification_country"),
		"sort_by":                c.Query("sort_by"),
	}
	body, status, err := h.TMDB.Discover(page, filters)
	writeUpstream(c, body, status, err)
}

// TMDBLanguages proxies the language configuration (cached briefly).
func (h *Handler) TMDBLanguages(c *gin.Context) {
	body, status, err := h.TMDB.GetCached("/configuration/languages", nil)
	writeUpstream(c, body, status, err)
}

// TMDBCountriesConfig proxies the country configuration (cached briefly).
func (h *Handler) TMDBCountriesConfig(c *gin.Context) {
	body, status, err := h.TMDB.GetCached("/configuration/countries", nil)
	writeUpstream(c, body, status, err)
}

// Countries returns the fixed region list used by the front-end filters.
func (h *Handler) Countries(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"countries": []gin.H{
			{"id": "VN", "name": "Việt Nam"},
			{"id": "KR", "name": "Hàn Quốc"},
			{"id": "US", "name": "Mỹ"},
			{"id": "JP", "name": "Nhật Bản"},
			{"id": "CN", "name": "Trung Quốc"},
			{"id": "IN", "name": "Ấn Độ"},
		},
	})
}

// PopularActors returns one page of person records reshaped into cards.
func (h *Handler) PopularActors(c *gin.Context) {
	cards, status, err := h.TMDB.PopularActors(c.DefaultQuery("page", "1"))
	if err != nil {
		log.Printf("[TMDB] popular actors: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "TMDb proxy failed", "detail": err.Error()})
		return
	}
	if status != http.StatusOK {
		c.JSON(status, gin.H{"error": "TMDB error"})
		return
	}
	c.JSON(http.StatusOK, cards)
}

// AllActors merges several popular pages, deduplicated by id.
func (h *Handler) AllActors(c *gin.Context) {
	pages, err := strconv.Atoi(c.DefaultQuery("pages", "3"))
	if err != nil || pages < 1 {
		pages = 3
	}
	cards, err := h.TMDB.AllActors(pages)
	if err != nil {
		log.Printf("[TMDB] all actors: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "TMDb proxy failed", "detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, cards)
}

// ActorDetail joins person detail and credits into one record.
func (h *Handler) ActorDetail(c *gin.Context) {
	detail, status, err := h.TMDB.ActorDetail(c.Param("id"))
	if err != nil {
		log.Printf("[TMDB] actor detail: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "TMDb proxy failed", "detail": err.Error()})
		return
	}
	if status != http.StatusOK {
		c.JSON(status, gin.H{"error": "Not found"})
		return
	}
	c.JSON(http.StatusOK, detail)
}
