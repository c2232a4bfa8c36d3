package handler

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/user/pnmovie/internal/middleware"
	"github.com/user/pnmovie/internal/model"
	"github.com/user/pnmovie/internal/utils"
)

type reviewRequest struct {
	MovieID interface{} `json:"movie_id"`
	Rating  interface{} `json:"rating"`
	Comment string      `json:"comment"`
}

// AddReview stores a review with a snapshot of the submitter's display
// name. A user may post multiple reviews for the same movie.
func (h *Handler) AddReview(c *gin.Context) {
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, http.StatusBadRequest, "Thiếu movie_id hoặc rating")
		return
	}

	movieID := coerceID(req.MovieID)
	if movieID == "" || req.Rating == nil {
		utils.Fail(c, http.StatusBadRequest, "Thiếu movie_id hoặc rating")
		return
	}

	rating, ok := parseRating(req.Rating)
	if !ok {
		utils.Fail(c, http.StatusBadRequest, "Rating không hợp lệ")
		return
	}
	if rating < 0 || rating > 5 {
		utils.Fail(c, http.StatusBadRequest, "Rating phải từ 0 đến 5")
		return
	}

	user := middleware.CurrentUser(c)
	username := user.DisplayName
	if username == "" {
		username = user.Username
	}

	review := &model.Review{
		MovieID:  movieID,
		UserID:   user.Username,
		Username: username,
		Rating:   rating,
		Comment:  req.Comment,
	}
	if err := h.Repos.Review.Create(c.Request.Context(), review); err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Lỗi máy chủ")
		return
	}
	utils.SuccessMessage(c, "Đã thêm đánh giá!")
}

// ListReviews returns all reviews for a movie, newest first.
func (h *Handler) ListReviews(c *gin.Context) {
	reviews, err := h.Repos.Review.ListByMovie(c.Request.Context(), c.Param("movie_id"))
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Lỗi máy chủ")
		return
	}

	out := make([]gin.H, 0, len(reviews))
	for _, r := range reviews {
		username := r.Username
		if username == "" {
			username = "Ẩn danh"
		}
		var createdAt interface{}
		if !r.CreatedAt.IsZero() {
			createdAt = r.CreatedAt.Format(time.RFC3339)
		}
		out = append(out, gin.H{
			"id":         r.ID.Hex(),
			"user_id":    r.UserID,
			"username":   username,
			"rating":     r.Rating,
			"comment":    r.Comment,
			"created_at": createdAt,
		})
	}
	utils.Success(c, http.StatusOK, gin.H{"reviews": out})
}

// ReviewSummary returns {avgRating, count} for a movie; zero reviews yield
// {avgRating: 0, count: 0}.
func (h *Handler) ReviewSummary(c *gin.Context) {
	summary, err := h.Repos.Review.Summary(c.Request.Context(), c.Param("movie_id"))
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Lỗi máy chủ")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// parseRating accepts a JSON number or a numeric string. ParseFloat
// admits "NaN" and "Inf", and NaN slips past range checks, so only
// finite values count as valid.
func parseRating(v interface{}) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, isFinite(t)
	case string:
		f, err := strconv.ParseFloat(t, 64)
		return f, err == nil && isFinite(f)
	default:
		return 0, false
	}
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
