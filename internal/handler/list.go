package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/user/pnmovie/internal/middleware"
	"github.com/user/pnmovie/internal/model"
	"github.com/user/pnmovie/internal/repository"
	"github.com/user/pnmovie/internal/utils"
)

type listRequest struct {
	MovieID interface{} `json:"movie_id"`
	Source  string      `json:"source"`
}

// entry coerces the request into a canonical list entry. movie_id may
// arrive as a string or a number; source defaults to "local".
func (r *listRequest) entry() model.ListEntry {
	source := r.Source
	if source == "" {
		source = "local"
	}
	return model.ListEntry{ID: coerceID(r.MovieID), Source: source}
}

func coerceID(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

func (h *Handler) addToList(c *gin.Context, repo *repository.ListRepository, message string) {
	var req listRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, http.StatusBadRequest, "Thiếu movie_id hoặc source!")
		return
	}
	entry := req.entry()
	if entry.ID == "" {
		utils.Fail(c, http.StatusBadRequest, "Thiếu movie_id hoặc source!")
		return
	}

	user := middleware.CurrentUser(c)
	if err := repo.Add(c.Request.Context(), user.Username, entry); err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Lỗi máy chủ")
		return
	}
	utils.SuccessMessage(c, message)
}

func (h *Handler) removeFromList(c *gin.Context, repo *repository.ListRepository, message string) {
	var req listRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, http.StatusBadRequest, "Thiếu movie_id hoặc source!")
		return
	}

	user := middleware.CurrentUser(c)
	if err := repo.Remove(c.Request.Context(), user.Username, req.entry()); err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Lỗi máy chủ")
		return
	}
	utils.SuccessMessage(c, message)
}

func (h *Handler) getList(c *gin.Context, repo *repository.ListRepository) {
	user := middleware.CurrentUser(c)
	entries, err := repo.Get(c.Request.Context(), user.Username)
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Lỗi máy chủ")
		return
	}
	utils.Success(c, http.StatusOK, gin.H{"movies": entries})
}

// AddFavorite adds a (movie_id, source) pair to the caller's favorites.
func (h *Handler) AddFavorite(c *gin.Context) {
	h.addToList(c, h.Repos.Favorite, "Đã thêm vào yêu thích!")
}

// RemoveFavorite removes the pair; removing a non-member succeeds.
func (h *Handler) RemoveFavorite(c *gin.Context) {
	h.removeFromList(c, h.Repos.Favorite, "Đã xóa khỏi yêu thích!")
}

// GetFavorites returns the caller's normalized favorites.
func (h *Handler) GetFavorites(c *gin.Context) {
	h.getList(c, h.Repos.Favorite)
}

// AddWatchLater adds a pair to the caller's watch-later list.
func (h *Handler) AddWatchLater(c *gin.Context) {
	h.addToList(c, h.Repos.WatchLater, "Đã thêm vào danh sách xem sau!")
}

// RemoveWatchLater removes the pair from the watch-later list.
func (h *Handler) RemoveWatchLater(c *gin.Context) {
	h.removeFromList(c, h.Repos.WatchLater, "Đã xóa khỏi danh sách xem sau!")
}

// GetWatchLater returns the caller's normalized watch-later list.
func (h *Handler) GetWatchLater(c *gin.Context) {
	h.getList(c, h.Repos.WatchLater)
}
