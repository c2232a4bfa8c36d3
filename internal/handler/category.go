package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/user/pnmovie/internal/repository"
	"github.com/user/pnmovie/internal/utils"
)

// ==================== Category management ====================

// ListCategories is public.
func (h *Handler) ListCategories(c *gin.Context) {
	cats, err := h.Repos.Category.ListAll(c.Request.Context())
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Lỗi máy chủ")
		return
	}

	out := make([]gin.H, 0, len(cats))
	for _, cat := range cats {
		out = append(out, gin.H{"id": cat.ID.Hex(), "name": cat.Name})
	}
	utils.Success(c, http.StatusOK, gin.H{"categories": out})
}

type categoryRequest struct {
	Name string `json:"name"`
}

// CreateCategory rejects duplicate names. Admin only.
func (h *Handler) CreateCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		utils.Fail(c, http.StatusBadRequest, "Thiếu tên thể loại!")
		return
	}

	if err := h.Repos.Category.Create(c.Request.Context(), req.Name); err != nil {
		if errors.Is(err, repository.ErrDuplicateName) {
			utils.Fail(c, http.StatusBadRequest, "Tên thể loại đã tồn tại!")
			return
		}
		utils.Fail(c, http.StatusInternalServerError, "Lỗi máy chủ")
		return
	}
	utils.SuccessMessage(c, "Đã thêm thể loại!")
}

// UpdateCategory renames a category. Admin only.
func (h *Handler) UpdateCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		utils.Fail(c, http.StatusBadRequest, "Thiếu tên thể loại!")
		return
	}

	matched, err := h.Repos.Category.Update(c.Request.Context(), c.Param("id"), req.Name)
	if err != nil || !matched {
		utils.Fail(c, http.StatusNotFound, "Không tìm thấy thể loại!")
		return
	}
	utils.SuccessMessage(c, "Đã cập nhật!")
}

// DeleteCategory removes a category. Admin only.
func (h *Handler) DeleteCategory(c *gin.Context) {
	deleted, err := h.Repos.Category.Delete(c.Request.Context(), c.Param("id"))
	if err != nil || !deleted {
		utils.Fail(c, http.StatusNotFound, "Không tìm thấy thể loại!")
		return
	}
	utils.SuccessMessage(c, "Đã xoá thể loại!")
}
