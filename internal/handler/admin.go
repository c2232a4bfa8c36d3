package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/user/pnmovie/internal/middleware"
	"github.com/user/pnmovie/internal/utils"
)

// ==================== Admin user management ====================

// AdminListUsers returns every account with the password projected out.
func (h *Handler) AdminListUsers(c *gin.Context) {
	users, err := h.Repos.User.ListAll(c.Request.Context())
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Lỗi máy chủ")
		return
	}
	utils.Success(c, http.StatusOK, gin.H{"users": users})
}

// AdminDeleteUser removes an account by username. Admins cannot delete
// themselves.
func (h *Handler) AdminDeleteUser(c *gin.Context) {
	username := c.Param("username")
	if username == middleware.CurrentUser(c).Username {
		utils.Fail(c, http.StatusBadRequest, "Không thể xoá chính bạn!")
		return
	}

	deleted, err := h.Repos.User.Delete(c.Request.Context(), username)
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Lỗi máy chủ")
		return
	}
	if !deleted {
		utils.Fail(c, http.StatusNotFound, "User không tồn tại!")
		return
	}
	utils.SuccessMessage(c, "Đã xoá user!")
}

// AdminUpdateUser merges the allowed fields into the target account.
func (h *Handler) AdminUpdateUser(c *gin.Context) {
	username := c.Param("username")

	var body map[string]interface{}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.Fail(c, http.StatusBadRequest, "Thiếu thông tin")
		return
	}

	fields := map[string]interface{}{}
	for _, key := range []string{"displayName", "avatar", "gender", "role", "email"} {
		if v, ok := body[key]; ok {
			fields[key] = v
		}
	}
	if len(fields) > 0 {
		matched, err := h.Repos.User.UpdateFields(c.Request.Context(), username, fields)
		if err != nil {
			utils.Fail(c, http.StatusInternalServerError, "Lỗi máy chủ")
			return
		}
		if matched {
			utils.SuccessMessage(c, "Đã cập nhật user!")
			return
		}
	}
	utils.Fail(c, http.StatusNotFound, "User không tồn tại!")
}
