package handler

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/user/pnmovie/internal/middleware"
	"github.com/user/pnmovie/internal/service"
	"github.com/user/pnmovie/internal/utils"
)

type registerRequest struct {
	Username    string `json:"username" binding:"required"`
	Password    string `json:"password" binding:"required"`
	Email       string `json:"email" binding:"required"`
	DisplayName string `json:"displayName"`
	Avatar      string `json:"avatar"`
	Gender      string `json:"gender"`
}

// Register creates a new account with the default "user" role.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "Thiếu thông tin")
		return
	}

	existing, err := h.Repos.User.FindByUsername(c.Request.Context(), req.Username)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Lỗi máy chủ")
		return
	}
	if existing != nil {
		utils.Error(c, http.StatusBadRequest, "Tài khoản đã tồn tại")
		return
	}

	gender := req.Gender
	if gender == "" {
		gender = "other"
	}
	if _, err := h.Repos.User.Create(c.Request.Context(), req.Username, req.Password, req.Email, req.DisplayName, req.Avatar, gender); err != nil {
		// The unique index closes the race between the lookup and the insert.
		if mongo.IsDuplicateKeyError(err) {
			utils.Error(c, http.StatusBadRequest, "Tài khoản đã tồn tại")
			return
		}
		utils.Error(c, http.StatusInternalServerError, "Lỗi máy chủ")
		return
	}

	utils.Success(c, http.StatusCreated, gin.H{"message": "Đăng ký thành công"})
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login verifies credentials and issues a bearer token.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusUnauthorized, "Sai tài khoản hoặc mật khẩu")
		return
	}

	user, err := h.Repos.User.FindByUsername(c.Request.Context(), req.Username)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Lỗi máy chủ")
		return
	}
	if user == nil || !h.Repos.User.CheckPassword(user, req.Password) {
		utils.Error(c, http.StatusUnauthorized, "Sai tài khoản hoặc mật khẩu")
		return
	}

	token, err := middleware.GenerateToken(user.Username, h.Config.SecretKey, h.Config.JWTExpiry)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Lỗi máy chủ")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":       token,
		"role":        user.Role,
		"email":       user.Email,
		"username":    user.Username,
		"displayName": user.DisplayName,
		"avatar":      user.Avatar,
		"gender":      user.Gender,
	})
}

// Profile returns the authenticated user's public fields.
func (h *Handler) Profile(c *gin.Context) {
	user := middleware.CurrentUser(c)
	c.JSON(http.StatusOK, user.PublicProfile())
}

// UpdateProfile merges displayName/avatar/gender into the caller's account.
func (h *Handler) UpdateProfile(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var body map[string]interface{}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.Error(c, http.StatusBadRequest, "Thiếu thông tin")
		return
	}

	fields := map[string]interface{}{}
	for _, key := range []string{"displayName", "avatar", "gender"} {
		if v, ok := body[key]; ok {
			fields[key] = v
		}
	}
	if _, err := h.Repos.User.UpdateFields(c.Request.Context(), user.Username, fields); err != nil {
		utils.Error(c, http.StatusInternalServerError, "Lỗi máy chủ")
		return
	}

	updated, err := h.Repos.User.FindByUsername(c.Request.Context(), user.Username)
	if err != nil || updated == nil {
		utils.Error(c, http.StatusInternalServerError, "Lỗi máy chủ")
		return
	}
	utils.Success(c, http.StatusOK, gin.H{"user": updated.PublicProfile()})
}

type otpRequest struct {
	Email string `json:"email" binding:"required"`
}

// RequestOTP issues a reset code for a known email and mails it out. A new
// request supersedes any prior unused code for the same email.
func (h *Handler) RequestOTP(c *gin.Context) {
	var req otpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "Thiếu email")
		return
	}

	user, err := h.ResetUsers.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Lỗi máy chủ")
		return
	}
	if user == nil {
		utils.Error(c, http.StatusBadRequest, "Email không tồn tại")
		return
	}

	code, err := service.GenerateOTP()
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Lỗi máy chủ")
		return
	}
	expiredAt := time.Now().UTC().Add(5 * time.Minute)
	if err := h.OTP.Upsert(c.Request.Context(), req.Email, code, expiredAt); err != nil {
		utils.Error(c, http.StatusInternalServerError, "Lỗi máy chủ")
		return
	}

	subject := "Mã xác thực đổi mật khẩu"
	body := "Mã xác thực (OTP) của bạn là: " + code + "\nHiệu lực trong 5 phút."
	if err := h.Mailer.Send(req.Email, subject, body); err != nil {
		log.Printf("[MAIL] gửi OTP thất bại (%s): %v", req.Email, err)
		utils.Error(c, http.StatusInternalServerError, "Không gửi được email")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Đã gửi mã xác thực về email"})
}

type verifyOTPRequest struct {
	Email       string `json:"email" binding:"required"`
	OTP         string `json:"otp" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// VerifyOTPReset checks the code and, on success, replaces the password and
// burns the OTP record.
func (h *Handler) VerifyOTPReset(c *gin.Context) {
	var req verifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "Thiếu thông tin")
		return
	}

	record, err := h.OTP.Find(c.Request.Context(), req.Email)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Lỗi máy chủ")
		return
	}
	if record == nil || record.OTP != req.OTP || record.ExpiredAt.Before(time.Now().UTC()) {
		utils.Error(c, http.StatusBadRequest, "Mã OTP không hợp lệ hoặc đã hết hạn")
		return
	}

	user, err := h.ResetUsers.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Lỗi máy chủ")
		return
	}
	if user == nil {
		utils.Error(c, http.StatusBadRequest, "Email không tồn tại")
		return
	}

	if err := h.ResetUsers.UpdatePasswordByEmail(c.Request.Context(), req.Email, req.NewPassword); err != nil {
		utils.Error(c, http.StatusInternalServerError, "Lỗi máy chủ")
		return
	}
	if err := h.OTP.Delete(c.Request.Context(), req.Email); err != nil {
		log.Printf("[OTP] xoá mã đã dùng thất bại (%s): %v", req.Email, err)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Đổi mật khẩu thành công"})
}
