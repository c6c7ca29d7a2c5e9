package handlers

import (
	"errors"
	"net/http"

	"file_vault/internal/service"

	"github.com/gin-gonic/gin"
)

// Credentials is the login payload.
type Credentials struct {
	Username string `json:"username" binding:"required" example:"alice"`
	Password string `json:"password" binding:"required" example:"pw1"`
}

// RegisterAdminRequest creates an administrator account.
type RegisterAdminRequest struct {
	Username string `json:"username" binding:"required" example:"root"`
	Password string `json:"password" binding:"required" example:"s3cret"`
	Email    string `json:"email" binding:"required" example:"root@example.com"`
}

// ResetCodeRequest asks for a reset code to be mailed to the account owner.
type ResetCodeRequest struct {
	Username string `json:"username" binding:"required" example:"alice"`
}

// VerifyResetCodeRequest checks a reset code without consuming it.
type VerifyResetCodeRequest struct {
	Username string `json:"username" binding:"required" example:"alice"`
	Code     string `json:"code" binding:"required" example:"123456"`
}

// ResetPasswordRequest consumes a reset code and sets a new password.
type ResetPasswordRequest struct {
	Username    string `json:"username" binding:"required" example:"alice"`
	Code        string `json:"code" binding:"required" example:"123456"`
	NewPassword string `json:"newPassword" binding:"required" example:"pw2"`
}

// LoginResponse carries the session token.
type LoginResponse struct {
	Token string `json:"token"`
	Role  string `json:"role" example:"user"`
}

// bindJSONOrBadRequest tries to bind the request body into dst and writes a 400 JSON on failure.
// Returns false if the request was already handled (aborted), true otherwise.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if h.log != nil {
			h.log.Infow("bad_request_body", "path", c.FullPath(), "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// @Summary      Register an administrator
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      RegisterAdminRequest  true  "Admin account"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Router       /api/auth/registerAdmin [post]
func (h *Handler) registerAdmin(c *gin.Context) {
	var input RegisterAdminRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	if _, err := h.services.RegisterAdmin(c.Request.Context(), input.Username, input.Password, input.Email); err != nil {
		h.serviceError(c, "auth_register_admin_failed", err, "username", input.Username)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Admin user created"})
}

// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      Credentials  true  "Credentials"
// @Success      200   {object}  LoginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/auth/login [post]
func (h *Handler) login(c *gin.Context) {
	var input Credentials
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	res, err := h.services.Login(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		h.serviceError(c, "auth_login_failed", err, "username", input.Username)
		return
	}

	c.JSON(http.StatusOK, LoginResponse{Token: res.Token, Role: res.Role})
}

// @Summary      Send a password reset code
// @Description  Mails a 6-digit code valid for one hour. The code is never returned.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      ResetCodeRequest  true  "Account"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/auth/send-reset-code [post]
func (h *Handler) sendResetCode(c *gin.Context) {
	var input ResetCodeRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	if err := h.services.SendResetCode(c.Request.Context(), input.Username); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			h.logAndJSONError(c, http.StatusNotFound, msgUserNotFound, "auth_reset_request_failed", err, "username", input.Username)
			return
		}
		h.serviceError(c, "auth_reset_request_failed", err, "username", input.Username)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reset code sent to email"})
}

// @Summary      Verify a password reset code
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      VerifyResetCodeRequest  true  "Code"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/auth/verify-reset-code [post]
func (h *Handler) verifyResetCode(c *gin.Context) {
	var input VerifyResetCodeRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	if err := h.services.VerifyResetCode(c.Request.Context(), input.Username, input.Code); err != nil {
		h.serviceError(c, "auth_reset_verify_failed", err, "username", input.Username)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Code verified"})
}

// @Summary      Reset the password with a code
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      ResetPasswordRequest  true  "Code and new password"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/auth/reset-password [post]
func (h *Handler) resetPassword(c *gin.Context) {
	var input ResetPasswordRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	if err := h.services.ResetPassword(c.Request.Context(), input.Username, input.Code, input.NewPassword); err != nil {
		h.serviceError(c, "auth_reset_password_failed", err, "username", input.Username)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password reset successful"})
}
