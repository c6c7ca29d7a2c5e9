package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"file_vault/internal/models"
	"file_vault/internal/service"

	"github.com/gin-gonic/gin"
)

// AddUserRequest is the admin payload for creating an account.
type AddUserRequest struct {
	Username string `json:"username" binding:"required" example:"bob"`
	Password string `json:"password" binding:"required" example:"pw"`
	Email    string `json:"email" binding:"required" example:"bob@example.com"`
	// Role to assign. Allowed: user, admin (default user)
	Role string `json:"role,omitempty" example:"user"`
}

// UpdateDetailsRequest changes the caller's own account; omitted fields stay as they are.
type UpdateDetailsRequest struct {
	Username *string `json:"username,omitempty" example:"alice2"`
	Email    *string `json:"email,omitempty" example:"alice@example.com"`
	Password *string `json:"password,omitempty" example:"pw3"`
}

// @Summary      List users
// @Tags         users
// @Produce      json
// @Success      200  {array}   models.User
// @Failure      500  {object}  map[string]string
// @Router       /api/users/users [get]
func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.services.ListUsers(c.Request.Context())
	if err != nil {
		h.serviceError(c, "users_list_failed", err)
		return
	}
	if users == nil {
		users = []models.User{}
	}
	c.JSON(http.StatusOK, users)
}

// @Summary      Add a user
// @Description  Admin only.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      AddUserRequest  true  "Account"
// @Success      201   {object}  models.User
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /api/users/add-user [post]
// @Security     BearerAuth
func (h *Handler) addUser(c *gin.Context) {
	var input AddUserRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	actor, _ := identity(c)
	u, err := h.services.AddUser(c.Request.Context(), actor, service.NewUser{
		Username: input.Username,
		Password: input.Password,
		Email:    input.Email,
		Role:     input.Role,
	})
	if err != nil {
		h.serviceError(c, "users_add_failed", err, "username", input.Username)
		return
	}
	c.JSON(http.StatusCreated, u)
}

// @Summary      Remove a user
// @Description  Admin only.
// @Tags         users
// @Produce      json
// @Param        id   path      int  true  "User id"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/users/remove-user/{id} [delete]
// @Security     BearerAuth
func (h *Handler) removeUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	actor, _ := identity(c)
	if err := h.services.RemoveUser(c.Request.Context(), actor, id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": msgUserNotFound})
			return
		}
		h.serviceError(c, "users_remove_failed", err, "user_id", id)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

// @Summary      Update own account details
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      UpdateDetailsRequest  true  "Changed fields"
// @Success      200   {object}  models.User
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/users/update-details [patch]
// @Security     BearerAuth
func (h *Handler) updateDetails(c *gin.Context) {
	var input UpdateDetailsRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	caller, _ := identity(c)
	u, err := h.services.UpdateDetails(c.Request.Context(), caller.UserID, service.DetailsUpdate{
		Username: input.Username,
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": msgUserNotFound})
			return
		}
		h.serviceError(c, "users_update_failed", err, "user_id", caller.UserID)
		return
	}
	c.JSON(http.StatusOK, u)
}
