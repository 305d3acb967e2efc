package handlers

import (
	"net/http"
	"strings"

	userRepo "busbook/database/repository/user"
	"busbook/models"
	"busbook/services/user"
	"busbook/utils"

	"github.com/gin-gonic/gin"
)

// UserHandler exposes account and authentication endpoints.
type UserHandler struct {
	Service user.UserService
}

func NewUserHandler(svc user.UserService) *UserHandler {
	return &UserHandler{Service: svc}
}

// RegisterUserHandler handles POST /api/users.
func (h *UserHandler) RegisterUserHandler(c *gin.Context) {
	var u models.User
	if err := c.ShouldBindJSON(&u); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body.")
		return
	}
	created, err := h.Service.RegisterUser(u)
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "User created successfully.", "user": created})
}

// LoginHandler handles POST /api/login.
func (h *UserHandler) LoginHandler(c *gin.Context) {
	var input struct {
		PhoneNumber string `json:"phone_number"`
		Password    string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body.")
		return
	}
	resp, err := h.Service.Authenticate(input.PhoneNumber, input.Password)
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Login successful.", "token": resp.Token, "user": resp.User})
}

// LogoutHandler handles POST /api/logout. It revokes the presented token.
func (h *UserHandler) LogoutHandler(c *gin.Context) {
	header := c.GetHeader("Authorization")
	token := strings.TrimPrefix(header, "Bearer ")
	if token == "" || token == header {
		utils.JSONError(c, http.StatusUnauthorized, "Missing or invalid Authorization header.")
		return
	}
	if err := h.Service.RevokeToken(utils.HashToken(token)); err != nil {
		utils.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logout successful."})
}

// GetUsersHandler handles GET /api/users with optional role and query filters.
func (h *UserHandler) GetUsersHandler(c *gin.Context) {
	f := userRepo.Filter{
		Role:  c.Query("role"),
		Query: c.Query("query"),
	}
	users, err := h.Service.SearchUsers(f)
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// GetUserByIDHandler handles GET /api/users/:id.
func (h *UserHandler) GetUserByIDHandler(c *gin.Context) {
	u, err := h.Service.GetUserByID(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}

// UpdateUserHandler handles PUT /api/users/:id.
func (h *UserHandler) UpdateUserHandler(c *gin.Context) {
	var updates user.UserUpdate
	if err := c.ShouldBindJSON(&updates); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body.")
		return
	}
	u, err := h.Service.UpdateUser(c.Param("id"), updates)
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User updated successfully.", "user": u})
}

// UpdateUserPasswordHandler handles PUT /api/users/:id/password.
func (h *UserHandler) UpdateUserPasswordHandler(c *gin.Context) {
	var input struct {
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if err := h.Service.UpdatePassword(c.Param("id"), input.Password); err != nil {
		utils.RespondWithError(c, err)
		return
	}
	u, err := h.Service.GetUserByID(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User updated successfully.", "user": u})
}

// DeleteUserHandler handles DELETE /api/users/:id.
func (h *UserHandler) DeleteUserHandler(c *gin.Context) {
	if err := h.Service.DeleteUser(c.Param("id")); err != nil {
		utils.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully."})
}
