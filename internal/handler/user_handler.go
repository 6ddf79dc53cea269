package handler

import (
	"net/http"

	"material-store/internal/middleware"
	"material-store/internal/model"
	"material-store/internal/service"
	"material-store/pkg/pagination"
	"material-store/pkg/response"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService service.UserService
}

// NewUserHandler sets up the routing dependencies for User endpoints
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

var anyRole = []string{model.RoleMaster, model.RoleCaseworker, model.RoleApprover, model.RoleConsumer}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	// Public routes
	router.POST("/login", h.Login)
	router.POST("/refresh", h.RefreshToken)
	router.POST("/logout", h.Logout)

	// Any authenticated role
	router.GET("/me", middleware.RequireRole(anyRole...), h.GetMe)
	router.POST("/change-password", middleware.RequireRole(anyRole...), h.ChangePassword)

	// Account administration is the master's alone
	users := router.Group("/api/users", middleware.RequireRole(model.RoleMaster))
	{
		users.GET("", h.ListUsers)
		users.GET("/:id", h.GetUserByID)
		users.POST("", h.CreateUser)
		users.PUT("/:id", h.UpdateUser)
		users.DELETE("/:id", h.DeleteUser)
	}
}

type refreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Login handles POST /login to authenticate and return a JWT token
// @Summary      Login user
// @Description  Authenticates a user by email and password, returning a JWT token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.LoginRequest  true  "Login Credentials"
// @Success      200      {object}  response.Response{data=service.TokenResponse}
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Router       /login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload"))
		return
	}

	tokenRes, err := h.userService.Login(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, err.Error()))
		return
	}

	// Set tokens as HttpOnly cookies
	middleware.SetTokenCookies(c, tokenRes.Token, tokenRes.RefreshToken)

	c.JSON(http.StatusOK, response.Success(http.StatusOK, tokenRes))
}

// RefreshToken handles POST /refresh to issue new access and refresh tokens
// @Summary      Refresh token
// @Description  Issues a new token pair using a valid refresh token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body      refreshTokenRequest  true  "Refresh Token"
// @Success      200      {object}  response.Response{data=service.TokenResponse}
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Router       /refresh [post]
func (h *UserHandler) RefreshToken(c *gin.Context) {
	// Try reading refresh_token from cookie first, fall back to body
	refreshToken, cookieErr := c.Cookie("refresh_token")
	if cookieErr != nil || refreshToken == "" {
		var req refreshTokenRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload"))
			return
		}
		refreshToken = req.RefreshToken
	}

	tokenRes, err := h.userService.Refresh(c.Request.Context(), refreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, err.Error()))
		return
	}

	middleware.SetTokenCookies(c, tokenRes.Token, tokenRes.RefreshToken)

	c.JSON(http.StatusOK, response.Success(http.StatusOK, tokenRes))
}

// Logout handles POST /logout to revoke the refresh token and clear cookies
func (h *UserHandler) Logout(c *gin.Context) {
	if refreshToken, err := c.Cookie("refresh_token"); err == nil && refreshToken != "" {
		_ = h.userService.Logout(c.Request.Context(), refreshToken)
	}
	middleware.ClearTokenCookies(c)
	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Logged out"))
}

// GetMe handles GET /me to return the current authenticated user
// @Summary      Get current user
// @Description  Get the currently authenticated user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=service.UserResponse}
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /me [get]
func (h *UserHandler) GetMe(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), actor.ID.String())
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, "User not found"))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, user))
}

// ChangePassword handles POST /change-password for the current user
// @Summary      Change password
// @Description  Re-proves the current password and replaces it with a new one
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.ChangePasswordRequest  true  "Change Password Payload"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Router       /change-password [post]
func (h *UserHandler) ChangePassword(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var req service.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	if err := h.userService.ChangePassword(c.Request.Context(), actor, req); err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Password changed successfully"))
}

// CreateUser handles POST /api/users
// @Summary      Create a new user
// @Description  Provisions an account with one of the four workflow roles
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateUserRequest  true  "Create User Payload"
// @Success      201      {object}  response.Response{data=service.UserResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var req service.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), actor, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, user))
}

// ListUsers handles GET /api/users with pagination controls
// @Summary      List users
// @Description  Retrieves a paginated list of users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Number of items per page (default 10)"
// @Success      200    {object}  response.Response{data=object}
// @Failure      500    {object}  response.Response
// @Router       /api/users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	params := pagination.Parse(c)
	users, total, err := h.userService.ListUsers(c.Request.Context(), actor, params.Page, params.Limit)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"users": users,
		"total": total,
		"page":  params.Page,
		"limit": params.Limit,
	}))
}

// GetUserByID handles GET /api/users/:id
// @Summary      Get user by ID
// @Description  Fetch a single user's detail by their UUID
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  response.Response{data=service.UserResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/users/{id} [get]
func (h *UserHandler) GetUserByID(c *gin.Context) {
	user, err := h.userService.GetUserByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, user))
}

// UpdateUser handles PUT /api/users/:id
// @Summary      Update user
// @Description  Updates a user's details excluding password
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                     true  "User ID"
// @Param        payload  body      service.UpdateUserRequest  true  "Update User Payload"
// @Success      200      {object}  response.Response{data=service.UserResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/users/{id} [put]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var req service.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload"))
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, user))
}

// DeleteUser handles DELETE /api/users/:id
// @Summary      Delete user
// @Description  Soft deletes a user by ID, revoking their access
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/users/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), actor, c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "User deleted successfully"))
}
