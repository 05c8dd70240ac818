package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lenarsag/foodgram/backend/internal/middleware"
	"github.com/lenarsag/foodgram/backend/internal/pagination"
	"github.com/lenarsag/foodgram/backend/internal/service"
	"github.com/lenarsag/foodgram/backend/internal/types"
)

// UserHandler serves accounts, profiles and subscriptions
type UserHandler struct {
	userService service.IUserService
	pager       *pagination.Pager
}

func NewUserHandler(userService service.IUserService, pager *pagination.Pager) *UserHandler {
	return &UserHandler{userService: userService, pager: pager}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup, guards Guards) {
	users := router.Group("/users")
	{
		users.POST("", h.Signup)
		users.GET("", guards.Optional, h.ListUsers)
		users.GET("/me", guards.Required, h.Me)
		users.POST("/set_password", guards.Required, h.SetPassword)
		users.PUT("/me/avatar", guards.Required, h.SetAvatar)
		users.DELETE("/me/avatar", guards.Required, h.DeleteAvatar)
		users.GET("/subscriptions", guards.Required, h.ListSubscriptions)
		users.GET("/:id", guards.Optional, h.GetUser)
		users.POST("/:id/subscribe", guards.Required, h.Subscribe)
		users.DELETE("/:id/subscribe", guards.Required, h.Unsubscribe)
	}
}

func (h *UserHandler) Signup(c *gin.Context) {
	var req types.SignupRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.Signup(c.Request.Context(), service.SignupInput{
		Email:     req.Email,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	params, ok := pageParams(c, h.pager)
	if !ok {
		return
	}
	page, err := h.userService.ListUsers(c.Request.Context(), middleware.ViewerID(c), params, pagination.BaseURL(c.Request))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	user, err := h.userService.GetUser(c.Request.Context(), middleware.ViewerID(c), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Me(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	user, err := h.userService.GetUser(c.Request.Context(), &userID, userID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) SetPassword(c *gin.Context) {
	var req types.SetPasswordRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, _ := middleware.UserID(c)
	if err := h.userService.SetPassword(c.Request.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *UserHandler) SetAvatar(c *gin.Context) {
	var req types.AvatarRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, _ := middleware.UserID(c)
	ref, err := h.userService.SetAvatar(c.Request.Context(), userID, req.Avatar)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, types.AvatarResponse{Avatar: ref})
}

func (h *UserHandler) DeleteAvatar(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	if err := h.userService.DeleteAvatar(c.Request.Context(), userID); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *UserHandler) ListSubscriptions(c *gin.Context) {
	params, ok := pageParams(c, h.pager)
	if !ok {
		return
	}
	limit, ok := recipeLimit(c)
	if !ok {
		return
	}
	userID, _ := middleware.UserID(c)
	page, err := h.userService.ListSubscriptions(c.Request.Context(), userID, params, limit, pagination.BaseURL(c.Request))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *UserHandler) Subscribe(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	limit, ok := recipeLimit(c)
	if !ok {
		return
	}
	userID, _ := middleware.UserID(c)
	sub, err := h.userService.Subscribe(c.Request.Context(), userID, id, limit)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, sub)
}

func (h *UserHandler) Unsubscribe(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	userID, _ := middleware.UserID(c)
	if err := h.userService.Unsubscribe(c.Request.Context(), userID, id); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}
