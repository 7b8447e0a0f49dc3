// internal/handlers/user.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/javajoker/shoplist-backend/internal/i18n"
	"github.com/javajoker/shoplist-backend/internal/services"
	"github.com/javajoker/shoplist-backend/internal/utils"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// POST /users
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req services.CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"user": user,
	})
}

// GET /users/:id
// The email is only shown to the user themselves and to admins.
func (h *UserHandler) GetUser(c *gin.Context) {
	userID, ok := paramID(c, "id", i18n.KeyUserInvalidID)
	if !ok {
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	viewerID, _ := utils.GetCallerID(c)
	if viewerID != user.ID && !utils.IsAdminFromContext(c) {
		public := *user
		public.Email = ""
		user = &public
	}

	utils.SuccessResponse(c, gin.H{
		"user": user,
	})
}
