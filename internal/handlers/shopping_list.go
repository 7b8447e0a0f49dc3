// internal/handlers/shopping_list.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/javajoker/shoplist-backend/internal/i18n"
	"github.com/javajoker/shoplist-backend/internal/models"
	"github.com/javajoker/shoplist-backend/internal/services"
	"github.com/javajoker/shoplist-backend/internal/utils"
)

type ShoppingListHandler struct {
	shoppingListService *services.ShoppingListService
}

func NewShoppingListHandler(shoppingListService *services.ShoppingListService) *ShoppingListHandler {
	return &ShoppingListHandler{
		shoppingListService: shoppingListService,
	}
}

// GET /shopping-lists
func (h *ShoppingListHandler) GetShoppingLists(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	lists, err := h.shoppingListService.FindAllByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"shopping_lists": lists,
	})
}

// GET /admin/shopping-lists
func (h *ShoppingListHandler) GetAllShoppingLists(c *gin.Context) {
	lists, err := h.shoppingListService.FindAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, gin.H{
		"shopping_lists": lists,
	}, gin.H{
		"total": len(lists),
	})
}

// GET /shopping-lists/:id
func (h *ShoppingListHandler) GetShoppingList(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	listID, ok := paramID(c, "id", i18n.KeyShoppingListInvalidID)
	if !ok {
		return
	}

	list, err := h.shoppingListService.FindOneByUser(c.Request.Context(), listID, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if list == nil {
		respondError(c, services.NewNotFoundError(services.MsgShoppingListNotFound))
		return
	}

	utils.SuccessResponse(c, gin.H{
		"shopping_list": list,
	})
}

// POST /shopping-lists
func (h *ShoppingListHandler) CreateShoppingList(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req services.CreateShoppingListRequest
	if !bindJSON(c, &req) {
		return
	}

	list, err := h.shoppingListService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"shopping_list": list,
	})
}

// PATCH /shopping-lists/:id
func (h *ShoppingListHandler) UpdateShoppingList(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	listID, ok := paramID(c, "id", i18n.KeyShoppingListInvalidID)
	if !ok {
		return
	}

	var req services.UpdateShoppingListRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	if _, err := h.shoppingListService.AuthorizeMember(ctx, listID, userID); err != nil {
		respondError(c, err)
		return
	}

	list, err := h.shoppingListService.Update(ctx, listID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"shopping_list": list,
	})
}

// DELETE /shopping-lists/:id
func (h *ShoppingListHandler) DeleteShoppingList(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := callerID(c)
	if !ok {
		return
	}
	listID, ok := paramID(c, "id", i18n.KeyShoppingListInvalidID)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if _, err := h.shoppingListService.AuthorizeOwner(ctx, listID, userID); err != nil {
		respondError(c, err)
		return
	}

	if err := h.shoppingListService.Delete(ctx, listID); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyShoppingListDeleted),
	})
}

// POST /shopping-lists/:id/shares
func (h *ShoppingListHandler) ShareShoppingList(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	listID, ok := paramID(c, "id", i18n.KeyShoppingListInvalidID)
	if !ok {
		return
	}

	var req services.ShareShoppingListRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	if _, err := h.shoppingListService.AuthorizeMember(ctx, listID, userID); err != nil {
		respondError(c, err)
		return
	}

	list, err := h.shoppingListService.AddSharedUsersToShoppingList(ctx, listID, req.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"shopping_list": list,
	})
}

// DELETE /shopping-lists/:id/shares/:userId
func (h *ShoppingListHandler) UnshareShoppingList(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	listID, ok := paramID(c, "id", i18n.KeyShoppingListInvalidID)
	if !ok {
		return
	}
	targetID, ok := paramID(c, "userId", i18n.KeyUserInvalidID)
	if !ok {
		return
	}

	list, err := h.shoppingListService.RevokeShare(c.Request.Context(), listID, userID, targetID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"shopping_list": list,
	})
}

// POST /shopping-lists/from-pending
func (h *ShoppingListHandler) CreateFromPendingProducts(c *gin.Context) {
	h.derive(c, true)
}

// POST /shopping-lists/from-lists
func (h *ShoppingListHandler) CreateFromShoppingLists(c *gin.Context) {
	h.derive(c, false)
}

func (h *ShoppingListHandler) derive(c *gin.Context, pendingOnly bool) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req services.DeriveShoppingListRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	if err := h.authorizeSources(c, req.ShoppingListIDs, userID); err != nil {
		respondError(c, err)
		return
	}

	var list *models.ShoppingList
	var err error
	if pendingOnly {
		list, err = h.shoppingListService.CreateShoppingListFromPendingProducts(ctx, req.ShoppingListIDs, userID, &req.ShoppingList, req.Remove)
	} else {
		list, err = h.shoppingListService.CreateShoppingListFromShoppingLists(ctx, req.ShoppingListIDs, userID, &req.ShoppingList)
	}
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"shopping_list": list,
	})
}

// authorizeSources requires the caller to be a member of every source list.
func (h *ShoppingListHandler) authorizeSources(c *gin.Context, listIDs []uuid.UUID, userID uuid.UUID) error {
	for _, id := range listIDs {
		if _, err := h.shoppingListService.AuthorizeMember(c.Request.Context(), id, userID); err != nil {
			return err
		}
	}
	return nil
}
