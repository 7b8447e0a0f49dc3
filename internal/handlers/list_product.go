// internal/handlers/list_product.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/javajoker/shoplist-backend/internal/i18n"
	"github.com/javajoker/shoplist-backend/internal/services"
	"github.com/javajoker/shoplist-backend/internal/utils"
)

type ListProductHandler struct {
	listProductService *services.ListProductService
}

func NewListProductHandler(listProductService *services.ListProductService) *ListProductHandler {
	return &ListProductHandler{
		listProductService: listProductService,
	}
}

// GET /shopping-lists/:id/products
func (h *ListProductHandler) GetListProducts(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	listID, ok := paramID(c, "id", i18n.KeyShoppingListInvalidID)
	if !ok {
		return
	}

	products, err := h.listProductService.FindByShoppingList(c.Request.Context(), listID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"products": products,
	})
}

// POST /shopping-lists/:id/products
func (h *ListProductHandler) CreateListProduct(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	listID, ok := paramID(c, "id", i18n.KeyShoppingListInvalidID)
	if !ok {
		return
	}

	var req services.CreateListProductRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := h.listProductService.Create(c.Request.Context(), listID, userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"product": product,
	})
}

// PATCH /list-products/:id
func (h *ListProductHandler) UpdateListProduct(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	productID, ok := paramID(c, "id", i18n.KeyListProductInvalidID)
	if !ok {
		return
	}

	var req services.UpdateListProductRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := h.listProductService.Update(c.Request.Context(), productID, userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"product": product,
	})
}

// POST /list-products/:id/toggle
func (h *ListProductHandler) TogglePurchased(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	productID, ok := paramID(c, "id", i18n.KeyListProductInvalidID)
	if !ok {
		return
	}

	product, err := h.listProductService.TogglePurchased(c.Request.Context(), productID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"product": product,
	})
}

// DELETE /list-products/:id
func (h *ListProductHandler) DeleteListProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := callerID(c)
	if !ok {
		return
	}
	productID, ok := paramID(c, "id", i18n.KeyListProductInvalidID)
	if !ok {
		return
	}

	if err := h.listProductService.Delete(c.Request.Context(), productID, userID); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyListProductDeleted),
	})
}
