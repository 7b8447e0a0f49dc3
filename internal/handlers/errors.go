// internal/handlers/errors.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/shoplist-backend/internal/i18n"
	"github.com/javajoker/shoplist-backend/internal/services"
	"github.com/javajoker/shoplist-backend/internal/utils"
)

// notFoundResources maps service messages to their i18n resource prefix.
var notFoundResources = map[string]string{
	services.MsgUserNotFound:         "user",
	services.MsgShoppingListNotFound: "shopping_list",
	services.MsgSharedUserNotFound:   "shared_user",
	services.MsgListProductNotFound:  "list_product",
}

// respondError writes the response for a service error.
func respondError(c *gin.Context, err error) {
	lang := utils.GetLangFromContext(c)

	var notFound *services.NotFoundError
	var conflict *services.ConflictError
	var forbidden *services.ForbiddenError

	switch {
	case errors.As(err, &notFound):
		utils.NotFoundResponse(c, notFoundResources[notFound.Message], notFound.Message)
	case errors.As(err, &forbidden):
		utils.ForbiddenResponse(c, forbidden.Message)
	case errors.As(err, &conflict):
		utils.ConflictResponse(c, i18n.T(lang, i18n.KeyShoppingListConflict))
	case errors.Is(err, services.ErrEmailTaken):
		utils.ConflictResponse(c, i18n.T(lang, i18n.KeyUserEmailTaken))
	case errors.Is(err, services.ErrUsernameTaken):
		utils.ConflictResponse(c, i18n.T(lang, i18n.KeyUserUsernameTaken))
	case utils.IsValidationError(err):
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
	default:
		_ = c.Error(err)
		logrus.WithError(err).WithField("path", c.Request.URL.Path).Error("Request failed")
		utils.InternalErrorResponse(c, "")
	}
}

// callerID reads the authenticated user id, answering 401 when absent.
func callerID(c *gin.Context) (uuid.UUID, bool) {
	id, ok := utils.GetCallerID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return uuid.Nil, false
	}
	return id, true
}

// paramID parses a uuid path parameter, answering 400 when malformed.
func paramID(c *gin.Context, name, invalidKey string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		lang := utils.GetLangFromContext(c)
		utils.BadRequestResponse(c, i18n.T(lang, invalidKey), nil)
		return uuid.Nil, false
	}
	return id, true
}

// bindJSON decodes the body and validates it, answering 400 on failure.
func bindJSON(c *gin.Context, req interface{}) bool {
	lang := utils.GetLangFromContext(c)
	if err := c.ShouldBindJSON(req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return false
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return false
	}
	return true
}
