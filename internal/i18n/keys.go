// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess = "success"
	KeyError   = "error"

	// Authentication
	KeyAuthRequired     = "auth.required"
	KeyAuthInvalidToken = "auth.invalid_token"
	KeyAuthTokenExpired = "auth.token_expired"
	KeyAccessDenied     = "auth.access_denied"
	KeyAdminOnly        = "auth.admin_only"
	KeyRateLimited      = "auth.rate_limited"

	// Users
	KeyUserCreated       = "user.created"
	KeyUserNotFound      = "user.not_found"
	KeyUserEmailTaken    = "user.email_taken"
	KeyUserUsernameTaken = "user.username_taken"
	KeyUserInvalidID     = "user.invalid_id"

	// Shopping lists
	KeyShoppingListNotFound  = "shopping_list.not_found"
	KeyShoppingListDeleted   = "shopping_list.deleted"
	KeyShoppingListInvalidID = "shopping_list.invalid_id"
	KeyShoppingListConflict  = "shopping_list.conflict"
	KeySharedUserNotFound    = "shared_user.not_found"

	// List products
	KeyListProductNotFound  = "list_product.not_found"
	KeyListProductDeleted   = "list_product.deleted"
	KeyListProductInvalidID = "list_product.invalid_id"

	// Validation
	KeyValidationRequired = "validation.required"
	KeyValidationInvalid  = "validation.invalid"
	KeyValidationTooLong  = "validation.too_long"
	KeyValidationEmail    = "validation.invalid_email"
)
