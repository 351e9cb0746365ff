package errors

// Error code constants.
// Format: CATEGORY_SPECIFIC_DETAIL
// The frontend maps these codes to its own user-facing messages.

const (
	// ==================== Authentication (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"        // login required
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS" // wrong email/password
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"       // token expired
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"       // malformed token
	AuthTokenRevoked       = "AUTH_TOKEN_REVOKED"       // token revoked on logout
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"        // duplicate email
	AuthCodeInvalid        = "AUTH_CODE_INVALID"        // wrong verification code
	AuthCodeExpired        = "AUTH_CODE_EXPIRED"        // verification code expired

	// ==================== Authorization (AUTHZ_) ====================
	AuthzForbidden    = "AUTHZ_FORBIDDEN"     // no access
	AuthzOwnerOnly    = "AUTHZ_OWNER_ONLY"    // only the owner may act
	AuthzRoleNotFound = "AUTHZ_ROLE_NOT_FOUND"

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput  = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID     = "VALIDATION_INVALID_ID"
	ValidationInvalidFormat = "VALIDATION_INVALID_FORMAT"
	ValidationRequired      = "VALIDATION_REQUIRED"

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// ==================== Restaurants (RESTAURANT_) ====================
	RestaurantNotFound = "RESTAURANT_NOT_FOUND"
	RestaurantClosed   = "RESTAURANT_CLOSED"

	// ==================== Products (PRODUCT_) ====================
	ProductNotFound    = "PRODUCT_NOT_FOUND"
	ProductUnavailable = "PRODUCT_UNAVAILABLE"

	// ==================== Cart (CART_) ====================
	CartItemNotFound     = "CART_ITEM_NOT_FOUND"
	CartEmpty            = "CART_EMPTY"
	CartMixedRestaurants = "CART_MIXED_RESTAURANTS" // items must come from one restaurant

	// ==================== Orders & checkout (ORDER_/PAYMENT_) ====================
	OrderNotFound           = "ORDER_NOT_FOUND"
	PaymentInvalidMethod    = "PAYMENT_INVALID_METHOD"
	PaymentMissingCardData  = "PAYMENT_MISSING_CARD_DATA"
	PaymentProcessingFailed = "PAYMENT_PROCESSING_FAILED"
	DeliveryInvalidTier     = "DELIVERY_INVALID_TIER"
	DeliveryNoAddress       = "DELIVERY_NO_ADDRESS" // no primary address to deliver to

	// ==================== Verification (VERIFY_) ====================
	VerifySendFailed  = "VERIFY_SEND_FAILED"
	VerifyCheckFailed = "VERIFY_CHECK_FAILED"

	// ==================== Uploads (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE"
	UploadFailed          = "UPLOAD_FAILED"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
	InternalExternalAPI   = "INTERNAL_EXTERNAL_API"
)
