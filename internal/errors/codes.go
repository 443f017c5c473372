package errors

// Error code constants.
// Format: CATEGORY_SPECIFIC_DETAIL
// The storefront and admin dashboard map these codes to display messages;
// the message field is always safe to show as-is.

const (
	// ==================== Auth (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"        // missing admin token
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS" // wrong dashboard password
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"       // admin token expired
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"       // malformed/forged token

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput  = "VALIDATION_INVALID_INPUT"  // bad request body
	ValidationInvalidID     = "VALIDATION_INVALID_ID"     // malformed ID
	ValidationInvalidFormat = "VALIDATION_INVALID_FORMAT" // bad field format
	ValidationRequired      = "VALIDATION_REQUIRED"       // missing required field

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// ==================== Catalogue (CATALOG_) ====================
	CatalogCategoryNotFound = "CATALOG_CATEGORY_NOT_FOUND"
	CatalogItemNotFound     = "CATALOG_ITEM_NOT_FOUND"
	CatalogInvalidPrice     = "CATALOG_INVALID_PRICE" // price not a non-negative amount

	// ==================== Cart (CART_) ====================
	CartLineNotFound = "CART_LINE_NOT_FOUND"

	// ==================== Orders (ORDER_) ====================
	OrderNotFound     = "ORDER_NOT_FOUND"
	OrderEmptyCart    = "ORDER_EMPTY_CART"    // checkout attempted with no lines
	OrderInFlight     = "ORDER_IN_FLIGHT"     // a submission is already outstanding
	OrderInvalidItems = "ORDER_INVALID_ITEMS" // unknown item or bad quantity
	OrderCreateFailed = "ORDER_CREATE_FAILED"

	// ==================== Uploads (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE"
	UploadFileTooLarge    = "UPLOAD_FILE_TOO_LARGE"
	UploadFileRequired    = "UPLOAD_FILE_REQUIRED" // image required on create
	UploadFailed          = "UPLOAD_FAILED"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
)
