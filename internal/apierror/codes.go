package apierror

// Error type URIs following the urn:macrolog:error:* pattern.
// These are used as the "type" field in RFC 9457 Problem Details.
const (
	// TypeValidation indicates request validation failed (400)
	TypeValidation = "urn:macrolog:error:validation"

	// TypeBadRequest indicates a malformed or invalid request (400)
	TypeBadRequest = "urn:macrolog:error:bad_request"

	// TypeUnauthorized indicates missing or invalid authentication (401)
	TypeUnauthorized = "urn:macrolog:error:unauthorized"

	// TypeForbidden indicates insufficient permissions (403)
	TypeForbidden = "urn:macrolog:error:forbidden"

	// TypeNotFound indicates the requested resource was not found (404)
	TypeNotFound = "urn:macrolog:error:not_found"

	// TypeInternal indicates an unexpected server error (500)
	TypeInternal = "urn:macrolog:error:internal"
)

// Titles for each error type - human-readable summaries
const (
	TitleValidation   = "Validation Error"
	TitleBadRequest   = "Bad Request"
	TitleUnauthorized = "Authentication Required"
	TitleForbidden    = "Permission Denied"
	TitleNotFound     = "Resource Not Found"
	TitleInternal     = "Internal Server Error"
)
