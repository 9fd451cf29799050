package dto

import "net/http"

// Error code constants organized by category

// General error codes
const (
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeUnauthorized is used when authentication is required but missing/invalid
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
)

// Webhook error codes
const (
	// ErrCodeInvalidSignature is used when webhook signature verification fails
	ErrCodeInvalidSignature = "ERR_INVALID_SIGNATURE"
	// ErrCodeUnsupportedMedia is used when the body content type cannot be parsed
	ErrCodeUnsupportedMedia = "ERR_UNSUPPORTED_MEDIA"
	// ErrCodeUnknownEvent is used when a webhook carries an event the bridge cannot act on
	ErrCodeUnknownEvent = "ERR_UNKNOWN_EVENT"
)

// Bridge error codes
const (
	// ErrCodeNoSession is used when no Shopify credentials are stored for the shop
	ErrCodeNoSession = "ERR_NO_SESSION"
	// ErrCodeRemoteAPI is used when an upstream platform call fails
	ErrCodeRemoteAPI = "ERR_REMOTE_API"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:     http.StatusInternalServerError,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeNotFound:     http.StatusNotFound,
	ErrCodeUnauthorized: http.StatusUnauthorized,

	ErrCodeInvalidSignature: http.StatusUnauthorized,
	ErrCodeUnsupportedMedia: http.StatusUnsupportedMediaType,
	ErrCodeUnknownEvent:     http.StatusBadRequest,

	ErrCodeNoSession: http.StatusUnauthorized,
	ErrCodeRemoteAPI: http.StatusBadGateway,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Returns 500 Internal Server Error if the error code is not found.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
