package errx

// Type represents the category of error
type Type string

const (
	// TypeInternal represents internal errors
	TypeInternal Type = "INTERNAL"

	// TypeValidation represents invalid input or invalid results
	TypeValidation Type = "VALIDATION"

	// TypeNotFound represents missing resources
	TypeNotFound Type = "NOT_FOUND"

	// TypeConflict represents state conflicts
	TypeConflict Type = "CONFLICT"

	// TypeUnavailable represents an operation that cannot run right now
	TypeUnavailable Type = "UNAVAILABLE"

	// TypeExternal represents errors from external services
	TypeExternal Type = "EXTERNAL"
)

// String returns the string representation of the error type
func (t Type) String() string {
	return string(t)
}

// typeToHTTPStatus maps error types to HTTP status codes
func typeToHTTPStatus(t Type) int {
	switch t {
	case TypeValidation:
		return 400
	case TypeNotFound:
		return 404
	case TypeConflict:
		return 409
	case TypeUnavailable:
		return 503
	case TypeExternal:
		return 502
	default:
		return 500
	}
}
