package errx

// Common error constructors for convenience

// Internal creates an internal error
func Internal(message string) *Error {
	return New(message, TypeInternal)
}

// Validation creates a validation error
func Validation(message string) *Error {
	return New(message, TypeValidation)
}

// NotFound creates a not found error
func NotFound(message string) *Error {
	return New(message, TypeNotFound)
}

// Conflict creates a conflict error
func Conflict(message string) *Error {
	return New(message, TypeConflict)
}

// Unavailable creates an error for an operation that cannot run right now
func Unavailable(message string) *Error {
	return New(message, TypeUnavailable)
}

// External creates an external service error
func External(message string) *Error {
	return New(message, TypeExternal)
}
