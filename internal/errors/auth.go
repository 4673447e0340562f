package errors

var (
	ErrInvalidCredentials = &DomainError{
		Code:    CodeUnauthorized,
		Message: "Invalid credentials",
	}
	ErrMissingToken = &DomainError{
		Code:    CodeUnauthorized,
		Message: "No token provided",
	}
	ErrInvalidToken = &DomainError{
		Code:    CodeUnauthorized,
		Message: "Invalid token",
	}
	ErrInsufficientRole = &DomainError{
		Code:    CodeForbidden,
		Message: "Insufficient permissions",
	}
	ErrTooManyAttempts = &DomainError{
		Code:    CodeThrottled,
		Message: "Too many login attempts, please try again later.",
	}
	ErrUserNotFound = &DomainError{
		Code:    CodeNotFound,
		Message: "User not found",
	}
)
