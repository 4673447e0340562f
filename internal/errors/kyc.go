package errors

var (
	ErrCaseNotFound = &DomainError{
		Code:    CodeNotFound,
		Message: "KYC case not found",
	}
	ErrInvalidAction = &DomainError{
		Code:    CodeValidation,
		Message: "Invalid action",
	}
	ErrEmptyNote = &DomainError{
		Code:    CodeValidation,
		Message: "Note content is required",
	}
)
