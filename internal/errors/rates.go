package errors

var (
	ErrUnsupportedPair = &DomainError{
		Code:    CodeValidation,
		Message: "Unsupported currency pair",
	}
	ErrInvalidAmount = &DomainError{
		Code:    CodeValidation,
		Message: "Amount must be greater than zero",
	}
)
