package response

// Envelope codes and default messages.
const (
	MessageSuccess = "success"

	InternalServerErrorCode = 500
	DefaultErrorMessage     = "internal server error"
)
