package apiresult

import "net/http"

// Fixed user-facing messages.
const (
	GenericErrorMessage = "An error occurred. Please try again."
	NetworkErrorMessage = "Network error. Please check your connection."

	BadRequestMessage   = "Bad request. Please check your input."
	UnauthorizedMessage = "Unauthorized. Please login again."
	ForbiddenMessage    = "Access denied. You don't have permission to perform this action."
	NotFoundMessage     = "Resource not found."
	ConflictMessage     = "Conflict. The resource already exists."
	ServerErrorMessage  = "Server error. Please try again later."
)

// StatusMessage maps a transport status to a readable sentence. Unknown
// statuses (including 0) yield defaultMessage.
func StatusMessage(status int, defaultMessage string) string {
	switch status {
	case http.StatusBadRequest:
		return BadRequestMessage
	case http.StatusUnauthorized:
		return UnauthorizedMessage
	case http.StatusForbidden:
		return ForbiddenMessage
	case http.StatusNotFound:
		return NotFoundMessage
	case http.StatusConflict:
		return ConflictMessage
	case http.StatusInternalServerError:
		return ServerErrorMessage
	default:
		return defaultMessage
	}
}
