package dto

// Error codes returned in ErrorResponse.Code.
const (
	CodeInvalidFields            = "invalid_fields"
	CodeUserAlreadyExists        = "user_already_exists"
	CodeUserNotExists            = "user_not_exists"
	CodeUserNotActive            = "user_not_active"
	CodeInvalidAuthentication    = "invalid_authentication"
	CodeCodeVerificationNotFound = "code_verification_not_found"
	CodeFriendNotFound           = "friend_not_found"
	CodeFriendNotExists          = "friend_not_exists"
	CodeNotChangesDetected       = "not_changes_detected"
	CodeUnauthorized             = "unauthorized"
	CodeInternalError            = "internal_error"
)

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// InvalidFields wraps the first validation failure.
func InvalidFields(message string) ErrorResponse {
	return ErrorResponse{Code: CodeInvalidFields, Message: "Invalid field - " + message}
}

var (
	ErrUserAlreadyExists        = ErrorResponse{Code: CodeUserAlreadyExists, Message: "User already exists"}
	ErrUserNotExists            = ErrorResponse{Code: CodeUserNotExists, Message: "User not exists"}
	ErrUserNotActive            = ErrorResponse{Code: CodeUserNotActive, Message: "User not active"}
	ErrInvalidAuthentication    = ErrorResponse{Code: CodeInvalidAuthentication, Message: "Invalid authentication"}
	ErrCodeVerificationNotFound = ErrorResponse{Code: CodeCodeVerificationNotFound, Message: "Code verification not found"}
	ErrFriendNotFound           = ErrorResponse{Code: CodeFriendNotFound, Message: "Friend not found"}
	ErrFriendNotExists          = ErrorResponse{Code: CodeFriendNotExists, Message: "Friend not exists"}
	ErrNotChangesDetected       = ErrorResponse{Code: CodeNotChangesDetected, Message: "Not changes detected"}
	ErrUnauthorized             = ErrorResponse{Code: CodeUnauthorized, Message: "Unauthorized"}
	ErrInternal                 = ErrorResponse{Code: CodeInternalError, Message: "Internal error"}
)

// ListQuery holds the list query values that are validated before parsing.
type ListQuery struct {
	Search string `json:"search" validate:"omitempty,min=3"`
}
