package handler

// APIError is the standardized error response body.
type APIError struct {
	Message string `json:"message"`
}

// SetPathRequest starts (or restarts) a story path.
type SetPathRequest struct {
	UserID   string `json:"user_id" validate:"required"`
	PathID   string `json:"path_id" validate:"required"`
	Language string `json:"language"`
}

// ChoiceRequest submits a choice at the current node.
type ChoiceRequest struct {
	UserID   string `json:"user_id" validate:"required"`
	ChoiceID string `json:"choice_id" validate:"required"`
	Language string `json:"language"`
}

// RollbackRequest undoes the user's last choice.
type RollbackRequest struct {
	UserID string `json:"user_id" validate:"required"`
}
