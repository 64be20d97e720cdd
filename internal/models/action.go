package models

import "fmt"

// ActionKind identifies one of the automation operations the dispatcher supports.
type ActionKind string

const (
	ActionFollow        ActionKind = "follow"
	ActionUnfollow      ActionKind = "unfollow"
	ActionLike          ActionKind = "like"
	ActionUnlike        ActionKind = "unlike"
	ActionComment       ActionKind = "comment"
	ActionDeleteComment ActionKind = "delete_comment"
	ActionProfileInfo   ActionKind = "profile_info"
)

// ActionRequest carries the parameters of a single automation action. Only the
// fields required by the request's Kind are consulted; the rest stay empty.
type ActionRequest struct {
	Kind        ActionKind `json:"type"`
	Username    string     `json:"username,omitempty"`
	PostURL     string     `json:"postUrl,omitempty"`
	CommentText string     `json:"commentText,omitempty"`
	CommentID   string     `json:"commentId,omitempty"`
}

// ActionResult is the normalized outcome of one automation action. An action
// either fully succeeds or is reported failed; there is no partial success.
type ActionResult struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
}

// Failure builds a failed ActionResult with the given message.
func Failure(message string) ActionResult {
	return ActionResult{Success: false, Message: message}
}

// Successf builds a successful ActionResult with a formatted message.
func Successf(format string, args ...any) ActionResult {
	return ActionResult{Success: true, Message: fmt.Sprintf(format, args...)}
}
