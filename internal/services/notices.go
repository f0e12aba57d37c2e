package services

import "errors"

// ErrSignInRequired aborts cart/wishlist/review mutations attempted without a
// signed-in user. It is raised locally, never by the store.
var ErrSignInRequired = errors.New("sign in required")

const (
	NoticeSuccess = "success"
	NoticeInfo    = "info"
	NoticeError   = "error"
)

// Notice is a one-shot user-visible message drained on the next page render.
type Notice struct {
	Level   string
	Message string
}

// Notifier receives user-visible notices from the state managers.
type Notifier interface {
	Notify(level, message string)
}
