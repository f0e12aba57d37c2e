package services

import (
	"sync"

	"cocobloom/internal/domain"
	"cocobloom/internal/repos"
)

// SessionState bundles the per-browser-session commerce state: the cart and
// wishlist managers (torn down on sign-out), the compare tray (survives
// sign-out; it belongs to the tab, not the user) and pending notices.
type SessionState struct {
	mu      sync.Mutex
	notices []Notice

	Cart     *CartManager
	Compare  *CompareTray
	Wishlist *WishlistManager
}

func (s *SessionState) Notify(level, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notices = append(s.notices, Notice{Level: level, Message: message})
}

// DrainNotices returns and clears pending notices.
func (s *SessionState) DrainNotices() []Notice {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.notices
	s.notices = nil
	return out
}

// Registry hands out one SessionState per sid and keeps cart/wishlist state
// in step with identity changes via the auth subscription.
type Registry struct {
	mu     sync.Mutex
	states map[string]*SessionState

	carts  *repos.CartRepo
	wishes *repos.WishlistRepo
	auth   *AuthService
}

func NewRegistry(carts *repos.CartRepo, wishes *repos.WishlistRepo, auth *AuthService) *Registry {
	r := &Registry{
		states: map[string]*SessionState{},
		carts:  carts,
		wishes: wishes,
		auth:   auth,
	}
	auth.Subscribe(r.onIdentityChange)
	return r
}

// For returns the state for a session, creating it on first touch. A fresh
// state seeds its managers from the session's current user so state built
// after sign-in (or after a restart) starts from the remote rows.
func (r *Registry) For(sid string) *SessionState {
	r.mu.Lock()
	if st, ok := r.states[sid]; ok {
		r.mu.Unlock()
		return st
	}
	st := &SessionState{}
	st.Cart = NewCartManager(r.carts, st)
	st.Compare = NewCompareTray(st)
	st.Wishlist = NewWishlistManager(r.wishes, st)
	r.states[sid] = st
	r.mu.Unlock()

	if u, err := r.auth.CurrentUser(sid); err == nil && u != nil {
		st.Cart.SetUser(u)
		st.Wishlist.SetUser(u)
	}
	return st
}

func (r *Registry) onIdentityChange(sid string, u *domain.User) {
	st := r.For(sid)
	st.Cart.SetUser(u)
	st.Wishlist.SetUser(u)
}
