package services

import (
	"sync"

	"cocobloom/internal/domain"
	applog "cocobloom/internal/log"
	"cocobloom/internal/repos"
)

// WishlistManager owns a user's wishlist membership as a local set mirrored
// to wishlist_items rows. Membership is loaded once per identity; callers
// suspecting external changes must Refresh explicitly.
type WishlistManager struct {
	mu     sync.Mutex
	repo   *repos.WishlistRepo
	notify Notifier
	user   *domain.User
	ids    map[string]struct{}
}

func NewWishlistManager(repo *repos.WishlistRepo, notify Notifier) *WishlistManager {
	return &WishlistManager{repo: repo, notify: notify, ids: map[string]struct{}{}}
}

func (m *WishlistManager) SetUser(u *domain.User) {
	m.mu.Lock()
	m.user = u
	m.ids = map[string]struct{}{}
	m.mu.Unlock()
	if u != nil {
		m.Refresh()
	}
}

// Refresh reloads membership from the store.
func (m *WishlistManager) Refresh() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return
	}
	ids, err := m.repo.ProductIDs(m.user.ID)
	if err != nil {
		applog.Error(nil, "wishlist.fetch.fail", err, map[string]any{"user": m.user.ID})
		return
	}
	m.ids = make(map[string]struct{}, len(ids))
	for _, id := range ids {
		m.ids[id] = struct{}{}
	}
}

// Toggle flips membership for a product. Returns whether the product is a
// member after the call.
func (m *WishlistManager) Toggle(productID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		m.notify.Notify(NoticeInfo, "Please sign in to save items to your wishlist")
		return false, ErrSignInRequired
	}

	if _, ok := m.ids[productID]; ok {
		delete(m.ids, productID)
		if err := m.repo.Remove(m.user.ID, productID); err != nil {
			applog.Error(nil, "wishlist.sync.fail", err, map[string]any{"op": "remove", "product": productID})
		}
		m.notify.Notify(NoticeSuccess, "Removed from wishlist")
		return false, nil
	}

	m.ids[productID] = struct{}{}
	if err := m.repo.Add(m.user.ID, productID); err != nil {
		applog.Error(nil, "wishlist.sync.fail", err, map[string]any{"op": "add", "product": productID})
	}
	m.notify.Notify(NoticeSuccess, "Saved to wishlist")
	return true, nil
}

func (m *WishlistManager) IsIn(productID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.ids[productID]
	return ok
}

func (m *WishlistManager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.ids)
}
