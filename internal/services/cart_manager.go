package services

import (
	"sync"

	"cocobloom/internal/domain"
	applog "cocobloom/internal/log"
	"cocobloom/internal/repos"
)

// CartManager owns the authoritative cart lines for one session's signed-in
// user. Every mutation updates local state first and then mirrors to the
// cart_items rows; a failed mirror is logged and the local state stands until
// the next identity change triggers an authoritative refetch.
type CartManager struct {
	mu     sync.Mutex
	repo   *repos.CartRepo
	notify Notifier
	user   *domain.User
	lines  []domain.CartLine
}

func NewCartManager(repo *repos.CartRepo, notify Notifier) *CartManager {
	return &CartManager{repo: repo, notify: notify}
}

// SetUser reacts to an identity change. A new user replaces local state with
// the remote rows; sign-out clears local state without a remote call.
func (m *CartManager) SetUser(u *domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.user = u
	m.lines = nil
	if u == nil {
		return
	}
	lines, err := m.repo.Lines(u.ID)
	if err != nil {
		applog.Error(nil, "cart.fetch.fail", err, map[string]any{"user": u.ID})
		return
	}
	m.lines = lines
}

// AddToCart creates a line with quantity 1 or increments an existing one.
func (m *CartManager) AddToCart(p domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		m.notify.Notify(NoticeInfo, "Please sign in to add items to your cart")
		return ErrSignInRequired
	}

	for i := range m.lines {
		if m.lines[i].ProductID == p.ID {
			m.lines[i].Quantity++
			if err := m.repo.SetQty(m.user.ID, p.ID, m.lines[i].Quantity); err != nil {
				applog.Error(nil, "cart.sync.fail", err, map[string]any{"op": "inc", "product": p.ID})
			}
			m.notify.Notify(NoticeSuccess, "Increased "+p.Name+" quantity")
			return nil
		}
	}

	line := domain.CartLine{
		ProductID: p.ID,
		Name:      p.Name,
		UnitPrice: p.Price,
		Quantity:  1,
		Image:     p.Image,
		Category:  p.CategoryID,
	}
	m.lines = append(m.lines, line)
	if err := m.repo.Insert(m.user.ID, line); err != nil {
		applog.Error(nil, "cart.sync.fail", err, map[string]any{"op": "insert", "product": p.ID})
	}
	m.notify.Notify(NoticeSuccess, "Added "+p.Name+" to cart")
	return nil
}

// RemoveFromCart is idempotent; removing an absent line changes nothing.
func (m *CartManager) RemoveFromCart(productID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.removeLocked(productID)
}

func (m *CartManager) removeLocked(productID string) {
	kept := m.lines[:0]
	for _, l := range m.lines {
		if l.ProductID != productID {
			kept = append(kept, l)
		}
	}
	m.lines = kept
	if m.user == nil {
		return
	}
	if err := m.repo.Delete(m.user.ID, productID); err != nil {
		applog.Error(nil, "cart.sync.fail", err, map[string]any{"op": "delete", "product": productID})
	}
}

// UpdateQuantity sets a line's quantity; below 1 it removes the line, since
// no cart line may hold quantity 0.
func (m *CartManager) UpdateQuantity(productID string, qty int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if qty < 1 {
		m.removeLocked(productID)
		return
	}
	for i := range m.lines {
		if m.lines[i].ProductID == productID {
			m.lines[i].Quantity = qty
			if m.user != nil {
				if err := m.repo.SetQty(m.user.ID, productID, qty); err != nil {
					applog.Error(nil, "cart.sync.fail", err, map[string]any{"op": "setqty", "product": productID})
				}
			}
			return
		}
	}
}

func (m *CartManager) ClearCart() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lines = nil
	if m.user == nil {
		return
	}
	if err := m.repo.Clear(m.user.ID); err != nil {
		applog.Error(nil, "cart.sync.fail", err, map[string]any{"op": "clear"})
	}
}

func (m *CartManager) Lines() []domain.CartLine {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.CartLine, len(m.lines))
	copy(out, m.lines)
	return out
}

// TotalItems is the sum of line quantities, recomputed on every call.
func (m *CartManager) TotalItems() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, l := range m.lines {
		n += l.Quantity
	}
	return n
}

func (m *CartManager) TotalPrice() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	sum := 0.0
	for _, l := range m.lines {
		sum += l.Subtotal()
	}
	return sum
}
