package services

import (
	"errors"

	"cocobloom/internal/domain"
	"cocobloom/internal/repos"

	"github.com/google/uuid"
)

type Contact struct {
	Name  string
	Email string
}

type OrderService struct {
	Carts   *repos.CartRepo
	Orders  *repos.OrderRepo
	Offers  *repos.OfferRepo
	Tracker *AnalyticsTracker
}

func NewOrderService(carts *repos.CartRepo, orders *repos.OrderRepo, offers *repos.OfferRepo, tracker *AnalyticsTracker) *OrderService {
	return &OrderService{Carts: carts, Orders: orders, Offers: offers, Tracker: tracker}
}

// Place creates an order from the user's stored cart rows. When the order
// carries an offer attribution, a conversion is recorded with the order total
// as revenue. The caller clears the cart manager after success.
func (s *OrderService) Place(user *domain.User, sid string, contact Contact, offerID string) (string, float64, error) {
	if user == nil {
		return "", 0, ErrSignInRequired
	}

	lines, err := s.Carts.Lines(user.ID)
	if err != nil {
		return "", 0, err
	}
	if len(lines) == 0 {
		return "", 0, errors.New("cart empty")
	}

	total := 0.0
	for _, l := range lines {
		total += l.Subtotal()
	}

	// Drop an attribution that names no known offer.
	if offerID != "" {
		if _, err := s.Offers.Get(offerID); err != nil {
			offerID = ""
		}
	}

	orderID := uuid.NewString()
	if err := s.Orders.Create(orderID, user.ID, sid, contact.Name, contact.Email, offerID, total); err != nil {
		return "", 0, err
	}
	for _, l := range lines {
		if err := s.Orders.InsertItem(orderID, l.ProductID, l.Quantity, l.UnitPrice); err != nil {
			return "", 0, err
		}
	}

	if offerID != "" {
		s.Tracker.TrackConversion(offerID, total)
	}
	return orderID, total, nil
}
