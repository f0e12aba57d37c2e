package domain

// CartLine is one distinct product in a user's cart. At most one line exists
// per (user, product) pair; quantity never drops below 1.
type CartLine struct {
	ProductID string  `db:"product_id"`
	Name      string  `db:"name"`
	UnitPrice float64 `db:"unit_price"`
	Quantity  int     `db:"qty"`
	Image     string  `db:"image"`
	Category  string  `db:"category"`
}

func (l CartLine) Subtotal() float64 { return l.UnitPrice * float64(l.Quantity) }

type Review struct {
	ID        string `db:"id"`
	ProductID string `db:"product_id"`
	UserID    string `db:"user_id"`
	UserName  string `db:"user_name"`
	Rating    int    `db:"rating"`
	Comment   string `db:"comment"`
	CreatedAt string `db:"created_at"`
}

// OfferStats is one day-bucketed counter row. At most one row exists per
// (offer, day) pair; the day is the server-local calendar date.
type OfferStats struct {
	OfferID     string  `db:"offer_id"`
	Day         string  `db:"day"` // YYYY-MM-DD
	Views       int     `db:"views"`
	Clicks      int     `db:"clicks"`
	Conversions int     `db:"conversions"`
	Revenue     float64 `db:"revenue"`
}
