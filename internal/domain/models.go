package domain

type Category struct {
	ID        string `db:"id"`
	Name      string `db:"name"`
	CreatedAt string `db:"created_at"`
	UpdatedAt string `db:"updated_at"`
}

type Product struct {
	ID          string  `db:"id"`
	CategoryID  string  `db:"category_id"`
	Name        string  `db:"name"`
	Description string  `db:"description"`
	Price       float64 `db:"price"`
	Image       string  `db:"image"`
	Active      bool    `db:"active"`
	CreatedAt   string  `db:"created_at"`
	UpdatedAt   string  `db:"updated_at"`
}

// Offer is a combo or festival promotion shown on the home page and tracked
// by the offer analytics counters.
type Offer struct {
	ID          string  `db:"id"`
	Title       string  `db:"title"`
	Description string  `db:"description"`
	Kind        string  `db:"kind"` // combo | festival
	Price       float64 `db:"price"`
	Image       string  `db:"image"`
	Active      bool    `db:"active"`
	CreatedAt   string  `db:"created_at"`
}

// Section is a toggleable home-page block (hero, offers, testimonials, ...).
type Section struct {
	Key     string `db:"key"`
	Title   string `db:"title"`
	Visible bool   `db:"visible"`
	Sort    int    `db:"sort"`
}

type Testimonial struct {
	ID     string `db:"id"`
	Author string `db:"author"`
	Quote  string `db:"quote"`
	Rating int    `db:"rating"`
}
