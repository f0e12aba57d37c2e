package repos

import (
	"cocobloom/internal/domain"

	"github.com/jmoiron/sqlx"
)

type WishlistRepo struct{ db *sqlx.DB }

func NewWishlistRepo(db *sqlx.DB) *WishlistRepo { return &WishlistRepo{db: db} }

// ProductIDs returns the wishlist membership for a user.
func (r *WishlistRepo) ProductIDs(userID string) ([]string, error) {
	var out []string
	err := r.db.Select(&out, `SELECT product_id FROM wishlist_items WHERE user_id=?`, userID)
	return out, err
}

func (r *WishlistRepo) Add(userID, productID string) error {
	_, err := r.db.Exec(`
	  INSERT INTO wishlist_items(user_id, product_id, created_at)
	  VALUES(?, ?, CURRENT_TIMESTAMP)
	  ON CONFLICT(user_id, product_id) DO NOTHING
	`, userID, productID)
	return err
}

func (r *WishlistRepo) Remove(userID, productID string) error {
	_, err := r.db.Exec(`DELETE FROM wishlist_items WHERE user_id=? AND product_id=?`, userID, productID)
	return err
}

// Products joins membership against the catalog for the wishlist page.
func (r *WishlistRepo) Products(userID string) ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `
	  SELECT p.id, p.category_id, p.name, COALESCE(p.description,'') AS description,
	         p.price, COALESCE(p.image,'') AS image, p.active,
	         p.created_at, COALESCE(p.updated_at,'') AS updated_at
	  FROM wishlist_items wi
	  JOIN products p ON p.id = wi.product_id
	  WHERE wi.user_id = ?
	  ORDER BY p.name
	`, userID)
	return out, err
}
