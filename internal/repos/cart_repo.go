package repos

import (
	"cocobloom/internal/domain"

	"github.com/jmoiron/sqlx"
)

type CartRepo struct{ db *sqlx.DB }

func NewCartRepo(db *sqlx.DB) *CartRepo { return &CartRepo{db: db} }

// Lines returns every cart line for a user, oldest first.
func (r *CartRepo) Lines(userID string) ([]domain.CartLine, error) {
	var out []domain.CartLine
	err := r.db.Select(&out, `
	  SELECT product_id, name, unit_price, qty, COALESCE(image,'') AS image, COALESCE(category,'') AS category
	  FROM cart_items
	  WHERE user_id = ?
	  ORDER BY created_at
	`, userID)
	return out, err
}

func (r *CartRepo) Insert(userID string, l domain.CartLine) error {
	_, err := r.db.Exec(`
	  INSERT INTO cart_items(user_id,product_id,name,unit_price,qty,image,category,created_at)
	  VALUES(?,?,?,?,?,?,?,CURRENT_TIMESTAMP)
	`, userID, l.ProductID, l.Name, l.UnitPrice, l.Quantity, l.Image, l.Category)
	return err
}

func (r *CartRepo) SetQty(userID, productID string, qty int) error {
	_, err := r.db.Exec(`
	  UPDATE cart_items SET qty = ?, updated_at = CURRENT_TIMESTAMP
	  WHERE user_id = ? AND product_id = ?
	`, qty, userID, productID)
	return err
}

// Delete is a no-op when the line does not exist.
func (r *CartRepo) Delete(userID, productID string) error {
	_, err := r.db.Exec(`DELETE FROM cart_items WHERE user_id=? AND product_id=?`, userID, productID)
	return err
}

func (r *CartRepo) Clear(userID string) error {
	_, err := r.db.Exec(`DELETE FROM cart_items WHERE user_id=?`, userID)
	return err
}
