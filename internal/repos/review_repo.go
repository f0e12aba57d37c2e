package repos

import (
	"cocobloom/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ReviewRepo struct{ db *sqlx.DB }

func NewReviewRepo(db *sqlx.DB) *ReviewRepo { return &ReviewRepo{db: db} }

// ByProduct lists a product's reviews, most recent first.
func (r *ReviewRepo) ByProduct(productID string) ([]domain.Review, error) {
	var out []domain.Review
	err := r.db.Select(&out, `
	  SELECT rv.id, rv.product_id, rv.user_id, u.name AS user_name,
	         rv.rating, COALESCE(rv.comment,'') AS comment, rv.created_at
	  FROM reviews rv
	  JOIN users u ON u.id = rv.user_id
	  WHERE rv.product_id = ?
	  ORDER BY datetime(rv.created_at) DESC
	`, productID)
	return out, err
}

// ByProductUser returns a user's review for a product, or sql.ErrNoRows.
func (r *ReviewRepo) ByProductUser(productID, userID string) (domain.Review, error) {
	var rv domain.Review
	err := r.db.Get(&rv, `
	  SELECT rv.id, rv.product_id, rv.user_id, u.name AS user_name,
	         rv.rating, COALESCE(rv.comment,'') AS comment, rv.created_at
	  FROM reviews rv
	  JOIN users u ON u.id = rv.user_id
	  WHERE rv.product_id = ? AND rv.user_id = ?
	`, productID, userID)
	return rv, err
}

func (r *ReviewRepo) Insert(id, productID, userID string, rating int, comment string) error {
	_, err := r.db.Exec(`
	  INSERT INTO reviews(id, product_id, user_id, rating, comment, created_at)
	  VALUES(?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`, id, productID, userID, rating, comment)
	return err
}

func (r *ReviewRepo) Update(id string, rating int, comment string) error {
	_, err := r.db.Exec(`UPDATE reviews SET rating=?, comment=? WHERE id=?`, rating, comment, id)
	return err
}
