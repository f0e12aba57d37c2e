package repos

import (
	"cocobloom/internal/domain"

	"github.com/jmoiron/sqlx"
)

type OfferRepo struct{ db *sqlx.DB }

func NewOfferRepo(db *sqlx.DB) *OfferRepo { return &OfferRepo{db: db} }

func (r *OfferRepo) ListActive() ([]domain.Offer, error) {
	var out []domain.Offer
	err := r.db.Select(&out, `
	  SELECT id, title, COALESCE(description,'') AS description, kind, price,
	         COALESCE(image,'') AS image, active, created_at
	  FROM offers
	  WHERE active = 1
	  ORDER BY kind, created_at DESC
	`)
	return out, err
}

func (r *OfferRepo) Get(id string) (domain.Offer, error) {
	var o domain.Offer
	err := r.db.Get(&o, `
	  SELECT id, title, COALESCE(description,'') AS description, kind, price,
	         COALESCE(image,'') AS image, active, created_at
	  FROM offers
	  WHERE id = ?
	`, id)
	return o, err
}
