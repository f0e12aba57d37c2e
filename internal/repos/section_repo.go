package repos

import (
	"cocobloom/internal/domain"

	"github.com/jmoiron/sqlx"
)

type SectionRepo struct{ db *sqlx.DB }

func NewSectionRepo(db *sqlx.DB) *SectionRepo { return &SectionRepo{db: db} }

func (r *SectionRepo) List() ([]domain.Section, error) {
	var out []domain.Section
	err := r.db.Select(&out, `SELECT key, title, visible, sort FROM site_sections ORDER BY sort`)
	return out, err
}

func (r *SectionRepo) SetVisible(key string, visible bool) error {
	_, err := r.db.Exec(`UPDATE site_sections SET visible=? WHERE key=?`, visible, key)
	return err
}

func (r *SectionRepo) Testimonials() ([]domain.Testimonial, error) {
	var out []domain.Testimonial
	err := r.db.Select(&out, `SELECT id, author, quote, rating FROM testimonials ORDER BY id`)
	return out, err
}
