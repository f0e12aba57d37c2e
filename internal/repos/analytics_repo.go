package repos

import (
	"cocobloom/internal/domain"

	"github.com/jmoiron/sqlx"
)

type AnalyticsRepo struct{ db *sqlx.DB }

func NewAnalyticsRepo(db *sqlx.DB) *AnalyticsRepo { return &AnalyticsRepo{db: db} }

// ForDay returns the counter row for (offer, day), or sql.ErrNoRows when no
// event has been recorded yet that day.
func (r *AnalyticsRepo) ForDay(offerID, day string) (domain.OfferStats, error) {
	var s domain.OfferStats
	err := r.db.Get(&s, `
	  SELECT offer_id, day, views, clicks, conversions, revenue
	  FROM offer_analytics
	  WHERE offer_id = ? AND day = ?
	`, offerID, day)
	return s, err
}

func (r *AnalyticsRepo) Create(s domain.OfferStats) error {
	_, err := r.db.Exec(`
	  INSERT INTO offer_analytics(offer_id, day, views, clicks, conversions, revenue)
	  VALUES(?, ?, ?, ?, ?, ?)
	`, s.OfferID, s.Day, s.Views, s.Clicks, s.Conversions, s.Revenue)
	return err
}

// Bump adds the given deltas to an existing (offer, day) row.
func (r *AnalyticsRepo) Bump(offerID, day string, views, clicks, conversions int, revenue float64) error {
	_, err := r.db.Exec(`
	  UPDATE offer_analytics
	  SET views = views + ?, clicks = clicks + ?, conversions = conversions + ?, revenue = revenue + ?
	  WHERE offer_id = ? AND day = ?
	`, views, clicks, conversions, revenue, offerID, day)
	return err
}

// ListRecent returns recent rows for the admin dashboard, newest day first.
func (r *AnalyticsRepo) ListRecent(limit int) ([]domain.OfferStats, error) {
	if limit <= 0 {
		limit = 50
	}
	var out []domain.OfferStats
	err := r.db.Select(&out, `
	  SELECT offer_id, day, views, clicks, conversions, revenue
	  FROM offer_analytics
	  ORDER BY day DESC, offer_id
	  LIMIT ?
	`, limit)
	return out, err
}
