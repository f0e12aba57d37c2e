package services

import (
	"database/sql"
	"errors"
	"sync"
	"time"

	"cocobloom/internal/domain"
	applog "cocobloom/internal/log"
	"cocobloom/internal/repos"
)

// AnalyticsTracker accumulates day-bucketed offer counters. Views are
// deduplicated per offer per browser session; clicks and conversions count
// every call. Failures are logged and swallowed, never surfaced to the UI.
//
// The read-then-write increment is not atomic; near-simultaneous events for
// one (offer, day) can lose an increment. Accepted for low-traffic counters.
type AnalyticsTracker struct {
	mu   sync.Mutex
	repo *repos.AnalyticsRepo
	seen map[string]map[string]struct{} // sid -> offer ids already viewed
}

func NewAnalyticsTracker(repo *repos.AnalyticsRepo) *AnalyticsTracker {
	return &AnalyticsTracker{repo: repo, seen: map[string]map[string]struct{}{}}
}

// day buckets on the server-local calendar date.
func day() string { return time.Now().Format("2006-01-02") }

// TrackView counts at most one view per offer per session.
func (t *AnalyticsTracker) TrackView(sid, offerID string) {
	t.mu.Lock()
	s, ok := t.seen[sid]
	if !ok {
		s = map[string]struct{}{}
		t.seen[sid] = s
	}
	if _, dup := s[offerID]; dup {
		t.mu.Unlock()
		return
	}
	s[offerID] = struct{}{}
	t.mu.Unlock()

	t.record(offerID, 1, 0, 0, 0)
}

// TrackClick counts every call.
func (t *AnalyticsTracker) TrackClick(offerID string) {
	t.record(offerID, 0, 1, 0, 0)
}

// TrackConversion counts every call and accumulates revenue.
func (t *AnalyticsTracker) TrackConversion(offerID string, revenue float64) {
	t.record(offerID, 0, 0, 1, revenue)
}

func (t *AnalyticsTracker) record(offerID string, views, clicks, conversions int, revenue float64) {
	d := day()
	_, err := t.repo.ForDay(offerID, d)
	switch {
	case err == nil:
		if err := t.repo.Bump(offerID, d, views, clicks, conversions, revenue); err != nil {
			applog.Error(nil, "analytics.bump.fail", err, map[string]any{"offer": offerID})
		}
	case errors.Is(err, sql.ErrNoRows):
		s := domain.OfferStats{OfferID: offerID, Day: d, Views: views, Clicks: clicks, Conversions: conversions, Revenue: revenue}
		if err := t.repo.Create(s); err != nil {
			applog.Error(nil, "analytics.create.fail", err, map[string]any{"offer": offerID})
		}
	default:
		applog.Error(nil, "analytics.read.fail", err, map[string]any{"offer": offerID})
	}
}
