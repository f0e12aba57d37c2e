package services

import (
	"database/sql"
	"errors"

	"cocobloom/internal/domain"
	"cocobloom/internal/repos"

	"github.com/google/uuid"
)

type ProductReviews struct {
	Reviews []domain.Review
	Mine    *domain.Review
	Average float64
}

// ReviewService loads and submits product reviews; one review per
// (product, user), enforced by check-then-update-or-insert with a unique
// index as backstop.
type ReviewService struct {
	Reviews *repos.ReviewRepo
}

func NewReviewService(r *repos.ReviewRepo) *ReviewService { return &ReviewService{Reviews: r} }

// Fetch loads a product's reviews most-recent-first and, when a user is
// signed in, picks out that user's own review.
func (s *ReviewService) Fetch(productID string, user *domain.User) (ProductReviews, error) {
	list, err := s.Reviews.ByProduct(productID)
	if err != nil {
		return ProductReviews{}, err
	}
	pr := ProductReviews{Reviews: list, Average: averageRating(list)}
	if user != nil {
		for i := range list {
			if list[i].UserID == user.ID {
				pr.Mine = &list[i]
				break
			}
		}
	}
	return pr, nil
}

// Submit updates the user's existing review or inserts a new one. Callers
// refetch afterwards; there is no incremental update of the average.
func (s *ReviewService) Submit(user *domain.User, productID string, rating int, comment string) error {
	if user == nil {
		return ErrSignInRequired
	}
	existing, err := s.Reviews.ByProductUser(productID, user.ID)
	switch {
	case err == nil:
		return s.Reviews.Update(existing.ID, rating, comment)
	case errors.Is(err, sql.ErrNoRows):
		return s.Reviews.Insert(uuid.NewString(), productID, user.ID, rating, comment)
	default:
		return err
	}
}

// averageRating is 0 for an empty list, never NaN.
func averageRating(list []domain.Review) float64 {
	if len(list) == 0 {
		return 0
	}
	sum := 0
	for _, r := range list {
		sum += r.Rating
	}
	return float64(sum) / float64(len(list))
}
