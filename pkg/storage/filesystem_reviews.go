package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/felixgeelhaar/fortify/retry"

	"github.com/lexguard/lexguard/pkg/domain/legal"
)

// ErrReviewNotFound is returned when a review lookup misses.
var ErrReviewNotFound = errors.New("legal review not found")

// Compile-time check that the repository implements ReviewStore
var _ legal.ReviewStore = (*FilesystemRepository)(nil)

// SaveReview upserts a review by ID.
func (r *FilesystemRepository) SaveReview(review *legal.LegalReview) error {
	reviews, err := r.LoadReviews()
	if err != nil {
		return err
	}

	replaced := false
	for i := range reviews {
		if reviews[i].ID == review.ID {
			reviews[i] = *review
			replaced = true
			break
		}
	}
	if !replaced {
		reviews = append(reviews, *review)
	}

	path, err := r.ResolvePath(ReviewsFile)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(reviews, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal reviews: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}

// LoadReview returns the review with the given ID.
func (r *FilesystemRepository) LoadReview(id string) (*legal.LegalReview, error) {
	reviews, err := r.LoadReviews()
	if err != nil {
		return nil, err
	}
	for i := range reviews {
		if reviews[i].ID == id {
			return &reviews[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrReviewNotFound, id)
}

// LoadReviews returns all stored reviews in insertion order.
func (r *FilesystemRepository) LoadReviews() ([]legal.LegalReview, error) {
	retryer := retry.New[[]legal.LegalReview](r.retryConfig)

	return retryer.Do(context.Background(), func(ctx context.Context) ([]legal.LegalReview, error) {
		path, err := r.ResolvePath(ReviewsFile)
		if err != nil {
			return nil, err
		}

		// #nosec G304 -- Path is resolved and validated via ResolvePath
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return []legal.LegalReview{}, nil
			}
			return nil, fmt.Errorf("failed to read reviews file: %w", err)
		}

		var reviews []legal.LegalReview
		if err := json.Unmarshal(data, &reviews); err != nil {
			return nil, fmt.Errorf("failed to unmarshal reviews: %w", err)
		}
		return reviews, nil
	})
}
