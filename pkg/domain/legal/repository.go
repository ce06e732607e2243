package legal

// ReviewStore persists legal review records.
type ReviewStore interface {
	SaveReview(review *LegalReview) error
	LoadReview(id string) (*LegalReview, error)
	LoadReviews() ([]LegalReview, error)
}
