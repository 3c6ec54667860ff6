package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/shopkit-io/shopkit/internal/model"
)

// FeedbackRepositoryInterface defines the interface for feedback data access.
type FeedbackRepositoryInterface interface {
	Insert(ctx context.Context, f *model.Feedback) error
	List(ctx context.Context) ([]model.Feedback, error)
	SetResolved(ctx context.Context, id uuid.UUID, resolved bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// FeedbackService provides business logic for contact-form feedback.
type FeedbackService struct {
	repo FeedbackRepositoryInterface
}

// NewFeedbackService creates a new FeedbackService with the given repository.
func NewFeedbackService(repo FeedbackRepositoryInterface) *FeedbackService {
	return &FeedbackService{repo: repo}
}

// Create records a feedback message.
func (s *FeedbackService) Create(ctx context.Context, req *model.CreateFeedbackRequest) (*model.Feedback, error) {
	if req == nil {
		return nil, ErrInvalidRequest
	}

	f := &model.Feedback{
		ID:      uuid.New(),
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	}
	if err := s.repo.Insert(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

// List retrieves all feedback messages.
func (s *FeedbackService) List(ctx context.Context) ([]model.Feedback, error) {
	return s.repo.List(ctx)
}

// Resolve marks a feedback message as handled.
// Returns ErrFeedbackNotFound if the message doesn't exist.
func (s *FeedbackService) Resolve(ctx context.Context, id uuid.UUID) error {
	return s.repo.SetResolved(ctx, id, true)
}

// Delete removes a feedback message.
// Returns ErrFeedbackNotFound if the message doesn't exist.
func (s *FeedbackService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
