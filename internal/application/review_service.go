package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/devcamper-api/internal/domain/entity"
	"github.com/oksasatya/devcamper-api/internal/domain/repository"
	"github.com/oksasatya/devcamper-api/pkg/apperror"
)

const reviewNotFound = "Review not found"

type ReviewInput struct {
	Title  string
	Text   string
	Rating int
}

type ReviewService struct {
	repo      repository.ReviewRepository
	bootcamps *BootcampService
	logger    logrus.FieldLogger
}

func NewReviewService(repo repository.ReviewRepository, bootcamps *BootcampService, logger logrus.FieldLogger) *ReviewService {
	return &ReviewService{repo: repo, bootcamps: bootcamps, logger: logger}
}

func (s *ReviewService) List(ctx context.Context, bootcampID string, p repository.Page) ([]entity.Review, error) {
	if bootcampID != "" {
		if _, err := s.bootcamps.Get(ctx, bootcampID); err != nil {
			return nil, err
		}
	}
	out, err := s.repo.List(ctx, bootcampID, p)
	if err != nil {
		return nil, fromRepo(err, reviewNotFound)
	}
	return out, nil
}

func (s *ReviewService) Get(ctx context.Context, id string) (*entity.Review, error) {
	if !validID(id) {
		return nil, apperror.NotFound(reviewNotFound)
	}
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fromRepo(err, reviewNotFound)
	}
	return r, nil
}

// Create reviews a bootcamp. A user may review each bootcamp once; the
// unique constraint reports the second attempt as a duplicate.
func (s *ReviewService) Create(ctx context.Context, requester *entity.User, bootcampID string, in ReviewInput) (*entity.Review, error) {
	if err := validateRating(in.Rating); err != nil {
		return nil, err
	}
	if _, err := s.bootcamps.Get(ctx, bootcampID); err != nil {
		return nil, err
	}
	r := &entity.Review{Title: in.Title, Text: in.Text, Rating: in.Rating, BootcampID: bootcampID, UserID: requester.ID}
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, fromRepo(err, reviewNotFound)
	}
	s.logger.WithFields(logrus.Fields{"review_id": r.ID, "bootcamp_id": bootcampID}).Debug("review created")
	return r, nil
}

func (s *ReviewService) Update(ctx context.Context, requester *entity.User, id string, in ReviewInput) (*entity.Review, error) {
	if err := validateRating(in.Rating); err != nil {
		return nil, err
	}
	r, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := EnsureOwnerOrAdmin(requester, r.UserID); err != nil {
		return nil, err
	}
	r.Title, r.Text, r.Rating = in.Title, in.Text, in.Rating
	if err := s.repo.Update(ctx, r); err != nil {
		return nil, fromRepo(err, reviewNotFound)
	}
	return r, nil
}

func (s *ReviewService) Delete(ctx context.Context, requester *entity.User, id string) error {
	r, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := EnsureOwnerOrAdmin(requester, r.UserID); err != nil {
		return err
	}
	return fromRepo(s.repo.Delete(ctx, id), reviewNotFound)
}

func validateRating(rating int) error {
	if rating < 1 || rating > 10 {
		return apperror.Validation("Please add a rating between 1 and 10", map[string]string{"rating": "must be between 1 and 10"})
	}
	return nil
}
