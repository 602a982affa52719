package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/devcamper-api/internal/domain/entity"
	"github.com/oksasatya/devcamper-api/internal/domain/repository"
	"github.com/oksasatya/devcamper-api/pkg/apperror"
)

const (
	bootcampNotFound = "Bootcamp not found"
	maxSearchResults = 50
)

type BootcampInput struct {
	Name        string
	Description string
	Website     string
	Phone       string
	Email       string
	Address     string
	Careers     []string
}

type PhotoUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type BootcampService struct {
	repo      repository.BootcampRepository
	photos    PhotoStore
	index     BootcampIndex
	maxUpload int64
	logger    logrus.FieldLogger
}

// NewBootcampService builds the service. photos and index may be nil when GCS
// or Elasticsearch are not configured.
func NewBootcampService(repo repository.BootcampRepository, photos PhotoStore, index BootcampIndex, maxUpload int64, logger logrus.FieldLogger) *BootcampService {
	return &BootcampService{repo: repo, photos: photos, index: index, maxUpload: maxUpload, logger: logger}
}

// validID reports whether id can name a row. Anything else is a 404.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func (s *BootcampService) List(ctx context.Context, p repository.Page) ([]entity.Bootcamp, error) {
	out, err := s.repo.List(ctx, p)
	if err != nil {
		return nil, fromRepo(err, bootcampNotFound)
	}
	return out, nil
}

func (s *BootcampService) Get(ctx context.Context, id string) (*entity.Bootcamp, error) {
	if !validID(id) {
		return nil, apperror.NotFound(bootcampNotFound)
	}
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fromRepo(err, bootcampNotFound)
	}
	return b, nil
}

// owned loads the bootcamp and checks requester may change it.
func (s *BootcampService) owned(ctx context.Context, requester *entity.User, id string) (*entity.Bootcamp, error) {
	b, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := EnsureOwnerOrAdmin(requester, b.UserID); err != nil {
		return nil, err
	}
	return b, nil
}

// Create publishes a bootcamp. Non-admins may publish only one.
func (s *BootcampService) Create(ctx context.Context, requester *entity.User, in BootcampInput) (*entity.Bootcamp, error) {
	if requester.Role != entity.RoleAdmin {
		n, err := s.repo.CountByUser(ctx, requester.ID)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		if n > 0 {
			return nil, alreadyPublished(requester.ID)
		}
	}
	b := &entity.Bootcamp{UserID: requester.ID}
	applyBootcampInput(b, in)
	create := s.repo.CreateLimited
	if requester.Role == entity.RoleAdmin {
		create = s.repo.Create
	}
	if err := create(ctx, b); err != nil {
		if errors.Is(err, repository.ErrOwnerLimit) {
			return nil, alreadyPublished(requester.ID)
		}
		return nil, fromRepo(err, bootcampNotFound)
	}
	s.reindex(ctx, b)
	return b, nil
}

func alreadyPublished(userID string) error {
	return apperror.Validation(fmt.Sprintf("The user with ID %s has already published a bootcamp", userID), nil)
}

func (s *BootcampService) Update(ctx context.Context, requester *entity.User, id string, in BootcampInput) (*entity.Bootcamp, error) {
	b, err := s.owned(ctx, requester, id)
	if err != nil {
		return nil, err
	}
	applyBootcampInput(b, in)
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, fromRepo(err, bootcampNotFound)
	}
	s.reindex(ctx, b)
	return b, nil
}

func (s *BootcampService) Delete(ctx context.Context, requester *entity.User, id string) error {
	if _, err := s.owned(ctx, requester, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fromRepo(err, bootcampNotFound)
	}
	if s.index != nil {
		if err := s.index.Remove(ctx, id); err != nil {
			s.logger.WithError(err).WithField("bootcamp_id", id).Warn("search index delete failed")
		}
	}
	return nil
}

// UploadPhoto stores an image as photo_<id><ext> and records the name.
func (s *BootcampService) UploadPhoto(ctx context.Context, requester *entity.User, id string, up PhotoUpload) (string, error) {
	b, err := s.owned(ctx, requester, id)
	if err != nil {
		return "", err
	}
	if up.Body == nil {
		return "", apperror.Validation("Please upload a file", nil)
	}
	if !strings.HasPrefix(up.ContentType, "image") {
		return "", apperror.Validation("Please upload an image file", nil)
	}
	if s.maxUpload > 0 && up.Size > s.maxUpload {
		return "", apperror.Validation(fmt.Sprintf("Please upload an image less than %d", s.maxUpload), nil)
	}
	if s.photos == nil {
		return "", apperror.Internal(errors.New("photo storage is not configured"))
	}

	name := "photo_" + b.ID + filepath.Ext(up.Filename)
	if _, err := s.photos.Upload(ctx, name, up.ContentType, up.Body); err != nil {
		return "", apperror.Wrap(apperror.KindInternal, "Problem with file upload", err)
	}
	if err := s.repo.UpdatePhoto(ctx, b.ID, name); err != nil {
		return "", fromRepo(err, bootcampNotFound)
	}
	return name, nil
}

// Search runs a full-text query and returns bootcamps in relevance order.
func (s *BootcampService) Search(ctx context.Context, query string) ([]entity.Bootcamp, error) {
	if strings.TrimSpace(query) == "" {
		return nil, apperror.Validation("Please provide a search query", nil)
	}
	if s.index == nil {
		return nil, apperror.Internal(errors.New("search is not configured"))
	}
	ids, err := s.index.Search(ctx, query, maxSearchResults)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if len(ids) == 0 {
		return []entity.Bootcamp{}, nil
	}
	found, err := s.repo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fromRepo(err, bootcampNotFound)
	}
	byID := make(map[string]entity.Bootcamp, len(found))
	for _, b := range found {
		byID[b.ID] = b
	}
	out := make([]entity.Bootcamp, 0, len(found))
	for _, id := range ids {
		if b, ok := byID[id]; ok {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *BootcampService) reindex(ctx context.Context, b *entity.Bootcamp) {
	if s.index == nil {
		return
	}
	if err := s.index.Index(ctx, b); err != nil {
		s.logger.WithError(err).WithField("bootcamp_id", b.ID).Warn("search index update failed")
	}
}

func applyBootcampInput(b *entity.Bootcamp, in BootcampInput) {
	b.Name = strings.TrimSpace(in.Name)
	b.Description = in.Description
	b.Website = in.Website
	b.Phone = in.Phone
	b.Email = in.Email
	b.Address = in.Address
	b.Careers = in.Careers
	if b.Careers == nil {
		b.Careers = []string{}
	}
}
