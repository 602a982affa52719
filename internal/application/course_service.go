package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/devcamper-api/internal/domain/entity"
	"github.com/oksasatya/devcamper-api/internal/domain/repository"
	"github.com/oksasatya/devcamper-api/pkg/apperror"
)

const courseNotFound = "Course not found"

type CourseInput struct {
	Title        string
	Description  string
	Weeks        int
	Tuition      float64
	MinimumSkill string
}

type CourseService struct {
	repo      repository.CourseRepository
	bootcamps *BootcampService
	logger    logrus.FieldLogger
}

func NewCourseService(repo repository.CourseRepository, bootcamps *BootcampService, logger logrus.FieldLogger) *CourseService {
	return &CourseService{repo: repo, bootcamps: bootcamps, logger: logger}
}

// List returns courses, all of them or those of one bootcamp.
func (s *CourseService) List(ctx context.Context, bootcampID string, p repository.Page) ([]entity.Course, error) {
	if bootcampID != "" {
		if _, err := s.bootcamps.Get(ctx, bootcampID); err != nil {
			return nil, err
		}
	}
	out, err := s.repo.List(ctx, bootcampID, p)
	if err != nil {
		return nil, fromRepo(err, courseNotFound)
	}
	return out, nil
}

func (s *CourseService) Get(ctx context.Context, id string) (*entity.Course, error) {
	if !validID(id) {
		return nil, apperror.NotFound(courseNotFound)
	}
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fromRepo(err, courseNotFound)
	}
	return c, nil
}

// Create adds a course to a bootcamp the requester owns.
func (s *CourseService) Create(ctx context.Context, requester *entity.User, bootcampID string, in CourseInput) (*entity.Course, error) {
	if _, err := s.bootcamps.owned(ctx, requester, bootcampID); err != nil {
		return nil, err
	}
	c := &entity.Course{BootcampID: bootcampID, UserID: requester.ID}
	applyCourseInput(c, in)
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, fromRepo(err, courseNotFound)
	}
	s.logger.WithFields(logrus.Fields{"course_id": c.ID, "bootcamp_id": bootcampID}).Debug("course created")
	return c, nil
}

func (s *CourseService) Update(ctx context.Context, requester *entity.User, id string, in CourseInput) (*entity.Course, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := EnsureOwnerOrAdmin(requester, c.UserID); err != nil {
		return nil, err
	}
	applyCourseInput(c, in)
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, fromRepo(err, courseNotFound)
	}
	return c, nil
}

func (s *CourseService) Delete(ctx context.Context, requester *entity.User, id string) error {
	c, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := EnsureOwnerOrAdmin(requester, c.UserID); err != nil {
		return err
	}
	return fromRepo(s.repo.Delete(ctx, id), courseNotFound)
}

func applyCourseInput(c *entity.Course, in CourseInput) {
	c.Title = in.Title
	c.Description = in.Description
	c.Weeks = in.Weeks
	c.Tuition = in.Tuition
	c.MinimumSkill = in.MinimumSkill
}
