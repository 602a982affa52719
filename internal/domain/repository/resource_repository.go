package repository

import (
	"context"

	"github.com/oksasatya/devcamper-api/internal/domain/entity"
)

// Page is a plain limit/offset window.
type Page struct {
	Limit  int
	Offset int
}

type BootcampRepository interface {
	Create(ctx context.Context, b *entity.Bootcamp) error
	// CreateLimited inserts b as its owner's single bootcamp and fails with
	// ErrOwnerLimit when the owner already holds one.
	CreateLimited(ctx context.Context, b *entity.Bootcamp) error
	GetByID(ctx context.Context, id string) (*entity.Bootcamp, error)
	GetByIDs(ctx context.Context, ids []string) ([]entity.Bootcamp, error)
	List(ctx context.Context, p Page) ([]entity.Bootcamp, error)
	CountByUser(ctx context.Context, userID string) (int, error)
	Update(ctx context.Context, b *entity.Bootcamp) error
	UpdatePhoto(ctx context.Context, id, photo string) error
	Delete(ctx context.Context, id string) error
}

type CourseRepository interface {
	Create(ctx context.Context, c *entity.Course) error
	GetByID(ctx context.Context, id string) (*entity.Course, error)
	List(ctx context.Context, bootcampID string, p Page) ([]entity.Course, error)
	Update(ctx context.Context, c *entity.Course) error
	Delete(ctx context.Context, id string) error
}

type ReviewRepository interface {
	Create(ctx context.Context, r *entity.Review) error
	GetByID(ctx context.Context, id string) (*entity.Review, error)
	List(ctx context.Context, bootcampID string, p Page) ([]entity.Review, error)
	Update(ctx context.Context, r *entity.Review) error
	Delete(ctx context.Context, id string) error
}
