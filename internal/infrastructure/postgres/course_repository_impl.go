package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/devcamper-api/internal/domain/entity"
	"github.com/oksasatya/devcamper-api/internal/domain/repository"
)

const courseColumns = `id, title, description, weeks, tuition, minimum_skill, bootcamp_id, user_id, created_at`

type CourseRepository struct {
	db DB
}

func NewCourseRepository(db DB) *CourseRepository {
	return &CourseRepository{db: db}
}

func scanCourse(row pgx.Row) (*entity.Course, error) {
	c := &entity.Course{}
	err := row.Scan(&c.ID, &c.Title, &c.Description, &c.Weeks, &c.Tuition, &c.MinimumSkill,
		&c.BootcampID, &c.UserID, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *CourseRepository) Create(ctx context.Context, c *entity.Course) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO courses (title, description, weeks, tuition, minimum_skill, bootcamp_id, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`, c.Title, c.Description, c.Weeks, c.Tuition, c.MinimumSkill, c.BootcampID, c.UserID)
	return mapError(row.Scan(&c.ID, &c.CreatedAt), "insert course")
}

func (r *CourseRepository) GetByID(ctx context.Context, id string) (*entity.Course, error) {
	c, err := scanCourse(r.db.QueryRow(ctx, `SELECT `+courseColumns+` FROM courses WHERE id = $1`, id))
	if err != nil {
		return nil, mapError(err, "get course")
	}
	return c, nil
}

// List returns courses, optionally restricted to one bootcamp.
func (r *CourseRepository) List(ctx context.Context, bootcampID string, p repository.Page) ([]entity.Course, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if bootcampID != "" {
		rows, err = r.db.Query(ctx, `
			SELECT `+courseColumns+` FROM courses WHERE bootcamp_id = $1
			ORDER BY created_at DESC LIMIT $2 OFFSET $3
		`, bootcampID, p.Limit, p.Offset)
	} else {
		rows, err = r.db.Query(ctx, `
			SELECT `+courseColumns+` FROM courses
			ORDER BY created_at DESC LIMIT $1 OFFSET $2
		`, p.Limit, p.Offset)
	}
	if err != nil {
		return nil, mapError(err, "list courses")
	}
	defer rows.Close()

	out := []entity.Course{}
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, mapError(err, "list courses")
		}
		out = append(out, *c)
	}
	return out, mapError(rows.Err(), "list courses")
}

func (r *CourseRepository) Update(ctx context.Context, c *entity.Course) error {
	res, err := r.db.Exec(ctx, `
		UPDATE courses
		SET title = $1, description = $2, weeks = $3, tuition = $4, minimum_skill = $5
		WHERE id = $6
	`, c.Title, c.Description, c.Weeks, c.Tuition, c.MinimumSkill, c.ID)
	if err != nil {
		return mapError(err, "update course")
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *CourseRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return mapError(err, "delete course")
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.CourseRepository = (*CourseRepository)(nil)
