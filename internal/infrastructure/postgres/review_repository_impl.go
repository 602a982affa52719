package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/devcamper-api/internal/domain/entity"
	"github.com/oksasatya/devcamper-api/internal/domain/repository"
)

const reviewColumns = `id, title, text, rating, bootcamp_id, user_id, created_at`

type ReviewRepository struct {
	db DB
}

func NewReviewRepository(db DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func scanReview(row pgx.Row) (*entity.Review, error) {
	rv := &entity.Review{}
	if err := row.Scan(&rv.ID, &rv.Title, &rv.Text, &rv.Rating, &rv.BootcampID, &rv.UserID, &rv.CreatedAt); err != nil {
		return nil, err
	}
	return rv, nil
}

// Create inserts the review. A second review by the same user on the same
// bootcamp violates reviews_bootcamp_user_key and surfaces as ErrDuplicate.
func (r *ReviewRepository) Create(ctx context.Context, rv *entity.Review) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO reviews (title, text, rating, bootcamp_id, user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, rv.Title, rv.Text, rv.Rating, rv.BootcampID, rv.UserID)
	return mapError(row.Scan(&rv.ID, &rv.CreatedAt), "insert review")
}

func (r *ReviewRepository) GetByID(ctx context.Context, id string) (*entity.Review, error) {
	rv, err := scanReview(r.db.QueryRow(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE id = $1`, id))
	if err != nil {
		return nil, mapError(err, "get review")
	}
	return rv, nil
}

func (r *ReviewRepository) List(ctx context.Context, bootcampID string, p repository.Page) ([]entity.Review, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if bootcampID != "" {
		rows, err = r.db.Query(ctx, `
			SELECT `+reviewColumns+` FROM reviews WHERE bootcamp_id = $1
			ORDER BY created_at DESC LIMIT $2 OFFSET $3
		`, bootcampID, p.Limit, p.Offset)
	} else {
		rows, err = r.db.Query(ctx, `
			SELECT `+reviewColumns+` FROM reviews
			ORDER BY created_at DESC LIMIT $1 OFFSET $2
		`, p.Limit, p.Offset)
	}
	if err != nil {
		return nil, mapError(err, "list reviews")
	}
	defer rows.Close()

	out := []entity.Review{}
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, mapError(err, "list reviews")
		}
		out = append(out, *rv)
	}
	return out, mapError(rows.Err(), "list reviews")
}

func (r *ReviewRepository) Update(ctx context.Context, rv *entity.Review) error {
	res, err := r.db.Exec(ctx, `
		UPDATE reviews SET title = $1, text = $2, rating = $3 WHERE id = $4
	`, rv.Title, rv.Text, rv.Rating, rv.ID)
	if err != nil {
		return mapError(err, "update review")
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ReviewRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return mapError(err, "delete review")
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.ReviewRepository = (*ReviewRepository)(nil)
