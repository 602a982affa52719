package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/devcamper-api/internal/domain/entity"
	"github.com/oksasatya/devcamper-api/internal/domain/repository"
)

const bootcampColumns = `id, name, description, website, phone, email, address, careers, photo, average_cost, user_id, created_at`

type BootcampRepository struct {
	db DB
}

func NewBootcampRepository(db DB) *BootcampRepository {
	return &BootcampRepository{db: db}
}

func scanBootcamp(row pgx.Row) (*entity.Bootcamp, error) {
	b := &entity.Bootcamp{}
	err := row.Scan(&b.ID, &b.Name, &b.Description, &b.Website, &b.Phone, &b.Email, &b.Address,
		&b.Careers, &b.Photo, &b.AverageCost, &b.UserID, &b.CreatedAt)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func collectBootcamps(rows pgx.Rows, operation string) ([]entity.Bootcamp, error) {
	defer rows.Close()
	out := []entity.Bootcamp{}
	for rows.Next() {
		b, err := scanBootcamp(rows)
		if err != nil {
			return nil, mapError(err, operation)
		}
		out = append(out, *b)
	}
	return out, mapError(rows.Err(), operation)
}

func (r *BootcampRepository) Create(ctx context.Context, b *entity.Bootcamp) error {
	return r.insert(ctx, b, false)
}

// CreateLimited relies on the bootcamps_one_per_publisher partial index, so
// concurrent inserts for one owner cannot both succeed.
func (r *BootcampRepository) CreateLimited(ctx context.Context, b *entity.Bootcamp) error {
	return r.insert(ctx, b, true)
}

func (r *BootcampRepository) insert(ctx context.Context, b *entity.Bootcamp, limited bool) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO bootcamps (name, description, website, phone, email, address, careers, user_id, owner_limited)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, photo, created_at
	`, b.Name, b.Description, b.Website, b.Phone, b.Email, b.Address, b.Careers, b.UserID, limited)
	return mapError(row.Scan(&b.ID, &b.Photo, &b.CreatedAt), "insert bootcamp")
}

func (r *BootcampRepository) GetByID(ctx context.Context, id string) (*entity.Bootcamp, error) {
	b, err := scanBootcamp(r.db.QueryRow(ctx, `SELECT `+bootcampColumns+` FROM bootcamps WHERE id = $1`, id))
	if err != nil {
		return nil, mapError(err, "get bootcamp")
	}
	return b, nil
}

func (r *BootcampRepository) GetByIDs(ctx context.Context, ids []string) ([]entity.Bootcamp, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bootcampColumns+` FROM bootcamps WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, mapError(err, "get bootcamps by ids")
	}
	return collectBootcamps(rows, "get bootcamps by ids")
}

func (r *BootcampRepository) List(ctx context.Context, p repository.Page) ([]entity.Bootcamp, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+bootcampColumns+` FROM bootcamps
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, p.Limit, p.Offset)
	if err != nil {
		return nil, mapError(err, "list bootcamps")
	}
	return collectBootcamps(rows, "list bootcamps")
}

func (r *BootcampRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM bootcamps WHERE user_id = $1`, userID).Scan(&n)
	return n, mapError(err, "count bootcamps")
}

func (r *BootcampRepository) Update(ctx context.Context, b *entity.Bootcamp) error {
	res, err := r.db.Exec(ctx, `
		UPDATE bootcamps
		SET name = $1, description = $2, website = $3, phone = $4, email = $5, address = $6, careers = $7
		WHERE id = $8
	`, b.Name, b.Description, b.Website, b.Phone, b.Email, b.Address, b.Careers, b.ID)
	if err != nil {
		return mapError(err, "update bootcamp")
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *BootcampRepository) UpdatePhoto(ctx context.Context, id, photo string) error {
	res, err := r.db.Exec(ctx, `UPDATE bootcamps SET photo = $1 WHERE id = $2`, photo, id)
	if err != nil {
		return mapError(err, "update bootcamp photo")
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes the bootcamp; courses and reviews cascade in the schema.
func (r *BootcampRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.Exec(ctx, `DELETE FROM bootcamps WHERE id = $1`, id)
	if err != nil {
		return mapError(err, "delete bootcamp")
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.BootcampRepository = (*BootcampRepository)(nil)
