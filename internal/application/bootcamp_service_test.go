package application

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/devcamper-api/internal/domain/entity"
	"github.com/oksasatya/devcamper-api/internal/domain/repository"
	"github.com/oksasatya/devcamper-api/pkg/apperror"
)

type resourceStack struct {
	bootcamps *memBootcamps
	photos    *memPhotos
	index     *memIndex
	svc       *BootcampService
}

func newResourceStack() *resourceStack {
	logger, _ := test.NewNullLogger()
	rs := &resourceStack{bootcamps: newMemBootcamps(), photos: &memPhotos{}, index: &memIndex{}}
	rs.svc = NewBootcampService(rs.bootcamps, rs.photos, rs.index, 1000, logger)
	return rs
}

var (
	publisher = &entity.User{ID: "11111111-1111-1111-1111-111111111111", Role: entity.RolePublisher}
	other     = &entity.User{ID: "22222222-2222-2222-2222-222222222222", Role: entity.RolePublisher}
	admin     = &entity.User{ID: "33333333-3333-3333-3333-333333333333", Role: entity.RoleAdmin}
)

func TestBootcampService_CreateOnePerPublisher(t *testing.T) {
	rs := newResourceStack()
	ctx := context.Background()

	b, err := rs.svc.Create(ctx, publisher, BootcampInput{Name: "Devworks", Description: "d"})
	require.NoError(t, err)
	assert.Equal(t, publisher.ID, b.UserID)
	assert.True(t, rs.index.indexed[b.ID])

	_, err = rs.svc.Create(ctx, publisher, BootcampInput{Name: "Second", Description: "d"})
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	assert.Contains(t, err.Error(), "has already published a bootcamp")

	_, err = rs.svc.Create(ctx, admin, BootcampInput{Name: "Admin 1", Description: "d"})
	require.NoError(t, err)
	_, err = rs.svc.Create(ctx, admin, BootcampInput{Name: "Admin 2", Description: "d"})
	require.NoError(t, err)
}

func TestBootcampService_ConcurrentCreateOnePerPublisher(t *testing.T) {
	rs := newResourceStack()
	rs.bootcamps.staleCount = true

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = rs.svc.Create(context.Background(), publisher, BootcampInput{Name: fmt.Sprintf("Camp %d", i), Description: "d"})
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
		assert.Contains(t, err.Error(), "has already published a bootcamp")
	}
	assert.Equal(t, 1, ok)
}

func TestBootcampService_DuplicateName(t *testing.T) {
	rs := newResourceStack()
	_, err := rs.svc.Create(context.Background(), publisher, BootcampInput{Name: "Devworks"})
	require.NoError(t, err)
	_, err = rs.svc.Create(context.Background(), other, BootcampInput{Name: "Devworks"})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestBootcampService_Ownership(t *testing.T) {
	rs := newResourceStack()
	ctx := context.Background()
	b, err := rs.svc.Create(ctx, publisher, BootcampInput{Name: "Devworks"})
	require.NoError(t, err)

	_, err = rs.svc.Update(ctx, other, b.ID, BootcampInput{Name: "Hijacked"})
	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))

	up, err := rs.svc.Update(ctx, publisher, b.ID, BootcampInput{Name: "Devworks 2"})
	require.NoError(t, err)
	assert.Equal(t, "Devworks 2", up.Name)

	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(rs.svc.Delete(ctx, other, b.ID)))
	require.NoError(t, rs.svc.Delete(ctx, admin, b.ID))
	assert.False(t, rs.index.indexed[b.ID])

	_, err = rs.svc.Get(ctx, b.ID)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestBootcampService_GetInvalidID(t *testing.T) {
	rs := newResourceStack()
	_, err := rs.svc.Get(context.Background(), "not-a-uuid")
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestBootcampService_UploadPhoto(t *testing.T) {
	rs := newResourceStack()
	ctx := context.Background()
	b, err := rs.svc.Create(ctx, publisher, BootcampInput{Name: "Devworks"})
	require.NoError(t, err)

	tests := []struct {
		name string
		up   PhotoUpload
		who  *entity.User
		want apperror.Kind
	}{
		{"not an image", PhotoUpload{Filename: "a.txt", ContentType: "text/plain", Size: 3, Body: strings.NewReader("abc")}, publisher, apperror.KindValidation},
		{"too large", PhotoUpload{Filename: "a.jpg", ContentType: "image/jpeg", Size: 5000, Body: strings.NewReader("abc")}, publisher, apperror.KindValidation},
		{"not owner", PhotoUpload{Filename: "a.jpg", ContentType: "image/jpeg", Size: 3, Body: strings.NewReader("abc")}, other, apperror.KindForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := rs.svc.UploadPhoto(ctx, tt.who, b.ID, tt.up)
			assert.Equal(t, tt.want, apperror.KindOf(err))
		})
	}

	name, err := rs.svc.UploadPhoto(ctx, publisher, b.ID, PhotoUpload{Filename: "me.png", ContentType: "image/png", Size: 3, Body: strings.NewReader("png")})
	require.NoError(t, err)
	assert.Equal(t, "photo_"+b.ID+".png", name)
	assert.Equal(t, "png", rs.photos.uploaded[name])

	got, err := rs.svc.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, name, got.Photo)
}

func TestBootcampService_SearchKeepsRelevanceOrder(t *testing.T) {
	rs := newResourceStack()
	ctx := context.Background()
	first, err := rs.svc.Create(ctx, admin, BootcampInput{Name: "A"})
	require.NoError(t, err)
	second, err := rs.svc.Create(ctx, admin, BootcampInput{Name: "B"})
	require.NoError(t, err)

	rs.index.hits = []string{second.ID, uuid.NewString(), first.ID}
	got, err := rs.svc.Search(ctx, "web")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, second.ID, got[0].ID)
	assert.Equal(t, first.ID, got[1].ID)

	_, err = rs.svc.Search(ctx, "  ")
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestCourseAndReviewServices(t *testing.T) {
	rs := newResourceStack()
	ctx := context.Background()
	logger, _ := test.NewNullLogger()
	b, err := rs.svc.Create(ctx, publisher, BootcampInput{Name: "Devworks"})
	require.NoError(t, err)

	courses := NewCourseService(&memCourses{rows: map[string]*entity.Course{}}, rs.svc, logger)
	_, err = courses.Create(ctx, other, b.ID, CourseInput{Title: "Go"})
	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
	c, err := courses.Create(ctx, publisher, b.ID, CourseInput{Title: "Go", Weeks: 8, MinimumSkill: "beginner"})
	require.NoError(t, err)
	assert.Equal(t, b.ID, c.BootcampID)
	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(courses.Delete(ctx, other, c.ID)))
	require.NoError(t, courses.Delete(ctx, admin, c.ID))

	reviewer := &entity.User{ID: "44444444-4444-4444-4444-444444444444", Role: entity.RoleUser}
	reviews := NewReviewService(&memReviews{rows: map[string]*entity.Review{}}, rs.svc, logger)
	_, err = reviews.Create(ctx, reviewer, b.ID, ReviewInput{Title: "t", Text: "x", Rating: 11})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	r, err := reviews.Create(ctx, reviewer, b.ID, ReviewInput{Title: "t", Text: "x", Rating: 9})
	require.NoError(t, err)
	_, err = reviews.Create(ctx, reviewer, b.ID, ReviewInput{Title: "again", Text: "x", Rating: 9})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	_, err = reviews.Update(ctx, publisher, r.ID, ReviewInput{Title: "t", Text: "x", Rating: 1})
	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
	up, err := reviews.Update(ctx, reviewer, r.ID, ReviewInput{Title: "t2", Text: "x", Rating: 7})
	require.NoError(t, err)
	assert.Equal(t, 7, up.Rating)

	_, err = reviews.List(ctx, uuid.NewString(), repository.Page{Limit: 10})
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

type memCourses struct{ rows map[string]*entity.Course }

func (m *memCourses) Create(_ context.Context, c *entity.Course) error {
	c.ID = uuid.NewString()
	cp := *c
	m.rows[c.ID] = &cp
	return nil
}

func (m *memCourses) GetByID(_ context.Context, id string) (*entity.Course, error) {
	c, ok := m.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *memCourses) List(_ context.Context, bootcampID string, _ repository.Page) ([]entity.Course, error) {
	out := []entity.Course{}
	for _, c := range m.rows {
		if bootcampID == "" || c.BootcampID == bootcampID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *memCourses) Update(_ context.Context, c *entity.Course) error {
	cp := *c
	m.rows[c.ID] = &cp
	return nil
}

func (m *memCourses) Delete(_ context.Context, id string) error {
	if _, ok := m.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

type memReviews struct{ rows map[string]*entity.Review }

func (m *memReviews) Create(_ context.Context, r *entity.Review) error {
	for _, o := range m.rows {
		if o.BootcampID == r.BootcampID && o.UserID == r.UserID {
			return repository.ErrDuplicate
		}
	}
	r.ID = uuid.NewString()
	cp := *r
	m.rows[r.ID] = &cp
	return nil
}

func (m *memReviews) GetByID(_ context.Context, id string) (*entity.Review, error) {
	r, ok := m.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *memReviews) List(_ context.Context, bootcampID string, _ repository.Page) ([]entity.Review, error) {
	out := []entity.Review{}
	for _, r := range m.rows {
		if bootcampID == "" || r.BootcampID == bootcampID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *memReviews) Update(_ context.Context, r *entity.Review) error {
	cp := *r
	m.rows[r.ID] = &cp
	return nil
}

func (m *memReviews) Delete(_ context.Context, id string) error {
	delete(m.rows, id)
	return nil
}
