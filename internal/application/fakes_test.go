package application

import (
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/devcamper-api/internal/domain/entity"
	"github.com/oksasatya/devcamper-api/internal/domain/repository"
	"github.com/oksasatya/devcamper-api/pkg/mailer"
)

// memUsers is an in-memory credential store with the same matching rules as
// the Postgres one.
type memUsers struct {
	mu   sync.Mutex
	rows map[string]*entity.UserCredential
	err  error
}

func newMemUsers() *memUsers {
	return &memUsers{rows: map[string]*entity.UserCredential{}}
}

func (m *memUsers) byEmail(email string) *entity.UserCredential {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, c := range m.rows {
		if c.Email == email {
			return c
		}
	}
	return nil
}

func (m *memUsers) Create(_ context.Context, u *entity.UserCredential) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	if m.byEmail(u.Email) != nil {
		return repository.ErrDuplicateEmail
	}
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now()
	cp := *u
	m.rows[u.ID] = &cp
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u := c.User
	return &u, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := m.byEmail(email)
	if c == nil {
		return nil, repository.ErrNotFound
	}
	u := c.User
	return &u, nil
}

func (m *memUsers) GetCredentialByID(_ context.Context, id string) (*entity.UserCredential, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *memUsers) GetCredentialByEmail(_ context.Context, email string) (*entity.UserCredential, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := m.byEmail(email)
	if c == nil {
		return nil, repository.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *memUsers) UpdateDetails(_ context.Context, id string, name, email *string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if email != nil {
		e := strings.ToLower(strings.TrimSpace(*email))
		if other := m.byEmail(e); other != nil && other.ID != id {
			return nil, repository.ErrDuplicateEmail
		}
		c.Email = e
	}
	if name != nil {
		c.Name = *name
	}
	u := c.User
	return &u, nil
}

func (m *memUsers) UpdatePassword(_ context.Context, id, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.rows[id]
	if !ok {
		return repository.ErrNotFound
	}
	c.PasswordHash = hash
	return nil
}

func (m *memUsers) SetResetToken(_ context.Context, id, hash string, exp time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.rows[id]
	if !ok {
		return repository.ErrNotFound
	}
	c.ResetTokenHash, c.ResetExpiresAt = &hash, &exp
	return nil
}

func (m *memUsers) ClearResetToken(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.rows[id]; ok {
		c.ResetTokenHash, c.ResetExpiresAt = nil, nil
	}
	return nil
}

func (m *memUsers) ResetTokenActive(_ context.Context, tokenHash string, now time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.rows {
		if c.ResetTokenHash != nil && *c.ResetTokenHash == tokenHash && c.ResetExpiresAt.After(now) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memUsers) ConsumeResetToken(_ context.Context, tokenHash, passwordHash string, now time.Time) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.rows {
		if c.ResetTokenHash != nil && *c.ResetTokenHash == tokenHash && c.ResetExpiresAt.After(now) {
			c.PasswordHash = passwordHash
			c.ResetTokenHash, c.ResetExpiresAt = nil, nil
			u := c.User
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memUsers) get(id string) entity.UserCredential {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.rows[id]
}

// ctxUsers honours cancellation on ClearResetToken the way a pgx pool does.
type ctxUsers struct {
	*memUsers
}

func (c ctxUsers) ClearResetToken(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return c.memUsers.ClearResetToken(ctx, id)
}

// countingHasher counts calls into the wrapped hasher.
type countingHasher struct {
	PasswordHasher
	hashes   atomic.Int32
	verifies atomic.Int32
}

func (h *countingHasher) Hash(plain string) (string, error) {
	h.hashes.Add(1)
	return h.PasswordHasher.Hash(plain)
}

func (h *countingHasher) Verify(plain, hash string) bool {
	h.verifies.Add(1)
	return h.PasswordHasher.Verify(plain, hash)
}

// cancellingMailer cancels the request context mid-send, as a client
// disconnect during a publish confirm would.
type cancellingMailer struct {
	cancel context.CancelFunc
}

func (m *cancellingMailer) Send(ctx context.Context, _ mailer.EmailJob) error {
	m.cancel()
	return ctx.Err()
}

// recordingMailer keeps every job and fails when err is set.
type recordingMailer struct {
	mu   sync.Mutex
	jobs []mailer.EmailJob
	err  error
}

func (r *recordingMailer) Send(_ context.Context, job mailer.EmailJob) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs = append(r.jobs, job)
	return r.err
}

func (r *recordingMailer) lastURL() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.jobs) == 0 {
		return ""
	}
	u, _ := r.jobs[len(r.jobs)-1].Data["ResetURL"].(string)
	return u
}

// memBootcamps is an in-memory bootcamp store. limited mirrors the
// one-per-publisher index; staleCount makes CountByUser miss existing rows
// the way a concurrent insert would.
type memBootcamps struct {
	mu         sync.Mutex
	rows       map[string]*entity.Bootcamp
	limited    map[string]bool
	staleCount bool
}

func newMemBootcamps() *memBootcamps {
	return &memBootcamps{rows: map[string]*entity.Bootcamp{}, limited: map[string]bool{}}
}

func (m *memBootcamps) Create(_ context.Context, b *entity.Bootcamp) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.insert(b)
}

func (m *memBootcamps) CreateLimited(_ context.Context, b *entity.Bootcamp) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.limited[b.UserID] {
		return repository.ErrOwnerLimit
	}
	if err := m.insert(b); err != nil {
		return err
	}
	m.limited[b.UserID] = true
	return nil
}

func (m *memBootcamps) insert(b *entity.Bootcamp) error {
	for _, o := range m.rows {
		if o.Name == b.Name {
			return repository.ErrDuplicate
		}
	}
	b.ID = uuid.NewString()
	b.Photo = "no-photo.jpg"
	cp := *b
	m.rows[b.ID] = &cp
	return nil
}

func (m *memBootcamps) GetByID(_ context.Context, id string) (*entity.Bootcamp, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (m *memBootcamps) GetByIDs(_ context.Context, ids []string) ([]entity.Bootcamp, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []entity.Bootcamp{}
	for _, id := range ids {
		if b, ok := m.rows[id]; ok {
			out = append(out, *b)
		}
	}
	// storage order, not relevance order
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memBootcamps) List(_ context.Context, p repository.Page) ([]entity.Bootcamp, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []entity.Bootcamp{}
	for _, b := range m.rows {
		out = append(out, *b)
	}
	return out, nil
}

func (m *memBootcamps) CountByUser(_ context.Context, userID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.staleCount {
		return 0, nil
	}
	n := 0
	for _, b := range m.rows {
		if b.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (m *memBootcamps) Update(_ context.Context, b *entity.Bootcamp) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[b.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *b
	m.rows[b.ID] = &cp
	return nil
}

func (m *memBootcamps) UpdatePhoto(_ context.Context, id, photo string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.rows[id]
	if !ok {
		return repository.ErrNotFound
	}
	b.Photo = photo
	return nil
}

func (m *memBootcamps) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

type memPhotos struct {
	uploaded map[string]string
	err      error
}

func (p *memPhotos) Upload(_ context.Context, objectPath, _ string, r io.Reader) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	b, _ := io.ReadAll(r)
	if p.uploaded == nil {
		p.uploaded = map[string]string{}
	}
	p.uploaded[objectPath] = string(b)
	return "https://storage.example/" + objectPath, nil
}

type memIndex struct {
	indexed map[string]bool
	hits    []string
	err     error
}

func (i *memIndex) Index(_ context.Context, b *entity.Bootcamp) error {
	if i.indexed == nil {
		i.indexed = map[string]bool{}
	}
	i.indexed[b.ID] = true
	return i.err
}

func (i *memIndex) Remove(_ context.Context, id string) error {
	delete(i.indexed, id)
	return i.err
}

func (i *memIndex) Search(_ context.Context, _ string, _ int) ([]string, error) {
	if i.err != nil {
		return nil, i.err
	}
	return i.hits, nil
}

var errBoom = errors.New("boom")
