package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"file_vault/internal/logger"
	"file_vault/internal/models"
	"file_vault/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

func testLogger() *logger.Logger { return logger.New(logger.ErrorLevel, io.Discard) }

func testHasher() *BcryptHasher { return NewBcryptHasher(bcrypt.MinCost) }

// fakeClock is a settable time source.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock(t time.Time) *fakeClock { return &fakeClock{t: t} }

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// memUsers is an in-memory credential store. Every method holds the lock
// for its whole body, so conditional updates are atomic like the SQL ones.
type memUsers struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]*models.User
	err    error // returned by every call when set
}

func newMemUsers() *memUsers { return &memUsers{byID: map[int64]*models.User{}} }

var _ repository.Users = (*memUsers)(nil)

func (m *memUsers) findLocked(username string) *models.User {
	for _, u := range m.byID {
		if u.Username == username {
			return u
		}
	}
	return nil
}

func clone(u *models.User) *models.User {
	c := *u
	if u.ResetCode != nil {
		code := *u.ResetCode
		c.ResetCode = &code
	}
	if u.ResetExpiresAt != nil {
		exp := *u.ResetExpiresAt
		c.ResetExpiresAt = &exp
	}
	return &c
}

func (m *memUsers) Create(_ context.Context, u *models.User) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	for _, existing := range m.byID {
		if existing.Username == u.Username || existing.Email == u.Email {
			return 0, repository.ErrDuplicate
		}
	}
	m.nextID++
	u.ID = m.nextID
	u.CreatedAt = time.Now().UTC()
	m.byID[u.ID] = clone(u)
	return u.ID, nil
}

func (m *memUsers) GetByUsername(_ context.Context, username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	if u := m.findLocked(username); u != nil {
		return clone(u), nil
	}
	return nil, nil
}

func (m *memUsers) GetByID(_ context.Context, id int64) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	if u, ok := m.byID[id]; ok {
		return clone(u), nil
	}
	return nil, nil
}

func (m *memUsers) List(_ context.Context) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := make([]models.User, 0, len(m.byID))
	for id := int64(1); id <= m.nextID; id++ {
		if u, ok := m.byID[id]; ok {
			out = append(out, *clone(u))
		}
	}
	return out, nil
}

func (m *memUsers) Update(_ context.Context, id int64, upd models.UserUpdate) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	for oid, other := range m.byID {
		if oid == id {
			continue
		}
		if (upd.Username != nil && other.Username == *upd.Username) || (upd.Email != nil && other.Email == *upd.Email) {
			return nil, repository.ErrDuplicate
		}
	}
	if upd.Username != nil {
		u.Username = *upd.Username
	}
	if upd.Email != nil {
		u.Email = *upd.Email
	}
	if upd.PasswordHash != nil {
		u.PasswordHash = *upd.PasswordHash
	}
	return clone(u), nil
}

func (m *memUsers) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if _, ok := m.byID[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

func (m *memUsers) SetResetCode(_ context.Context, username, code string, expiresAt time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	u := m.findLocked(username)
	if u == nil {
		return false, nil
	}
	u.ResetCode = &code
	u.ResetExpiresAt = &expiresAt
	return true, nil
}

func (m *memUsers) MatchResetCode(_ context.Context, username, code string, now time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	u := m.findLocked(username)
	return u != nil && u.ResetCode != nil && *u.ResetCode == code && now.Before(*u.ResetExpiresAt), nil
}

func (m *memUsers) ConsumeResetCode(_ context.Context, username, code string, now time.Time, passwordHash string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	u := m.findLocked(username)
	if u == nil || u.ResetCode == nil || *u.ResetCode != code || !now.Before(*u.ResetExpiresAt) {
		return false, nil
	}
	u.PasswordHash = passwordHash
	u.ResetCode = nil
	u.ResetExpiresAt = nil
	return true, nil
}

// fakeMailer records delivered codes.
type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

type sentMail struct{ to, code string }

func (f *fakeMailer) SendResetCode(_ context.Context, to, code string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{to: to, code: code})
	return nil
}

func (f *fakeMailer) last() (sentMail, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.sent) == 0 {
		return sentMail{}, false
	}
	return f.sent[len(f.sent)-1], true
}

// memFiles and memBlobs back the file service tests.
type memFiles struct {
	mu        sync.Mutex
	files     map[string]models.File
	createErr error
}

func newMemFiles() *memFiles { return &memFiles{files: map[string]models.File{}} }

func (m *memFiles) Create(_ context.Context, f models.File) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	m.files[f.ID] = f
	return nil
}

func (m *memFiles) GetByID(_ context.Context, id string) (*models.File, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if f, ok := m.files[id]; ok {
		return &f, nil
	}
	return nil, nil
}

func (m *memFiles) List(_ context.Context) ([]models.File, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.File, 0, len(m.files))
	for _, f := range m.files {
		out = append(out, f)
	}
	return out, nil
}

func (m *memFiles) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.files[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.files, id)
	return nil
}

type memBlobs struct {
	mu     sync.Mutex
	data   map[string][]byte
	putErr error
}

func newMemBlobs() *memBlobs { return &memBlobs{data: map[string][]byte{}} }

func (m *memBlobs) Put(_ context.Context, key string, r io.Reader, _ int64, _ string) error {
	if m.putErr != nil {
		return m.putErr
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = b
	return nil
}

func (m *memBlobs) Get(_ context.Context, key string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.data[key]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

func (m *memBlobs) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

var errBoom = errors.New("boom")
