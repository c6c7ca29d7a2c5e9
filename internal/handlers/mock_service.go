package handlers

import (
	"context"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"file_vault/internal/models"
	"file_vault/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	registerUser *models.User
	registerErr  error
	loginResult  service.LoginResult
	loginErr     error
	sendErr      error
	verifyErr    error
	resetErr     error

	// token -> identity; unknown tokens fail with ErrInvalidToken
	identities map[string]models.Identity

	lastUsername    string
	lastPassword    string
	lastEmail       string
	lastCode        string
	lastNewPassword string
	lastParseToken  string
}

func (m *mockAuth) RegisterAdmin(ctx context.Context, username, password, email string) (*models.User, error) {
	m.lastUsername, m.lastPassword, m.lastEmail = username, password, email
	return m.registerUser, m.registerErr
}

func (m *mockAuth) Login(ctx context.Context, username, password string) (service.LoginResult, error) {
	m.lastUsername, m.lastPassword = username, password
	return m.loginResult, m.loginErr
}

func (m *mockAuth) SendResetCode(ctx context.Context, username string) error {
	m.lastUsername = username
	return m.sendErr
}

func (m *mockAuth) VerifyResetCode(ctx context.Context, username, code string) error {
	m.lastUsername, m.lastCode = username, code
	return m.verifyErr
}

func (m *mockAuth) ResetPassword(ctx context.Context, username, code, newPassword string) error {
	m.lastUsername, m.lastCode, m.lastNewPassword = username, code, newPassword
	return m.resetErr
}

func (m *mockAuth) ParseToken(token string) (models.Identity, error) {
	m.lastParseToken = token
	id, ok := m.identities[token]
	if !ok {
		return models.Identity{}, service.ErrInvalidToken
	}
	return id, nil
}

type mockUsers struct {
	list      []models.User
	listErr   error
	added     *models.User
	addErr    error
	removeErr error
	updated   *models.User
	updateErr error

	lastActor   models.Identity
	lastNewUser service.NewUser
	lastID      int64
	lastUpdate  service.DetailsUpdate
}

func (m *mockUsers) ListUsers(ctx context.Context) ([]models.User, error) {
	return m.list, m.listErr
}

func (m *mockUsers) AddUser(ctx context.Context, actor models.Identity, in service.NewUser) (*models.User, error) {
	m.lastActor, m.lastNewUser = actor, in
	return m.added, m.addErr
}

func (m *mockUsers) RemoveUser(ctx context.Context, actor models.Identity, id int64) error {
	m.lastActor, m.lastID = actor, id
	return m.removeErr
}

func (m *mockUsers) UpdateDetails(ctx context.Context, id int64, in service.DetailsUpdate) (*models.User, error) {
	m.lastID, m.lastUpdate = id, in
	return m.updated, m.updateErr
}

type mockFiles struct {
	mu sync.Mutex

	list      []models.File
	listErr   error
	uploadErr error
	removeErr error
	open      *models.File
	content   string
	openErr   error
	maxUpload int64

	listCalls    int
	lastActor    models.Identity
	lastUpload   service.Upload
	lastBody     string
	lastRemoveID string
}

func (m *mockFiles) ListFiles(ctx context.Context) ([]models.File, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listCalls++
	return m.list, m.listErr
}

func (m *mockFiles) UploadFile(ctx context.Context, actor models.Identity, in service.Upload) (*models.File, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastActor, m.lastUpload = actor, in
	if in.Body != nil {
		b, _ := io.ReadAll(in.Body)
		m.lastBody = string(b)
	}
	if m.uploadErr != nil {
		return nil, m.uploadErr
	}
	return &models.File{
		ID:          "f-1",
		Filename:    in.Filename,
		ContentType: in.ContentType,
		SizeBytes:   in.Size,
		UploadedBy:  actor.UserID,
	}, nil
}

func (m *mockFiles) RemoveFile(ctx context.Context, actor models.Identity, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastActor, m.lastRemoveID = actor, id
	return m.removeErr
}

func (m *mockFiles) OpenFile(ctx context.Context, id string) (*models.File, io.ReadCloser, error) {
	if m.openErr != nil {
		return nil, nil, m.openErr
	}
	return m.open, io.NopCloser(strings.NewReader(m.content)), nil
}

func (m *mockFiles) MaxUploadBytes() int64 {
	if m.maxUpload == 0 {
		return 50 << 20
	}
	return m.maxUpload
}

func (m *mockFiles) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.listCalls
}

type mockAuditLog struct {
	resp     []models.AuditEvent
	err      error
	lastFrom string
	lastTo   string
	lastType string
}

func (m *mockAuditLog) ListEvents(ctx context.Context, f service.LogFilter) ([]models.AuditEvent, error) {
	if !f.From.IsZero() {
		m.lastFrom = f.From.Format(time.RFC3339Nano)
	}
	if !f.To.IsZero() {
		m.lastTo = f.To.Format(time.RFC3339Nano)
	}
	m.lastType = f.Type
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

const (
	adminToken = "admin-token"
	userToken  = "user-token"
)

// newMockAuth knows one admin (id 1) and one regular user (id 2).
func newMockAuth() *mockAuth {
	return &mockAuth{identities: map[string]models.Identity{
		adminToken: {UserID: 1, Role: models.RoleAdmin},
		userToken:  {UserID: 2, Role: models.RoleUser},
	}}
}

func newTestRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, nil)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
