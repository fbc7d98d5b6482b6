package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"glimpse/internal/config"
	"glimpse/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sessionUserRepo struct {
	fakeUserRepo
	byEmail map[string]*models.User
	created []*models.User
}

func (f *sessionUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	return f.byEmail[email], nil
}

func (f *sessionUserRepo) Create(_ context.Context, user *models.User) error {
	user.ID = uint(len(f.created) + 100)
	f.created = append(f.created, user)
	return nil
}

func newSessionApp(s *Server) *fiber.App {
	app := fiber.New()
	app.Post("/api/auth/session", s.CreateSession)
	return app
}

func postSession(t *testing.T, app *fiber.App, secret string, body any) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/session", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if secret != "" {
		req.Header.Set("X-Provider-Secret", secret)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestServer_CreateSession_FirstSignIn(t *testing.T) {
	repo := &sessionUserRepo{byEmail: map[string]*models.User{}}
	s := &Server{
		config:   &config.Config{JWTSecret: "test-secret-key-12345678901234567890", ProviderSecret: "hush"},
		userRepo: repo,
	}
	app := newSessionApp(s)

	resp := postSession(t, app, "hush", fiber.Map{
		"email":  "Ada@Example.com",
		"name":   "Ada Lovelace",
		"avatar": "https://cdn.example.com/ada.png",
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.NotEmpty(t, body["token"])
	assert.Equal(t, false, body["profile_complete"])

	require.Len(t, repo.created, 1)
	assert.Equal(t, "ada@example.com", repo.created[0].Email)
	assert.Equal(t, "Ada Lovelace", repo.created[0].Name)
}

func TestServer_CreateSession_ExistingUser(t *testing.T) {
	username := "ada"
	existing := &models.User{Email: "ada@example.com", Username: &username}
	existing.ID = 7

	repo := &sessionUserRepo{byEmail: map[string]*models.User{"ada@example.com": existing}}
	s := &Server{
		config:   &config.Config{JWTSecret: "test-secret-key-12345678901234567890"},
		userRepo: repo,
	}
	app := newSessionApp(s)

	resp := postSession(t, app, "", fiber.Map{"email": "ada@example.com"})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["profile_complete"])
	assert.Empty(t, repo.created)
}

func TestServer_CreateSession_BadProviderSecret(t *testing.T) {
	s := &Server{
		config:   &config.Config{JWTSecret: "test-secret-key-12345678901234567890", ProviderSecret: "hush"},
		userRepo: &sessionUserRepo{byEmail: map[string]*models.User{}},
	}
	app := newSessionApp(s)

	resp := postSession(t, app, "wrong", fiber.Map{"email": "ada@example.com"})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestServer_CreateSession_InvalidEmail(t *testing.T) {
	s := &Server{
		config:   &config.Config{JWTSecret: "test-secret-key-12345678901234567890"},
		userRepo: &sessionUserRepo{byEmail: map[string]*models.User{}},
	}
	app := newSessionApp(s)

	for _, email := range []string{"", "   ", "not-an-email"} {
		resp := postSession(t, app, "", fiber.Map{"email": email})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		_ = resp.Body.Close()
	}
}
