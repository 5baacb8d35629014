package auth

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"jirantetangga/internal/adminusers"
	"jirantetangga/internal/jwttoken"
	"jirantetangga/internal/passcrypt"
	"jirantetangga/internal/platform/logger"
	"jirantetangga/internal/platform/middleware"
)

const testEncryptionKey = "test-encryption-key"

func newTestHandler(t *testing.T) (*adminusers.MemoryStore, *jwttoken.Service, http.Handler) {
	t.Helper()
	store := adminusers.NewMemoryStore()
	tokens := jwttoken.New("signing-key")
	console := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	obs := middleware.NewInstrumenter(logger.New(console, "", ""), nil, "jiran-tetangga", "auth")
	r := chi.NewRouter()
	NewHandler(store, tokens, testEncryptionKey, obs, console).Register(r)
	return store, tokens, r
}

func seedAdmin(t *testing.T, store *adminusers.MemoryStore, email, password string) {
	t.Helper()
	encrypted, err := passcrypt.Encrypt(password, testEncryptionKey)
	require.NoError(t, err)
	_, err = store.Insert(nil, adminusers.AdminUser{
		FirstName: "Aminah",
		Email:     email,
		Password:  encrypted,
		CreatedAt: time.Now(),
	})
	require.NoError(t, err)
}

func login(t *testing.T, h http.Handler, email, password string) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(map[string]string{"email": email, "password": password})
	require.NoError(t, err)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(raw)))
	return w
}

func TestLoginIssuesValidToken(t *testing.T) {
	store, tokens, h := newTestHandler(t)
	seedAdmin(t, store, "aminah@example.com", "s3cret-password")

	w := login(t, h, "aminah@example.com", "s3cret-password")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data struct {
			Email string `json:"email"`
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	require.Equal(t, "aminah@example.com", body.Data.Email)

	_, email, err := tokens.ValidateToken(body.Data.Token)
	require.NoError(t, err)
	require.Equal(t, "aminah@example.com", email)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	store, _, h := newTestHandler(t)
	seedAdmin(t, store, "aminah@example.com", "s3cret-password")

	for name, attempt := range map[string][2]string{
		"wrong password": {"aminah@example.com", "wrong-password"},
		"unknown email":  {"nobody@example.com", "s3cret-password"},
	} {
		w := login(t, h, attempt[0], attempt[1])
		require.Equal(t, http.StatusUnauthorized, w.Code, name)

		var body struct {
			Message string `json:"message"`
		}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
		require.Equal(t, "Invalid email or password!", body.Message, name)
	}
}

func TestLoginRequiresBothFields(t *testing.T) {
	_, _, h := newTestHandler(t)

	w := login(t, h, "", "s3cret-password")
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	require.Equal(t, "Bad request: email is a required parameter.", body.Message)
}
