package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seyitm/baby-ai/internal"
)

func TestValidateTokenRemote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/user", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "api-key", r.Header.Get("apikey"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"user-1","email":"parent@example.com"}`))
	}))
	defer srv.Close()

	p := NewRemoteAuthProvider(srv.URL, "api-key", internal.NewNopLogger())
	user, err := p.ValidateTokenRemote(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
}

func TestValidateTokenRemoteRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	p := NewRemoteAuthProvider(srv.URL, "api-key", internal.NewNopLogger())
	_, err := p.ValidateTokenRemote(context.Background(), "bad")
	assert.Error(t, err)
}
