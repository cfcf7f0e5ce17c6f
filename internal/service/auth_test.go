package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webtop-os/backend/internal/shared/types"
)

func TestAuthenticateSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/auth/login", r.URL.Path)

		var req types.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "formateur1", req.Username)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(types.LoginResponse{
			Success: true,
			Message: "Connexion réussie",
			User:    &types.User{ID: "u1", Username: "formateur1", Role: types.RoleUser},
		})
	}))
	defer srv.Close()

	client := NewAuthClient(srv.URL)
	user, err := client.Authenticate(context.Background(), "formateur1", "01012000")
	require.NoError(t, err)
	assert.Equal(t, "formateur1", user.Username)
	assert.Equal(t, types.RoleUser, user.Role)
}

func TestAuthenticateBadCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(types.LoginResponse{
			Success: false,
			Message: "Identifiant ou mot de passe incorrect",
		})
	}))
	defer srv.Close()

	client := NewAuthClient(srv.URL)
	user, err := client.Authenticate(context.Background(), "formateur1", "wrong")
	require.Error(t, err)
	assert.Nil(t, user)

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "Identifiant ou mot de passe incorrect", authErr.Message)
}

func TestAuthenticateUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // Port is now dead

	client := NewAuthClient(srv.URL)
	user, err := client.Authenticate(context.Background(), "formateur1", "01012000")
	require.Error(t, err)
	assert.Nil(t, user)

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "Erreur de connexion au serveur", authErr.Message)
}
