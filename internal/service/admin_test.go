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

func TestAdminListUsers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/users", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]types.User{
			{ID: "u1", Username: "SuperAdmin", Role: types.RoleAdmin},
			{ID: "u2", Username: "formateur1", Role: types.RoleUser},
		})
	}))
	defer srv.Close()

	client := NewAdminClient(srv.URL)
	users, err := client.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "SuperAdmin", users[0].Username)
}

func TestAdminDeleteUserRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]string{"error": "Impossible de supprimer le compte SuperAdmin"})
	}))
	defer srv.Close()

	client := NewAdminClient(srv.URL)
	err := client.DeleteUser(context.Background(), "u1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Impossible de supprimer le compte SuperAdmin")
}

func TestAdminLogsAndClear(t *testing.T) {
	cleared := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/logs", r.URL.Path)
		switch r.Method {
		case http.MethodGet:
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode([]types.LoginLog{
				{ID: "l1", Username: "formateur1", Success: true, IPAddress: "127.0.0.1"},
			})
		case http.MethodDelete:
			cleared = true
			w.WriteHeader(http.StatusOK)
		}
	}))
	defer srv.Close()

	client := NewAdminClient(srv.URL)

	logs, err := client.Logs(context.Background())
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.True(t, logs[0].Success)

	require.NoError(t, client.ClearLogs(context.Background()))
	assert.True(t, cleared)
}
