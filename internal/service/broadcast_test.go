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

func TestBroadcastActive(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/broadcast/active", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(types.Broadcast{
			ID:        "b1",
			Title:     "Maintenance",
			Message:   "Le serveur redémarre à 18h",
			CreatedBy: "SuperAdmin",
			IsActive:  true,
		})
	}))
	defer srv.Close()

	client := NewBroadcastClient(srv.URL)
	b, err := client.Active(context.Background())
	require.NoError(t, err)
	require.NotNil(t, b)
	assert.Equal(t, "b1", b.ID)
	assert.True(t, b.IsActive)
}

func TestBroadcastActiveNone(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("null"))
	}))
	defer srv.Close()

	client := NewBroadcastClient(srv.URL)
	b, err := client.Active(context.Background())
	require.NoError(t, err)
	assert.Nil(t, b)
}

func TestBroadcastAcknowledge(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewBroadcastClient(srv.URL)
	require.NoError(t, client.Acknowledge(context.Background(), "b1"))
	assert.Equal(t, "/api/broadcast/b1", gotPath)
}

func TestBroadcastCreate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)

		var req types.BroadcastCreateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(types.Broadcast{
			ID:        "b2",
			Title:     req.Title,
			Message:   req.Message,
			CreatedBy: req.CreatedBy,
			IsActive:  true,
		})
	}))
	defer srv.Close()

	client := NewBroadcastClient(srv.URL)
	b, err := client.Create(context.Background(), "Info", "Pause déjeuner", "SuperAdmin")
	require.NoError(t, err)
	assert.Equal(t, "b2", b.ID)
	assert.Equal(t, "Info", b.Title)
}
