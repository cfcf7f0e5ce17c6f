package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webtop-os/backend/internal/shared/types"
)

func TestBroadcastPushedToStream(t *testing.T) {
	srv := newTestServer(t)
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/stream"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	resp, err := http.Post(ts.URL+"/api/broadcast", "application/json",
		strings.NewReader(`{"title":"Info","message":"Pause déjeuner","created_by":"SuperAdmin"}`))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var ev Event
	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, "broadcast_created", ev.Type)
}

func TestStreamSurvivesClientDisconnect(t *testing.T) {
	srv := newTestServer(t)
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/stream"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	conn.Close()

	// Broadcasting after the client dropped must not fail the request
	w := doJSON(t, srv, http.MethodPost, "/api/broadcast",
		types.BroadcastCreateRequest{Title: "Info", Message: "après déconnexion", CreatedBy: "SuperAdmin"})
	assert.Equal(t, http.StatusCreated, w.Code)
}
