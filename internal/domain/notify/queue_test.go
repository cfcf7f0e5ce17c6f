package notify

import (
	"testing"
	"time"

	"github.com/webtop-os/backend/internal/shared/types"
)

func TestPushAndList(t *testing.T) {
	q := NewQueue(time.Minute, nil)

	first := q.Push(types.NotifySuccess, "Connexion réussie", "Bienvenue formateur1")
	second := q.Push(types.NotifyInfo, "Info", "Mise à jour disponible")

	items := q.List()
	if len(items) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(items))
	}
	if items[0].ID != first || items[1].ID != second {
		t.Error("expected insertion order to be preserved")
	}
	if items[0].Kind != types.NotifySuccess {
		t.Errorf("expected kind %q, got %q", types.NotifySuccess, items[0].Kind)
	}
	if !items[0].ExpiresAt.After(items[0].CreatedAt) {
		t.Error("expected expiry after creation")
	}
}

func TestAutoExpiry(t *testing.T) {
	q := NewQueue(20*time.Millisecond, nil)
	q.Push(types.NotifyWarning, "Attention", "Session bientôt expirée")

	if q.Len() != 1 {
		t.Fatalf("expected 1 notification, got %d", q.Len())
	}

	deadline := time.Now().Add(time.Second)
	for q.Len() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("notification never expired")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestDismissIdempotent(t *testing.T) {
	q := NewQueue(time.Minute, nil)
	nid := q.Push(types.NotifyError, "Erreur", "Opération refusée")

	if !q.Dismiss(nid) {
		t.Error("expected first dismiss to report removal")
	}
	if q.Dismiss(nid) {
		t.Error("expected repeated dismiss to be a no-op")
	}
	if q.Dismiss("notif_missing") {
		t.Error("expected unknown id dismiss to be a no-op")
	}
	if q.Len() != 0 {
		t.Errorf("expected empty queue, got %d", q.Len())
	}
}

func TestDismissCancelsTimer(t *testing.T) {
	q := NewQueue(20*time.Millisecond, nil)
	nid := q.Push(types.NotifyInfo, "Info", "première")
	q.Dismiss(nid)

	// A second toast pushed after the dismissal must not be collateral
	// damage of the first one's timer.
	q.Push(types.NotifyInfo, "Info", "seconde")
	time.Sleep(10 * time.Millisecond)
	if q.Len() != 1 {
		t.Errorf("expected surviving notification, got %d", q.Len())
	}
}

func TestReset(t *testing.T) {
	q := NewQueue(time.Minute, nil)
	q.Push(types.NotifyInfo, "a", "1")
	q.Push(types.NotifyInfo, "b", "2")
	q.Push(types.NotifyInfo, "c", "3")

	q.Reset()

	if q.Len() != 0 {
		t.Errorf("expected empty queue after reset, got %d", q.Len())
	}
	if len(q.timers) != 0 {
		t.Errorf("expected no pending timers after reset, got %d", len(q.timers))
	}
}
