package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webtop-os/backend/internal/shared/types"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore()
	require.NoError(t, err)
	return s
}

func TestSeededAccounts(t *testing.T) {
	s := newStore(t)

	users := s.Users()
	require.Len(t, users, 2)
	assert.Equal(t, "SuperAdmin", users[0].Username)
	assert.Equal(t, types.RoleAdmin, users[0].Role)
	assert.Equal(t, "formateur1", users[1].Username)
	assert.Equal(t, types.RoleUser, users[1].Role)
}

func TestAuthenticate(t *testing.T) {
	s := newStore(t)

	user, err := s.Authenticate("formateur1", "01012000", "10.0.0.5")
	require.NoError(t, err)
	assert.Equal(t, "formateur1", user.Username)

	_, err = s.Authenticate("formateur1", "wrong", "10.0.0.5")
	assert.ErrorIs(t, err, ErrBadCredentials)

	_, err = s.Authenticate("nobody", "x", "10.0.0.5")
	assert.ErrorIs(t, err, ErrBadCredentials)
}

func TestLoginLogsNewestFirst(t *testing.T) {
	s := newStore(t)

	s.Authenticate("formateur1", "wrong", "10.0.0.5")
	s.Authenticate("formateur1", "01012000", "10.0.0.5")

	logs := s.Logs()
	require.Len(t, logs, 2)
	assert.True(t, logs[0].Success)
	assert.False(t, logs[1].Success)
	require.NotNil(t, logs[0].Role)
	assert.Equal(t, types.RoleUser, *logs[0].Role)
	assert.Nil(t, logs[1].Role)

	s.ClearLogs()
	assert.Empty(t, s.Logs())
}

func TestLoginLogsCapped(t *testing.T) {
	s := newStore(t)

	for i := 0; i < maxLoginLogs+20; i++ {
		s.Authenticate("nobody", "x", "10.0.0.5")
	}
	assert.Len(t, s.Logs(), maxLoginLogs)
}

func TestCreateUserRejectsDuplicate(t *testing.T) {
	s := newStore(t)

	_, err := s.CreateUser("formateur2", "pass", types.RoleUser)
	require.NoError(t, err)

	_, err = s.CreateUser("formateur2", "autre", types.RoleUser)
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestUpdateUser(t *testing.T) {
	s := newStore(t)

	created, err := s.CreateUser("formateur2", "pass", types.RoleUser)
	require.NoError(t, err)

	require.NoError(t, s.UpdateUser(created.ID, "formateur2bis", "nouveau", types.RoleAdmin))

	_, err = s.Authenticate("formateur2bis", "nouveau", "10.0.0.5")
	require.NoError(t, err)

	assert.ErrorIs(t, s.UpdateUser("missing", "x", "y", types.RoleUser), ErrUserNotFound)
	assert.ErrorIs(t, s.UpdateUser(created.ID, "SuperAdmin", "y", types.RoleUser), ErrUserExists)
}

func TestSuperAdminUndeletable(t *testing.T) {
	s := newStore(t)

	var superID string
	for _, u := range s.Users() {
		if u.Username == "SuperAdmin" {
			superID = u.ID
		}
	}
	require.NotEmpty(t, superID)

	assert.ErrorIs(t, s.DeleteUser(superID), ErrSuperAdminLocked)
	assert.ErrorIs(t, s.DeleteUser("missing"), ErrUserNotFound)
}

func TestDeleteUser(t *testing.T) {
	s := newStore(t)

	created, err := s.CreateUser("formateur2", "pass", types.RoleUser)
	require.NoError(t, err)

	require.NoError(t, s.DeleteUser(created.ID))
	assert.Len(t, s.Users(), 2)
}

func TestBroadcastDeactivatesPrevious(t *testing.T) {
	s := newStore(t)

	first := s.CreateBroadcast("Un", "premier", "SuperAdmin")
	second := s.CreateBroadcast("Deux", "second", "SuperAdmin")

	active := s.ActiveBroadcast()
	require.NotNil(t, active)
	assert.Equal(t, second.ID, active.ID)
	assert.NotEqual(t, first.ID, active.ID)
}

func TestBroadcastDeactivate(t *testing.T) {
	s := newStore(t)

	b := s.CreateBroadcast("Un", "premier", "SuperAdmin")
	s.DeactivateBroadcast(b.ID)
	assert.Nil(t, s.ActiveBroadcast())

	// Unknown ids are ignored
	s.DeactivateBroadcast("missing")
}
