package server

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/webtop-os/backend/internal/shared/types"
)

// maxLoginLogs caps the retained login history
const maxLoginLogs = 100

// Store errors surfaced as API error messages
var (
	ErrBadCredentials   = errors.New("Identifiant ou mot de passe incorrect")
	ErrUserExists       = errors.New("Ce nom d'utilisateur existe déjà")
	ErrUserNotFound     = errors.New("Utilisateur introuvable")
	ErrSuperAdminLocked = errors.New("Impossible de supprimer le compte SuperAdmin")
)

// account is the stored form of a user, password hashed at rest
type account struct {
	user types.User
	hash []byte
}

// Store is the simulation API's in-memory state: accounts, login history
// and broadcasts. Everything resets on process restart, which is the
// wanted behavior for a training sandbox.
type Store struct {
	mu         sync.RWMutex
	accounts   []*account
	logs       []types.LoginLog // newest first
	broadcasts []*types.Broadcast
}

// NewStore creates a store seeded with the stock accounts
func NewStore() (*Store, error) {
	s := &Store{}
	if err := s.seed(); err != nil {
		return nil, err
	}
	return s, nil
}

// seed creates the built-in admin and trainer accounts
func (s *Store) seed() error {
	seeds := []struct {
		username string
		password string
		role     types.Role
	}{
		{"SuperAdmin", "AdminSuper", types.RoleAdmin},
		{"formateur1", "01012000", types.RoleUser},
	}
	for _, sd := range seeds {
		if _, err := s.CreateUser(sd.username, sd.password, sd.role); err != nil {
			return err
		}
	}
	return nil
}

// Authenticate verifies credentials and records the attempt
func (s *Store) Authenticate(username, password, ip string) (*types.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc := s.findByUsername(username)
	if acc == nil || bcrypt.CompareHashAndPassword(acc.hash, []byte(password)) != nil {
		s.appendLog(types.LoginLog{
			ID:        uuid.NewString(),
			Username:  username,
			Success:   false,
			IPAddress: ip,
			Timestamp: time.Now().Format(time.RFC3339),
		})
		return nil, ErrBadCredentials
	}

	role := acc.user.Role
	s.appendLog(types.LoginLog{
		ID:        uuid.NewString(),
		Username:  username,
		Success:   true,
		IPAddress: ip,
		Timestamp: time.Now().Format(time.RFC3339),
		Role:      &role,
	})

	snapshot := acc.user
	return &snapshot, nil
}

// CreateUser adds an account with a unique username
func (s *Store) CreateUser(username, password string, role types.Role) (*types.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	if !role.Valid() {
		role = types.RoleUser
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findByUsername(username) != nil {
		return nil, ErrUserExists
	}

	acc := &account{
		user: types.User{
			ID:        uuid.NewString(),
			Username:  username,
			Role:      role,
			CreatedAt: time.Now(),
		},
		hash: hash,
	}
	s.accounts = append(s.accounts, acc)

	snapshot := acc.user
	return &snapshot, nil
}

// UpdateUser rewrites username, password and role of an existing account
func (s *Store) UpdateUser(userID, username, password string, role types.Role) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acc := s.findByID(userID)
	if acc == nil {
		return ErrUserNotFound
	}
	if other := s.findByUsername(username); other != nil && other.user.ID != userID {
		return ErrUserExists
	}

	acc.user.Username = username
	if role.Valid() {
		acc.user.Role = role
	}
	acc.hash = hash
	return nil
}

// DeleteUser removes an account. The SuperAdmin account is protected.
func (s *Store) DeleteUser(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, acc := range s.accounts {
		if acc.user.ID == userID {
			if acc.user.Username == "SuperAdmin" {
				return ErrSuperAdminLocked
			}
			s.accounts = append(s.accounts[:i], s.accounts[i+1:]...)
			return nil
		}
	}
	return ErrUserNotFound
}

// Users returns all accounts without password material
func (s *Store) Users() []types.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.User, len(s.accounts))
	for i, acc := range s.accounts {
		out[i] = acc.user
	}
	return out
}

// Logs returns recorded login attempts, newest first
func (s *Store) Logs() []types.LoginLog {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.LoginLog, len(s.logs))
	copy(out, s.logs)
	return out
}

// ClearLogs empties the login history
func (s *Store) ClearLogs() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs = nil
}

// CreateBroadcast stores a new broadcast and deactivates every prior one
func (s *Store) CreateBroadcast(title, message, createdBy string) *types.Broadcast {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range s.broadcasts {
		b.IsActive = false
	}

	b := &types.Broadcast{
		ID:        uuid.NewString(),
		Title:     title,
		Message:   message,
		CreatedBy: createdBy,
		CreatedAt: time.Now(),
		IsActive:  true,
	}
	s.broadcasts = append(s.broadcasts, b)

	snapshot := *b
	return &snapshot
}

// ActiveBroadcast returns the active broadcast, or nil
func (s *Store) ActiveBroadcast() *types.Broadcast {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := len(s.broadcasts) - 1; i >= 0; i-- {
		if s.broadcasts[i].IsActive {
			snapshot := *s.broadcasts[i]
			return &snapshot
		}
	}
	return nil
}

// DeactivateBroadcast marks a broadcast inactive. Unknown ids are a no-op
// so repeated dismissals from multiple desktops cannot fail.
func (s *Store) DeactivateBroadcast(broadcastID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range s.broadcasts {
		if b.ID == broadcastID {
			b.IsActive = false
			return
		}
	}
}

// appendLog prepends a log entry and trims the history. Caller must hold mu.
func (s *Store) appendLog(entry types.LoginLog) {
	s.logs = append([]types.LoginLog{entry}, s.logs...)
	if len(s.logs) > maxLoginLogs {
		s.logs = s.logs[:maxLoginLogs]
	}
}

// findByUsername returns the live account for a username. Caller must hold mu.
func (s *Store) findByUsername(username string) *account {
	for _, acc := range s.accounts {
		if acc.user.Username == username {
			return acc
		}
	}
	return nil
}

// findByID returns the live account for an id. Caller must hold mu.
func (s *Store) findByID(userID string) *account {
	for _, acc := range s.accounts {
		if acc.user.ID == userID {
			return acc
		}
	}
	return nil
}
