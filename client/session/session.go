// Package session persists the signed-in user and bearer token between
// runs of the client.
package session

import (
	"os"
	"sync"
	"time"

	"github.com/goccy/go-json"
)

// User is the account record returned by the auth and profile endpoints.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Store holds the current session. Implementations must be safe for
// concurrent use.
type Store interface {
	Token() string
	User() *User
	SetToken(token string) error
	SetUser(u *User) error
	Clear() error
}

// MemStore keeps the session in memory only.
type MemStore struct {
	mu    sync.RWMutex
	token string
	user  *User
}

func NewMemStore() *MemStore { return &MemStore{} }

func (m *MemStore) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

func (m *MemStore) User() *User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user
}

func (m *MemStore) SetToken(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *MemStore) SetUser(u *User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.user = u
	return nil
}

func (m *MemStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	m.user = nil
	return nil
}

type fileState struct {
	Token string `json:"token"`
	User  *User  `json:"user,omitempty"`
}

// FileStore persists the session as a JSON file. A missing file is an
// empty session, not an error.
type FileStore struct {
	mu    sync.RWMutex
	path  string
	state fileState
}

func NewFileStore(path string) (*FileStore, error) {
	fs := &FileStore{path: path}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fs, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(raw, &fs.state); err != nil {
		// A corrupt session file is discarded rather than blocking startup.
		fs.state = fileState{}
	}
	return fs, nil
}

func (f *FileStore) Token() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.state.Token
}

func (f *FileStore) User() *User {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.state.User
}

func (f *FileStore) SetToken(token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state.Token = token
	return f.save()
}

func (f *FileStore) SetUser(u *User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state.User = u
	return f.save()
}

func (f *FileStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = fileState{}
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (f *FileStore) save() error {
	raw, err := json.Marshal(f.state)
	if err != nil {
		return err
	}
	return os.WriteFile(f.path, raw, 0o600)
}
