package persist

import (
	"sync"

	"github.com/FLECS-Technologies/apps-tech.flecs.fence/internal/model"
)

// UserStore owns the user collection. All access goes through the
// store's lock; mutations are in-memory until Save (or Close) flushes
// them to disk.
type UserStore struct {
	mu    sync.Mutex
	path  string
	users []model.User
}

// OpenUserStore loads the collection at path, starting empty if neither
// the primary file nor its backup exists.
func OpenUserStore(path string) (*UserStore, error) {
	users, err := Load[[]model.User](path)
	if err != nil {
		return nil, err
	}
	return &UserStore{path: path, users: users}, nil
}

func (s *UserStore) GetByName(name string) (model.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Name == name {
			return u, true
		}
	}
	return model.User{}, false
}

func (s *UserStore) GetByUid(uid model.Uid) (model.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Uid == uid {
			return u, true
		}
	}
	return model.User{}, false
}

// SetAdmin inserts or replaces the singleton admin identity and returns
// the previous admin record if one existed, so callers can tell a
// creation from a replacement. The uid is forced to the admin uid.
func (s *UserStore) SetAdmin(u model.User) *model.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	u.Uid = model.AdminUid
	for i := range s.users {
		if s.users[i].Uid == model.AdminUid {
			prev := s.users[i]
			s.users[i] = u
			return &prev
		}
	}
	s.users = append(s.users, u)
	return nil
}

func (s *UserStore) ContainsAdmin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Uid == model.AdminUid {
			return true
		}
	}
	return false
}

// Save flushes the collection to disk. Writes are not durable until it
// (or Close) has returned without error.
func (s *UserStore) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Save(s.path, s.users)
}

// Close flushes the collection. Invoked deliberately on shutdown so
// persistence failures surface instead of disappearing into teardown.
func (s *UserStore) Close() error {
	return s.Save()
}
