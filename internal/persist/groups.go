package persist

import (
	"sync"

	"github.com/FLECS-Technologies/apps-tech.flecs.fence/internal/model"
)

// GroupStore owns the group collection; it mirrors UserStore.
type GroupStore struct {
	mu     sync.Mutex
	path   string
	groups []model.Group
}

func OpenGroupStore(path string) (*GroupStore, error) {
	groups, err := Load[[]model.Group](path)
	if err != nil {
		return nil, err
	}
	return &GroupStore{path: path, groups: groups}, nil
}

func (s *GroupStore) GetByName(name string) (model.Group, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, g := range s.groups {
		if g.Name == name {
			return g, true
		}
	}
	return model.Group{}, false
}

func (s *GroupStore) GetByGid(gid model.Gid) (model.Group, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, g := range s.groups {
		if g.Gid == gid {
			return g, true
		}
	}
	return model.Group{}, false
}

// Put inserts or replaces a group by gid.
func (s *GroupStore) Put(g model.Group) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.groups {
		if s.groups[i].Gid == g.Gid {
			s.groups[i] = g
			return
		}
	}
	s.groups = append(s.groups, g)
}

func (s *GroupStore) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Save(s.path, s.groups)
}

func (s *GroupStore) Close() error {
	return s.Save()
}
