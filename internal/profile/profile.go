// Package profile holds the current user's profile for the session.
package profile

import (
	"sync"

	"github.com/orgball2608/joynme/internal/domain"
	"github.com/orgball2608/joynme/pkg/config"
)

type Store struct {
	mu      sync.RWMutex
	profile domain.Profile
}

func New(initial domain.Profile) *Store {
	return &Store{profile: clone(initial)}
}

// NewFromConfig seeds the store with the configured defaults.
func NewFromConfig(cfg *config.Config) *Store {
	p := domain.Profile{
		Location: domain.Location{
			City:  cfg.Profile.City,
			State: cfg.Profile.State,
		},
		ProfileImageRef: cfg.Profile.ImageRef,
	}
	if cfg.Profile.Handle != "" {
		h := cfg.Profile.Handle
		p.Handle = &h
	}
	return New(p)
}

// Handle returns the handle and whether one is set.
func (s *Store) Handle() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.profile.Handle == nil {
		return "", false
	}
	return *s.profile.Handle, true
}

func (s *Store) Location() domain.Location {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile.Location
}

func (s *Store) ProfileImageRef() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile.ProfileImageRef
}

func (s *Store) Snapshot() domain.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.profile)
}

// SetHandle sets the handle; an empty string clears it.
func (s *Store) SetHandle(handle string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if handle == "" {
		s.profile.Handle = nil
		return
	}
	s.profile.Handle = &handle
}

func (s *Store) SetLocation(loc domain.Location) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile.Location = loc
}

func (s *Store) SetProfileImageRef(ref string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile.ProfileImageRef = ref
}

// Update applies fn to the profile under the store lock and returns the result.
func (s *Store) Update(fn func(p *domain.Profile)) domain.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.profile)
	if s.profile.Handle != nil && *s.profile.Handle == "" {
		s.profile.Handle = nil
	}
	s.profile = clone(s.profile)
	return clone(s.profile)
}

func clone(p domain.Profile) domain.Profile {
	if p.Handle != nil {
		h := *p.Handle
		p.Handle = &h
	}
	return p
}
