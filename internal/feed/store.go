// Package feed keeps the session's posts, newest first.
package feed

import (
	"fmt"
	"sync"

	"github.com/orgball2608/joynme/internal/domain"
)

// Listener is called after a post lands at the head of the feed. It runs on the
// caller's goroutine with no store lock held.
type Listener func(post domain.Post)

type Store struct {
	mu        sync.Mutex
	posts     []domain.Post
	listeners map[int]Listener
	nextID    int
}

func New() *Store {
	return &Store{
		listeners: make(map[int]Listener),
	}
}

// Prepend inserts post at the head of the feed.
func (s *Store) Prepend(post domain.Post) error {
	if err := post.Validate(); err != nil {
		return fmt.Errorf("invalid post %d: %w", post.ID, err)
	}
	stored := post.Clone()

	s.mu.Lock()
	posts := make([]domain.Post, 0, len(s.posts)+1)
	posts = append(posts, stored)
	s.posts = append(posts, s.posts...)
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(stored.Clone())
	}
	return nil
}

// Posts returns a copy of the feed, newest first.
func (s *Store) Posts() []domain.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Post, len(s.posts))
	for i, p := range s.posts {
		out[i] = p.Clone()
	}
	return out
}

// Head returns the newest post.
func (s *Store) Head() (domain.Post, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.posts) == 0 {
		return domain.Post{}, false
	}
	return s.posts[0].Clone(), true
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.posts)
}

// Get looks a post up by id.
func (s *Store) Get(id int64) (domain.Post, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.posts {
		if p.ID == id {
			return p.Clone(), true
		}
	}
	return domain.Post{}, false
}

// FriendConnections returns the friend posts, newest first.
func (s *Store) FriendConnections() []domain.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Post
	for _, p := range s.posts {
		if p.IsFriendPost {
			out = append(out, p.Clone())
		}
	}
	return out
}

// ImageURIs returns every image uri referenced by the feed.
func (s *Store) ImageURIs() map[string]struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	uris := make(map[string]struct{}, len(s.posts)*2)
	for _, p := range s.posts {
		uris[p.Image.Back] = struct{}{}
		if p.Image.Front != nil {
			uris[*p.Image.Front] = struct{}{}
		}
	}
	return uris
}

// Subscribe registers l and returns a function that removes it.
func (s *Store) Subscribe(l Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}
