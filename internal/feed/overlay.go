package feed

import (
	"sync"

	"github.com/orgball2608/joynme/internal/domain"
)

// LikeOverlay tracks which posts the user liked this session. Stored posts keep
// their original counts.
type LikeOverlay struct {
	mu    sync.Mutex
	liked map[int64]bool
}

func NewLikeOverlay() *LikeOverlay {
	return &LikeOverlay{liked: make(map[int64]bool)}
}

// Toggle flips the like on a post and returns the new state. Friend posts have no
// like button, so they never flip.
func (o *LikeOverlay) Toggle(post domain.Post) bool {
	if post.IsFriendPost {
		return false
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.liked[post.ID] = !o.liked[post.ID]
	return o.liked[post.ID]
}

func (o *LikeOverlay) Liked(id int64) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.liked[id]
}

// Likes is the count shown to the user.
func (o *LikeOverlay) Likes(post domain.Post) int {
	if o.Liked(post.ID) {
		return post.Likes + 1
	}
	return post.Likes
}
