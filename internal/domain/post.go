package domain

import "errors"

var (
	ErrFriendPostFront   = errors.New("friend post must not carry a front image")
	ErrFriendPostNoNames = errors.New("friend post needs at least one friend name")
	ErrPostNoBack        = errors.New("post needs a back image")
	ErrNegativeCount     = errors.New("likes and dislikes must not be negative")
)

type PostUser struct {
	Handle  string `json:"handle"`
	Profile string `json:"profile"`
}

type PostImage struct {
	Front *string `json:"front"`
	Back  string  `json:"back"`
}

// Post is one feed entry. Once in the store it is never mutated.
type Post struct {
	ID           int64     `json:"id"`
	User         PostUser  `json:"user"`
	Likes        int       `json:"likes"`
	Dislikes     int       `json:"dislikes"`
	Location     Location  `json:"location"`
	Image        PostImage `json:"image"`
	IsFriendPost bool      `json:"isFriendPost"`
	FriendNames  []string  `json:"friendNames,omitempty"`
}

func (p Post) Validate() error {
	if p.Image.Back == "" {
		return ErrPostNoBack
	}
	if p.Likes < 0 || p.Dislikes < 0 {
		return ErrNegativeCount
	}
	if p.IsFriendPost {
		if p.Image.Front != nil {
			return ErrFriendPostFront
		}
		if len(p.FriendNames) == 0 {
			return ErrFriendPostNoNames
		}
	}
	return nil
}

// Clone returns a copy that shares no memory with p.
func (p Post) Clone() Post {
	c := p
	if p.Image.Front != nil {
		front := *p.Image.Front
		c.Image.Front = &front
	}
	if p.FriendNames != nil {
		c.FriendNames = append([]string(nil), p.FriendNames...)
	}
	return c
}
