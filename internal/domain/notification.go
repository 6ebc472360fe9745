package domain

type NotificationKind string

const (
	NotificationSuccess NotificationKind = "success"
	NotificationError   NotificationKind = "error"
)

// Notification is an alert the presentation layer shows to the user.
type Notification struct {
	Kind    NotificationKind `json:"kind"`
	Title   string           `json:"title"`
	Message string           `json:"message"`
	// FriendNames is set on successful friend connections.
	FriendNames []string `json:"friendNames,omitempty"`
	ImageURI    string   `json:"imageUri,omitempty"`
}
