package domain

// Fallbacks stamped on new posts when the profile leaves a field empty.
const (
	FallbackHandle       = "@placeholder"
	FallbackProfileImage = "https://via.placeholder.com/150"
	FallbackCity         = "Unknown City"
	FallbackState        = "Unknown State"
)

type Location struct {
	City  string `json:"city"`
	State string `json:"state"`
}

// Profile is the current user. Handle is nil until the user picks one.
type Profile struct {
	Handle          *string  `json:"handle"`
	Location        Location `json:"location"`
	ProfileImageRef string   `json:"profile"`
}

// Stamp returns the author and location a new post carries, applying fallbacks.
func (p Profile) Stamp() (PostUser, Location) {
	user := PostUser{
		Handle:  FallbackHandle,
		Profile: FallbackProfileImage,
	}
	if p.Handle != nil && *p.Handle != "" {
		user.Handle = *p.Handle
	}
	if p.ProfileImageRef != "" {
		user.Profile = p.ProfileImageRef
	}

	loc := Location{City: FallbackCity, State: FallbackState}
	if p.Location.City != "" {
		loc.City = p.Location.City
	}
	if p.Location.State != "" {
		loc.State = p.Location.State
	}
	return user, loc
}
