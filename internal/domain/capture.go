package domain

// CapturedImage points at a locally stored photo. It is never mutated.
type CapturedImage struct {
	URI string `json:"uri"`
}

type Facing string

const (
	FacingFront Facing = "front"
	FacingBack  Facing = "back"
)

// Other returns the opposite camera.
func (f Facing) Other() Facing {
	if f == FacingBack {
		return FacingFront
	}
	return FacingBack
}

type Permission string

const (
	PermissionUndetermined Permission = "undetermined"
	PermissionGranted      Permission = "granted"
	PermissionDenied       Permission = "denied"
	// PermissionBlocked means the OS will not ask again; only the user can lift it.
	PermissionBlocked Permission = "blocked"
)

func ParsePermission(s string) Permission {
	switch Permission(s) {
	case PermissionGranted, PermissionDenied, PermissionBlocked:
		return Permission(s)
	default:
		return PermissionUndetermined
	}
}
