package models

// Viewer is the per-request identity resolved from the session cookie.
// It is never shared across requests; anonymous requests carry the
// zero value with Authenticated=false.
type Viewer struct {
	Authenticated bool
	AccountID     uint
	FirstName     string
	LastName      string
}

func (v Viewer) Name() string {
	if !v.Authenticated {
		return ""
	}
	return v.FirstName + " " + v.LastName
}
