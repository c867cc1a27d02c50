package authx

// DevBypassProfile holds attributes used when issuing a synthetic profile in
// dev mode, skipping the hosted-UI round trip.
type DevBypassProfile struct {
	SubjectID string
	Username  string
	Email     string
	Groups    []string
}

// ToSessionProfile converts the dev bypass configuration into a session
// profile.
func (d DevBypassProfile) ToSessionProfile() SessionProfile {
	username := d.Username
	if username == "" {
		username = d.SubjectID
	}
	profile := &UserProfile{
		SubjectID: d.SubjectID,
		Username:  username,
		Email:     d.Email,
		Groups:    append([]string(nil), d.Groups...),
	}
	return SessionProfile{
		Profile:   profile,
		DevBypass: true,
	}
}

// DefaultDevBypassProfile returns a baseline profile suitable for local
// development.
func DefaultDevBypassProfile(email string) DevBypassProfile {
	if email == "" {
		email = "dev@local.test"
	}
	return DevBypassProfile{
		SubjectID: "dev-bypass",
		Email:     email,
	}
}
