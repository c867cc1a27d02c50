package authx

import "time"

// UserProfile is the UI-facing projection of an ID token's claims. It is
// derived, never mutated: every read rebuilds it from the stored token.
// Missing claims become zero values (empty string, false, empty slice).
type UserProfile struct {
	Email             string
	EmailVerified     bool
	Name              string
	FamilyName        string
	GivenName         string
	PreferredUsername string
	SubjectID         string
	// Username comes from the provider-specific username claim and falls
	// back to the subject id.
	Username string
	// Groups comes from the provider-specific groups claim; empty when the
	// subject belongs to none.
	Groups      []string
	PhoneNumber string
	Picture     string
	Locale      string
	UpdatedAt   time.Time

	IssuedAt  time.Time
	ExpiresAt time.Time
	Audience  []string
	Issuer    string
}

// ProfileFromClaims projects decoded claims onto a UserProfile using the
// configured provider-specific claim names. Each fallback here is part of
// the contract: name falls back to given_name, username to sub.
func ProfileFromClaims(claims Claims, cfg Config) UserProfile {
	profile := UserProfile{
		Email:             claims.String("email"),
		EmailVerified:     claims.Bool("email_verified"),
		Name:              claims.String("name"),
		FamilyName:        claims.String("family_name"),
		GivenName:         claims.String("given_name"),
		PreferredUsername: claims.String("preferred_username"),
		SubjectID:         claims.String("sub"),
		Username:          claims.String(cfg.UsernameClaim),
		Groups:            claims.StringSlice(cfg.GroupsClaim),
		PhoneNumber:       claims.String("phone_number"),
		Picture:           claims.String("picture"),
		Locale:            claims.String("locale"),
		Audience:          claims.StringSlice("aud"),
		Issuer:            claims.String("iss"),
	}
	if profile.Name == "" {
		profile.Name = profile.GivenName
	}
	if profile.Username == "" {
		profile.Username = profile.SubjectID
	}
	if t, ok := claims.EpochTime("updated_at"); ok {
		profile.UpdatedAt = t
	}
	if t, ok := claims.EpochTime("iat"); ok {
		profile.IssuedAt = t
	}
	if t, ok := claims.EpochTime("exp"); ok {
		profile.ExpiresAt = t
	}
	return profile
}
