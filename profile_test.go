package authx

import (
	"testing"
	"time"
)

func testConfig() Config {
	cfg := Config{
		AuthBaseURL: "https://auth.example.com",
		ClientID:    "client-1",
		RedirectURI: "https://app.example.com/callback",
	}
	cfg.normalize()
	return cfg
}

func TestProfileFromClaims_FullMapping(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	claims := Claims{
		"email":              "a@b.com",
		"email_verified":     true,
		"name":               "Ada Lovelace",
		"family_name":        "Lovelace",
		"given_name":         "Ada",
		"preferred_username": "ada",
		"sub":                "u1",
		"cognito:username":   "ada.lovelace",
		"cognito:groups":     []string{"admins"},
		"phone_number":       "+15550100",
		"picture":            "https://img.example.com/ada.png",
		"locale":             "en-GB",
		"updated_at":         float64(now.Unix()),
		"iat":                now,
		"exp":                now.Add(time.Hour),
		"aud":                []string{"client-1"},
		"iss":                "https://auth.example.com",
	}

	profile := ProfileFromClaims(claims, testConfig())

	if profile.Email != "a@b.com" || !profile.EmailVerified {
		t.Fatalf("unexpected email fields: %+v", profile)
	}
	if profile.Name != "Ada Lovelace" || profile.FamilyName != "Lovelace" || profile.GivenName != "Ada" {
		t.Fatalf("unexpected name fields: %+v", profile)
	}
	if profile.SubjectID != "u1" {
		t.Fatalf("unexpected subject: %s", profile.SubjectID)
	}
	if profile.Username != "ada.lovelace" {
		t.Fatalf("expected provider username claim, got %s", profile.Username)
	}
	if len(profile.Groups) != 1 || profile.Groups[0] != "admins" {
		t.Fatalf("unexpected groups: %v", profile.Groups)
	}
	if !profile.UpdatedAt.Equal(time.Unix(now.Unix(), 0)) {
		t.Fatalf("unexpected updated_at: %v", profile.UpdatedAt)
	}
	if !profile.IssuedAt.Equal(now) || !profile.ExpiresAt.Equal(now.Add(time.Hour)) {
		t.Fatalf("unexpected temporal claims: iat=%v exp=%v", profile.IssuedAt, profile.ExpiresAt)
	}
	if len(profile.Audience) != 1 || profile.Audience[0] != "client-1" {
		t.Fatalf("unexpected audience: %v", profile.Audience)
	}
	if profile.Issuer != "https://auth.example.com" {
		t.Fatalf("unexpected issuer: %s", profile.Issuer)
	}
}

func TestProfileFromClaims_Defaults(t *testing.T) {
	profile := ProfileFromClaims(Claims{"sub": "u1"}, testConfig())

	if profile.Email != "" || profile.EmailVerified {
		t.Fatalf("expected empty email fields, got %+v", profile)
	}
	if len(profile.Groups) != 0 {
		t.Fatalf("expected empty groups, got %v", profile.Groups)
	}
	if profile.Username != "u1" {
		t.Fatalf("expected username fallback to sub, got %q", profile.Username)
	}
	if !profile.UpdatedAt.IsZero() || !profile.ExpiresAt.IsZero() {
		t.Fatalf("expected zero temporal fields, got %+v", profile)
	}
}

func TestProfileFromClaims_NameFallsBackToGivenName(t *testing.T) {
	claims := Claims{
		"sub":        "u1",
		"given_name": "Ada",
	}
	profile := ProfileFromClaims(claims, testConfig())
	if profile.Name != "Ada" {
		t.Fatalf("expected name fallback to given_name, got %q", profile.Name)
	}
}

func TestProfileFromClaims_BooleanStringForms(t *testing.T) {
	claims := Claims{
		"sub":            "u1",
		"email_verified": "true",
	}
	profile := ProfileFromClaims(claims, testConfig())
	if !profile.EmailVerified {
		t.Fatal("expected string form email_verified to project as true")
	}
}
