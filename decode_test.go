package authx

import (
	"errors"
	"testing"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

func mintToken(t *testing.T, claims map[string]any) string {
	t.Helper()
	builder := jwt.NewBuilder()
	for name, value := range claims {
		builder = builder.Claim(name, value)
	}
	token, err := builder.Build()
	if err != nil {
		t.Fatalf("build token: %v", err)
	}
	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256, []byte("test-secret")))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return string(signed)
}

func TestDecodeClaims_RoundTrip(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	token := mintToken(t, map[string]any{
		"sub":                "user-1",
		"iss":                "https://auth.example.com",
		"aud":                "client-1",
		"exp":                now.Add(time.Hour),
		"iat":                now,
		"email":              "user@example.com",
		"email_verified":     true,
		"cognito:username":   "user-one",
		"cognito:groups":     []string{"admins", "editors"},
		"preferred_username": "u.one",
	})

	claims, err := DecodeClaims(token)
	if err != nil {
		t.Fatalf("DecodeClaims: %v", err)
	}

	if got := claims.String("sub"); got != "user-1" {
		t.Fatalf("unexpected sub: %s", got)
	}
	if got := claims.String("email"); got != "user@example.com" {
		t.Fatalf("unexpected email: %s", got)
	}
	if !claims.Bool("email_verified") {
		t.Fatal("expected email_verified true")
	}
	if got := claims.StringSlice("cognito:groups"); len(got) != 2 || got[0] != "admins" || got[1] != "editors" {
		t.Fatalf("unexpected groups: %v", got)
	}
	exp, ok := claims.EpochTime("exp")
	if !ok {
		t.Fatal("expected exp claim")
	}
	if !exp.Equal(now.Add(time.Hour)) {
		t.Fatalf("unexpected exp: got %v, want %v", exp, now.Add(time.Hour))
	}
	iat, ok := claims.EpochTime("iat")
	if !ok || !iat.Equal(now) {
		t.Fatalf("unexpected iat: %v (present: %t)", iat, ok)
	}
}

func TestDecodeClaims_MultiByteValues(t *testing.T) {
	token := mintToken(t, map[string]any{
		"sub":         "user-1",
		"name":        "山田 太郎",
		"family_name": "山田",
		"given_name":  "太郎",
		"locale":      "ja-JP",
		"note":        "héllo wörld — καλημέρα",
	})

	claims, err := DecodeClaims(token)
	if err != nil {
		t.Fatalf("DecodeClaims: %v", err)
	}
	if got := claims.String("name"); got != "山田 太郎" {
		t.Fatalf("unexpected name: %q", got)
	}
	if got := claims.String("note"); got != "héllo wörld — καλημέρα" {
		t.Fatalf("unexpected note: %q", got)
	}
}

func TestDecodeClaims_Malformed(t *testing.T) {
	cases := map[string]string{
		"empty":           "",
		"no separators":   "nodotsatall",
		"two segments":    "aGVhZGVy.cGF5bG9hZA",
		"bad base64":      "aGVhZGVy.!!!notbase64!!!.c2ln",
		"bad json":        "aGVhZGVy.bm90LWpzb24.c2ln",
		"only separators": "..",
	}

	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeClaims(input)
			if err == nil {
				t.Fatalf("expected error for %q", input)
			}
			var decodeErr *Error
			if !errors.As(err, &decodeErr) {
				t.Fatalf("expected *Error, got %T", err)
			}
			if decodeErr.Code != ErrCodeDecodeFailed {
				t.Fatalf("unexpected error code: %s", decodeErr.Code)
			}
		})
	}
}
