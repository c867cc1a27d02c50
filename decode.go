package authx

import (
	"errors"

	"github.com/lestrrat-go/jwx/v2/jwt"
)

// DecodeClaims parses a compact token string into its claims mapping without
// verifying the signature. The decoded claims are for display and session
// bookkeeping only and must not feed trust decisions.
//
// Malformed input (wrong segment count, bad base64, bad JSON) fails with an
// *Error carrying ErrCodeDecodeFailed; callers treat the token as absent.
func DecodeClaims(token string) (Claims, error) {
	if token == "" {
		return nil, newError(ErrCodeDecodeFailed, errors.New("token is empty"))
	}

	parsed, err := jwt.Parse([]byte(token),
		jwt.WithVerify(false),
		jwt.WithValidate(false),
	)
	if err != nil {
		return nil, newError(ErrCodeDecodeFailed, err)
	}

	private := parsed.PrivateClaims()
	claims := make(Claims, len(private)+6)
	for k, v := range private {
		claims[k] = v
	}

	// Registered claims go back into the map under their wire names so the
	// mapping stays a faithful view of the payload.
	if v := parsed.Subject(); v != "" {
		claims["sub"] = v
	}
	if v := parsed.Issuer(); v != "" {
		claims["iss"] = v
	}
	if aud := parsed.Audience(); len(aud) > 0 {
		claims["aud"] = append([]string(nil), aud...)
	}
	if v := parsed.Expiration(); !v.IsZero() {
		claims["exp"] = v
	}
	if v := parsed.IssuedAt(); !v.IsZero() {
		claims["iat"] = v
	}
	if v := parsed.NotBefore(); !v.IsZero() {
		claims["nbf"] = v
	}
	if v := parsed.JwtID(); v != "" {
		claims["jti"] = v
	}

	return claims, nil
}
