package authx

import (
	"encoding/json"
	"strconv"
	"time"

	"golang.org/x/oauth2"
)

// TokenBundle holds the tokens returned by one authorization code exchange.
// A bundle is immutable once created; a later exchange replaces it wholesale
// and logout destroys it.
type TokenBundle struct {
	AccessToken  string `json:"access_token"`
	IDToken      string `json:"id_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	TokenType    string `json:"token_type"`
}

// bundleFromOAuth2Token maps the provider's token response into a bundle.
// The id_token and the raw expires_in travel as extra fields on the oauth2
// token.
func bundleFromOAuth2Token(tok *oauth2.Token) TokenBundle {
	bundle := TokenBundle{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenType:    tok.Type(),
	}
	if id, ok := tok.Extra("id_token").(string); ok {
		bundle.IDToken = id
	}
	bundle.ExpiresIn = expiresInSeconds(tok)
	return bundle
}

func expiresInSeconds(tok *oauth2.Token) int64 {
	switch v := tok.Extra("expires_in").(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	case json.Number:
		if sec, err := v.Int64(); err == nil {
			return sec
		}
	case string:
		if sec, err := strconv.ParseInt(v, 10, 64); err == nil {
			return sec
		}
	}
	if !tok.Expiry.IsZero() {
		if sec := int64(time.Until(tok.Expiry).Seconds()); sec > 0 {
			return sec
		}
	}
	return 0
}
