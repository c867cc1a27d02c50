// Package authx manages a hosted-UI OAuth2 authorization code session for a
// single browsing tab: it builds the login redirect, exchanges the returned
// code for a token bundle, persists that bundle in session-scoped storage,
// projects the ID token's claims onto a normalized user profile, and applies
// the expiry policy that forces re-login once a session lapses.
//
// The ID token is decoded without signature verification; the claims are for
// display and session bookkeeping only and must not feed trust decisions.
// There is no refresh-token flow: expiry always forces a new login.
package authx
