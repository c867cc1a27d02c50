package authx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

var timeNow = time.Now

// Navigator performs a browser-level navigation to the given URL. Login and
// logout hand control to the hosted UI through it; hosts without a browser
// context can leave it unset and drive LoginURL/LogoutURL themselves.
type Navigator func(url string) error

// Option customizes a Manager at construction time.
type Option func(*Manager)

// WithStorage replaces the default in-process storage facility.
func WithStorage(storage Storage) Option {
	return func(m *Manager) {
		m.store = NewSessionStore(storage)
	}
}

// WithHTTPClient replaces the HTTP client used for the code exchange and the
// user-info fetch. Timeout policy lives on the client.
func WithHTTPClient(client *http.Client) Option {
	return func(m *Manager) {
		m.client = client
	}
}

// WithNavigator sets the navigation hook used by Login and Logout.
func WithNavigator(navigate Navigator) Option {
	return func(m *Manager) {
		m.navigate = navigate
	}
}

// Manager drives the hosted-UI session: login redirect, code exchange,
// expiry policy, profile projection, and logout. It holds no session state
// of its own; every query re-derives its answer from the store, so
// concurrent readers see whatever was last written.
type Manager struct {
	cfg      Config
	store    *SessionStore
	client   *http.Client
	navigate Navigator
}

// NewManager builds a session manager from the given configuration.
func NewManager(cfg Config, opts ...Option) (*Manager, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.normalize()

	m := &Manager{cfg: cfg}
	for _, opt := range opts {
		opt(m)
	}
	if m.store == nil {
		m.store = NewSessionStore(nil)
	}
	if m.client == nil {
		m.client = &http.Client{Timeout: cfg.HTTPTimeout}
	}
	return m, nil
}

// LoginURL returns the hosted-UI authorization URL for this client. Pure URL
// construction, no network call.
func (m *Manager) LoginURL() string {
	return m.cfg.oauth2Config().AuthCodeURL("")
}

// Login navigates to the hosted-UI login page. Control leaves the
// application; the provider redirects back with a code or an error.
func (m *Manager) Login() error {
	if m.navigate == nil {
		return newError(ErrCodeInternal, errors.New("no navigator configured"))
	}
	return m.navigate(m.LoginURL())
}

// HandleRedirect inspects the page URL the provider redirected back to. A
// code parameter is exchanged for tokens; an error parameter becomes a typed
// exchange failure. A URL carrying neither returns (nil, nil) so hosts can
// call this unconditionally on load.
func (m *Manager) HandleRedirect(ctx context.Context, rawURL string) (*TokenBundle, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, newError(ErrCodeExchange, err)
	}
	query := u.Query()
	if provErr := query.Get("error"); provErr != "" {
		desc := query.Get("error_description")
		if desc == "" {
			desc = provErr
		}
		return nil, newError(ErrCodeExchange, errors.New(desc))
	}
	if code := query.Get("code"); code != "" {
		return m.HandleCallback(ctx, code)
	}
	return nil, nil
}

// HandleCallback exchanges an authorization code for tokens and persists the
// resulting bundle. On failure the stored bundle is left untouched: either
// the prior session or no session, never a partial write.
func (m *Manager) HandleCallback(ctx context.Context, code string) (*TokenBundle, error) {
	if code == "" {
		return nil, newError(ErrCodeExchange, errors.New("authorization code is empty"))
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, m.client)
	tok, err := m.cfg.oauth2Config().Exchange(ctx, code)
	if err != nil {
		return nil, newError(ErrCodeExchange, errors.New(exchangeErrorMessage(err)))
	}

	bundle := bundleFromOAuth2Token(tok)
	if err := m.store.Save(bundle); err != nil {
		return nil, err
	}
	return &bundle, nil
}

// exchangeErrorMessage prefers the provider's error_description, then its
// error code, then the raw body, then the transport error.
func exchangeErrorMessage(err error) string {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		switch {
		case retrieveErr.ErrorDescription != "":
			return retrieveErr.ErrorDescription
		case retrieveErr.ErrorCode != "":
			return retrieveErr.ErrorCode
		case len(retrieveErr.Body) > 0:
			return strings.TrimSpace(string(retrieveErr.Body))
		case retrieveErr.Response != nil:
			return retrieveErr.Response.Status
		}
	}
	return err.Error()
}

// IsAuthenticated reports whether a bundle with an ID token is stored. It
// does not inspect the token's claims; see IsExpired for the expiry policy.
func (m *Manager) IsAuthenticated() bool {
	bundle, ok := m.store.Load()
	return ok && bundle.IDToken != ""
}

// IsExpired reports whether the stored session has passed its expiry minus
// the configured buffer. No bundle, an undecodable ID token, and a missing
// or malformed exp claim all read as expired.
func (m *Manager) IsExpired() bool {
	bundle, ok := m.store.Load()
	if !ok {
		return true
	}
	claims, err := DecodeClaims(bundle.IDToken)
	if err != nil {
		return true
	}
	exp, ok := claims.EpochTime("exp")
	if !ok {
		return true
	}
	return exp.Before(timeNow().Add(m.cfg.ExpiryBuffer))
}

// CurrentProfile projects the stored ID token's claims onto a UserProfile.
// The second return is false when no usable session exists. An ID token that
// stopped decoding clears the session rather than surfacing a fault.
func (m *Manager) CurrentProfile() (*UserProfile, bool) {
	bundle, ok := m.store.Load()
	if !ok || bundle.IDToken == "" {
		return nil, false
	}
	claims, err := DecodeClaims(bundle.IDToken)
	if err != nil {
		m.ClearTokens()
		return nil, false
	}
	profile := ProfileFromClaims(claims, m.cfg)
	return &profile, true
}

// FetchRemoteProfile calls the user-info endpoint with the current ID token
// as bearer credential. Best-effort enrichment: callers fall back to
// CurrentProfile on failure.
func (m *Manager) FetchRemoteProfile(ctx context.Context) (map[string]any, error) {
	bundle, ok := m.store.Load()
	if !ok || bundle.IDToken == "" {
		return nil, newError(ErrCodeNoSession, errors.New("no ID token available"))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.cfg.UserInfoURL, nil)
	if err != nil {
		return nil, newError(ErrCodeProfileFetch, err)
	}
	req.Header.Set("Authorization", "Bearer "+bundle.IDToken)
	req.Header.Set("Accept", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, newError(ErrCodeProfileFetch, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newError(ErrCodeProfileFetch, err)
	}
	if resp.StatusCode/100 != 2 {
		return nil, newError(ErrCodeProfileFetch, errors.New(remoteErrorMessage(resp.Status, body)))
	}

	var profile map[string]any
	if err := json.Unmarshal(body, &profile); err != nil {
		return nil, newError(ErrCodeProfileFetch, err)
	}
	return profile, nil
}

func remoteErrorMessage(status string, body []byte) string {
	var payload struct {
		ErrorDescription string `json:"error_description"`
		ErrorCode        string `json:"error"`
		Message          string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		switch {
		case payload.ErrorDescription != "":
			return payload.ErrorDescription
		case payload.ErrorCode != "":
			return payload.ErrorCode
		case payload.Message != "":
			return payload.Message
		}
	}
	return status
}

// LogoutURL returns the hosted-UI logout URL for this client.
func (m *Manager) LogoutURL() string {
	query := url.Values{
		"client_id":  {m.cfg.ClientID},
		"logout_uri": {m.cfg.LogoutRedirectURI},
	}
	return fmt.Sprintf("%s/logout?%s", m.cfg.AuthBaseURL, query.Encode())
}

// Logout clears the stored session, then navigates to the provider's logout
// page. Clearing happens first so a failed navigation never leaves stale
// credentials behind.
func (m *Manager) Logout() error {
	m.store.Clear()
	if m.navigate == nil {
		return nil
	}
	return m.navigate(m.LogoutURL())
}

// ClearTokens removes the stored bundle without contacting the provider.
func (m *Manager) ClearTokens() {
	m.store.Clear()
}

// TokenSource exposes the stored access token as an oauth2.TokenSource so
// host code can authenticate outgoing calls. The source re-reads the store
// on every call and fails with ErrCodeNoSession once the bundle is gone.
func (m *Manager) TokenSource() oauth2.TokenSource {
	return &sessionTokenSource{manager: m}
}

type sessionTokenSource struct {
	manager *Manager
}

func (s *sessionTokenSource) Token() (*oauth2.Token, error) {
	bundle, ok := s.manager.store.Load()
	if !ok || bundle.AccessToken == "" {
		return nil, newError(ErrCodeNoSession, errors.New("no access token available"))
	}
	tok := &oauth2.Token{
		AccessToken: bundle.AccessToken,
		TokenType:   bundle.TokenType,
	}
	if claims, err := DecodeClaims(bundle.IDToken); err == nil {
		if exp, ok := claims.EpochTime("exp"); ok {
			tok.Expiry = exp
		}
	}
	return tok, nil
}
