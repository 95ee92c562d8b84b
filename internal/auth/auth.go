package auth

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tubesync/internal/shared"
	"github.com/gorilla/mux"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/youtube/v3"
)

// Scopes requested for playlist management.
var Scopes = []string{
	youtube.YoutubeScope,
	youtube.YoutubeReadonlyScope,
	youtube.YoutubeForceSslScope,
}

// RevokeURL is Google's token revocation endpoint.
var RevokeURL = "https://oauth2.googleapis.com/revoke"

const shutdownTimeout = 5 * time.Second

// Session is an authorized YouTube account.
type Session struct {
	source oauth2.TokenSource
}

// NewSession creates a [Session] from a token source.
func NewSession(source oauth2.TokenSource) *Session {
	return &Session{source: source}
}

// Client returns an [http.Client] that authorizes every request with the session's token.
func (s *Session) Client(ctx context.Context) *http.Client {
	return oauth2.NewClient(ctx, s.source)
}

// Token returns the current (possibly refreshed) token.
func (s *Session) Token() (*oauth2.Token, error) {
	return s.source.Token()
}

// NewOAuthConfig builds the Google OAuth2 client configuration from cfg.
func NewOAuthConfig(cfg shared.YouTubeConfig) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURI,
		Scopes:       Scopes,
		Endpoint:     google.Endpoint,
	}
}

// Authorizer obtains sessions, either from the [TokenStore] or by running the browser flow.
type Authorizer struct {
	config      *oauth2.Config
	store       *TokenStore
	logger      *log.Logger
	openBrowser func(string) error

	mu       sync.Mutex
	inFlight bool
}

// NewAuthorizer creates an [Authorizer] for config that persists tokens in store.
func NewAuthorizer(config *oauth2.Config, store *TokenStore, logger *log.Logger) *Authorizer {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Authorizer{
		config:      config,
		store:       store,
		logger:      logger,
		openBrowser: shared.OpenBrowser,
	}
}

// Session returns a session built from the stored token.
//
// Returns [shared.ErrNotAuthenticated] when no token is stored.
func (a *Authorizer) Session(ctx context.Context) (*Session, error) {
	token, err := a.store.Load()
	if err != nil {
		return nil, err
	}
	return a.sessionFor(ctx, token), nil
}

func (a *Authorizer) sessionFor(ctx context.Context, token *oauth2.Token) *Session {
	base := &persistingSource{
		base:  a.config.TokenSource(context.WithoutCancel(ctx), token),
		store: a.store,
		last:  token.AccessToken,
		onErr: func(err error) { a.logger.Warn("failed to persist refreshed token", "error", err) },
	}
	return NewSession(oauth2.ReuseTokenSource(token, base))
}

// Authorize runs the authorization code flow and stores the resulting token.
//
// Only one flow may run at a time. The call returns once a callback arrives or ctx is done.
func (a *Authorizer) Authorize(ctx context.Context) (*Session, error) {
	a.mu.Lock()
	if a.inFlight {
		a.mu.Unlock()
		return nil, fmt.Errorf("%w: authorization already in progress", shared.ErrAuthFailed)
	}
	a.inFlight = true
	a.mu.Unlock()
	defer func() {
		a.mu.Lock()
		a.inFlight = false
		a.mu.Unlock()
	}()

	redirect, err := url.Parse(a.config.RedirectURL)
	if err != nil || redirect.Host == "" {
		return nil, fmt.Errorf("%w: invalid redirect uri %q", shared.ErrInvalidConfig, a.config.RedirectURL)
	}

	listener, err := net.Listen("tcp", redirect.Host)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", redirect.Host, err)
	}

	state := shared.GenerateID()
	handler := NewCallbackHandler(a.config, state)
	router := mux.NewRouter()
	handler.Register(router, redirect.Path)

	server := &http.Server{Handler: router, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("callback server failed", "error", err)
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	opts := []oauth2.AuthCodeOption{oauth2.AccessTypeOffline}
	if _, err := a.store.Load(); err != nil {
		opts = append(opts, oauth2.SetAuthURLParam("prompt", "consent"))
	}
	authURL := a.config.AuthCodeURL(state, opts...)

	a.logger.Info("waiting for authorization", "callback", a.config.RedirectURL)
	if err := a.openBrowser(authURL); err != nil {
		a.logger.Warn("could not open browser, visit the URL manually", "url", authURL, "error", err)
	}

	select {
	case result := <-handler.Result():
		if result.Err != nil {
			return nil, result.Err
		}
		if err := a.store.Save(result.Token); err != nil {
			return nil, err
		}
		a.logger.Info("authorization complete", "token", a.store.Path())
		return a.sessionFor(ctx, result.Token), nil
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: no authorization callback received", shared.ErrTimeout)
		}
		return nil, fmt.Errorf("%w: %v", shared.ErrCancelled, ctx.Err())
	}
}

// Logout revokes the stored token (best effort) and deletes it.
func (a *Authorizer) Logout(ctx context.Context, client *http.Client) error {
	token, err := a.store.Load()
	if errors.Is(err, shared.ErrNotAuthenticated) {
		return nil
	}
	if err == nil {
		if err := Revoke(ctx, client, token); err != nil {
			a.logger.Warn("token revocation failed", "error", err)
		}
	}
	return a.store.Delete()
}

// Revoke asks Google to invalidate token. The refresh token is preferred since revoking it also ends the grant.
func Revoke(ctx context.Context, client *http.Client, token *oauth2.Token) error {
	if client == nil {
		client = http.DefaultClient
	}

	value := token.RefreshToken
	if value == "" {
		value = token.AccessToken
	}
	if value == "" {
		return fmt.Errorf("%w: token is empty", shared.ErrInvalidInput)
	}

	form := url.Values{"token": {value}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, RevokeURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: revoke: %v", shared.ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: revoke returned status %d", shared.ErrTransport, resp.StatusCode)
	}
	return nil
}
