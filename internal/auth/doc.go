// Package auth acquires and stores the OAuth2 session used to call the YouTube Data API.
//
// # Session
//
// A [Session] wraps an [oauth2.TokenSource]. Callers only ever ask it for an authorized [http.Client] and hand that
// to the gateway; nothing else inspects the token.
//
// # Authorization Flow
//
// [Authorizer.Authorize] runs the authorization code flow once:
//  1. a temporary callback server (gorilla/mux) listens on the redirect URI's host
//  2. the consent page is opened in the browser with a random state value
//  3. the [CallbackHandler] validates state, exchanges the code and delivers exactly one [CallbackResult]
//  4. the server is shut down and the token is written to the [TokenStore]
//
// Refreshed tokens are written back to the store so later runs reuse them.
package auth
