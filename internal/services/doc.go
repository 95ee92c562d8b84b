// Package services defines the [Gateway] interface for the remote playlist catalog and implements it for YouTube.
//
// # Gateway Interface
//
// The pipelines only see [Gateway], so a session-bound implementation is created per signed-in account and passed in
// explicitly. Listing calls follow continuation tokens until exhausted and return the full collection or an error,
// never a partial page.
//
// # YouTube Implementation
//
// [YouTubeService] wraps the generated YouTube Data API v3 client (google.golang.org/api/youtube/v3). It is built
// from an [http.Client] that already carries the OAuth2 bearer token (see package auth).
//
// # Error Handling
//
// Every remote failure is returned as a [*TransportError] naming the operation:
//   - errors.Is(err, [shared.ErrTransport]) : any remote call failure
//   - errors.Is(err, [shared.ErrQuotaExceeded]) : the API reported a quota or rate limit reason
//
// # Descriptions
//
// [Describer] produces the description of a restored playlist. [GeminiDescriber] asks a Gemini model for a short
// description; [StaticDescriber] returns fixed text. [DescribeOrDefault] substitutes a fallback text on failure.
package services
