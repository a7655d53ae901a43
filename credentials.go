package sdk

import (
	"context"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// Credentials is the authentication material attached to a single request.
// The zero value means "no credentials": nothing is sent.
type Credentials struct {
	// Scheme is the Authorization scheme, typically "Bearer".
	Scheme string
	// Token is the opaque credential value.
	Token string
}

// authorization renders the Authorization header value, or "" when the
// credentials are empty.
func (c Credentials) authorization() string {
	if c.Token == "" {
		return ""
	}
	if c.Scheme == "" {
		return c.Token
	}
	return c.Scheme + " " + c.Token
}

// CredentialProvider supplies authentication material per call. The executor
// asks the provider for credentials immediately before each request, so
// implementations may rotate, refresh or fetch tokens as they see fit.
// A failure is surfaced to the caller as a ServiceException with StatusAuth.
//
// Callers may substitute any implementation at client construction time:
//
//	sdk := sdk.NewPersonSDK(url).WithCredentialProvider(myProvider)
type CredentialProvider interface {
	// Credentials returns valid credentials for one call, or an error when
	// none can be obtained. The context is the per-call request context.
	Credentials(ctx context.Context) (Credentials, error)
}

// AnonymousCredentials is the default provider: it attaches nothing.
type AnonymousCredentials struct{}

// Credentials returns empty credentials and never fails.
func (AnonymousCredentials) Credentials(context.Context) (Credentials, error) {
	return Credentials{}, nil
}

// StaticTokenProvider attaches a fixed bearer token to every request.
//
// Example:
//
//	provider := sdk.StaticTokenProvider{Token: os.Getenv("PERSON_API_TOKEN")}
type StaticTokenProvider struct {
	Token string
}

// Credentials returns the fixed token as a bearer credential.
func (p StaticTokenProvider) Credentials(context.Context) (Credentials, error) {
	return Credentials{Scheme: "Bearer", Token: p.Token}, nil
}

// OAuth2Provider obtains bearer tokens through the OAuth2 client-credentials
// flow, caching and refreshing them as they expire.
type OAuth2Provider struct {
	source oauth2.TokenSource
}

// NewOAuth2Provider builds a provider from a client-credentials config.
// Tokens are fetched lazily on first use and reused until they expire.
//
// Example:
//
//	provider := sdk.NewOAuth2Provider(&clientcredentials.Config{
//	    ClientID:     "my-client",
//	    ClientSecret: "my-secret",
//	    TokenURL:     "https://auth.example.com/oauth2/token",
//	})
func NewOAuth2Provider(conf *clientcredentials.Config) *OAuth2Provider {
	return &OAuth2Provider{source: conf.TokenSource(context.Background())}
}

// NewTokenSourceProvider wraps an arbitrary oauth2.TokenSource, for callers
// that already manage their own token plumbing.
func NewTokenSourceProvider(source oauth2.TokenSource) *OAuth2Provider {
	return &OAuth2Provider{source: source}
}

// Credentials returns the current token, fetching or refreshing it if needed.
func (p *OAuth2Provider) Credentials(context.Context) (Credentials, error) {
	token, err := p.source.Token()
	if err != nil {
		return Credentials{}, err
	}
	scheme := token.Type()
	return Credentials{Scheme: scheme, Token: token.AccessToken}, nil
}
