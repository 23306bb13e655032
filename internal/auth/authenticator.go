package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/microsoft"

	"mstodo/internal/config"
)

// TasksReadScope is the read-only To Do scope requested for every token.
const TasksReadScope = "Tasks.Read"

// defaultAccount names cache entries produced by the interactive and
// manual stages, where no account identity is known up front.
const defaultAccount = "default"

// ProviderError carries the identity provider's error code and description
// from a failed token acquisition.
type ProviderError struct {
	Code        string
	Description string
}

func (e *ProviderError) Error() string {
	if e.Description == "" {
		return e.Code
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// state is one step of the acquisition cascade. Each attempt state is
// entered at most once per run; the first token reached short-circuits
// straight to authenticated.
type state int

const (
	stateSilent state = iota
	stateInteractive
	stateManual
	stateAuthenticated
	stateAborted
)

// Authenticator produces a bearer access token by walking the cascade:
// cached-silent, then interactive, then manual paste. The cache is saved
// after every successful acquisition, silent ones included, since token
// refresh state may have changed.
type Authenticator struct {
	Store *Store
	Flow  Flow

	// Out receives progress notices. Defaults to io.Discard when nil.
	Out io.Writer
}

// NewAuthenticator wires an Authenticator from the run configuration.
// in and promptOut are the streams used by the manual paste stage.
func NewAuthenticator(cfg *config.Config, in io.Reader, promptOut io.Writer) (*Authenticator, error) {
	if cfg.ClientID == "" {
		return nil, errors.New("MSTODO_CLIENT_ID is not set")
	}

	oauthCfg := &oauth2.Config{
		ClientID:    cfg.ClientID,
		Endpoint:    microsoft.AzureADEndpoint(cfg.Tenant),
		RedirectURL: cfg.RedirectURI,
		Scopes:      []string{TasksReadScope},
	}

	return &Authenticator{
		Store: NewStore(cfg.TokenCachePath()),
		Flow:  &CodeFlow{Config: oauthCfg, In: in, Out: promptOut},
		Out:   promptOut,
	}, nil
}

// Acquire runs the cascade and returns the bearer access token. Terminal
// failures surface the provider's error code and description; nothing is
// retried.
func (a *Authenticator) Acquire(ctx context.Context) (string, error) {
	cache := a.Store.Load()

	var (
		token    *oauth2.Token
		username = defaultAccount
		lastErr  error
	)

	st := stateSilent
	for {
		switch st {
		case stateSilent:
			acct := cache.First()
			if acct == nil {
				a.notice("No accounts found. Acquiring new token...")
				st = stateInteractive
				continue
			}
			t, err := a.Flow.Silent(ctx, acct)
			if err != nil {
				slog.Debug("silent acquisition failed", "account", acct.Username, "error", err)
				a.notice("No suitable token found in cache. Acquiring new token...")
				lastErr = err
				st = stateInteractive
				continue
			}
			a.notice("Token found in cache")
			token = t
			username = acct.Username
			st = stateAuthenticated

		case stateInteractive:
			t, err := a.Flow.Interactive(ctx)
			if err != nil {
				slog.Debug("interactive acquisition failed", "error", err)
				lastErr = err
				st = stateManual
				continue
			}
			token = t
			st = stateAuthenticated

		case stateManual:
			t, err := a.Flow.Manual(ctx)
			if err != nil {
				lastErr = err
				st = stateAborted
				continue
			}
			token = t
			st = stateAuthenticated

		case stateAuthenticated:
			cache.Upsert(username, token)
			if err := a.Store.Save(cache); err != nil {
				return "", fmt.Errorf("saving token cache: %w", err)
			}
			return token.AccessToken, nil

		case stateAborted:
			return "", asProviderError(lastErr)
		}
	}
}

// asProviderError converts an oauth2 retrieval failure into a ProviderError
// carrying the provider's error code and description. Other failures, such
// as a malformed manual paste, are wrapped as token acquisition errors.
func asProviderError(err error) error {
	if err == nil {
		return errors.New("no access token acquired")
	}
	var re *oauth2.RetrieveError
	if errors.As(err, &re) {
		code := re.ErrorCode
		if code == "" && re.Response != nil {
			code = re.Response.Status
		}
		return &ProviderError{Code: code, Description: re.ErrorDescription}
	}
	return fmt.Errorf("token acquisition failed: %w", err)
}

func (a *Authenticator) notice(msg string) {
	if a.Out == nil {
		return
	}
	fmt.Fprintln(a.Out, msg)
}
