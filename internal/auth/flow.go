package auth

import (
	"bufio"
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

const (
	// callbackTimeout bounds the wait for the browser redirect.
	callbackTimeout = 5 * time.Minute

	// exchangeTimeout bounds the code-for-token exchange.
	exchangeTimeout = 30 * time.Second

	// callbackStartPort is the first port tried for the local callback server.
	callbackStartPort = 8085

	// callbackMaxPortAttempts is how many consecutive ports are tried.
	callbackMaxPortAttempts = 5
)

// Flow is one strategy for producing a token. The Authenticator tries each
// stage at most once, in silent, interactive, manual order.
type Flow interface {
	// Silent acquires a token from a cached account without user
	// interaction, refreshing it if needed.
	Silent(ctx context.Context, acct *Account) (*oauth2.Token, error)

	// Interactive acquires a token by opening a sign-in URL and waiting
	// for the redirect on a local callback server.
	Interactive(ctx context.Context) (*oauth2.Token, error)

	// Manual acquires a token by printing the sign-in URL and reading the
	// pasted redirect URL from the operator.
	Manual(ctx context.Context) (*oauth2.Token, error)
}

// CodeFlow implements Flow against the Microsoft identity platform using
// the OAuth2 authorization-code grant with PKCE.
type CodeFlow struct {
	// Config carries the client ID, endpoint, scopes, and the registered
	// redirect URI used by the manual stage.
	Config *oauth2.Config

	// In is where the manual stage reads the pasted redirect URL from.
	In io.Reader

	// Out is where sign-in prompts are printed.
	Out io.Writer
}

// Silent refreshes the cached token through a token source. No user
// interaction happens; an expired refresh token surfaces as an error.
func (f *CodeFlow) Silent(ctx context.Context, acct *Account) (*oauth2.Token, error) {
	if acct.Token == nil {
		return nil, errors.New("cached account has no token")
	}
	token, err := f.Config.TokenSource(ctx, acct.Token).Token()
	if err != nil {
		return nil, err
	}
	return token, nil
}

// Interactive runs the authorization-code flow with a localhost callback
// server, trying a small range of ports for the redirect.
func (f *CodeFlow) Interactive(ctx context.Context) (*oauth2.Token, error) {
	port, listener, err := findAvailablePort()
	if err != nil {
		return nil, fmt.Errorf("could not bind a local port for the sign-in callback: %w", err)
	}
	defer listener.Close()

	cfg := *f.Config
	cfg.RedirectURL = fmt.Sprintf("http://localhost:%d/callback", port)

	verifier := oauth2.GenerateVerifier()
	state, err := randomState()
	if err != nil {
		return nil, err
	}

	authURL := cfg.AuthCodeURL(state, oauth2.S256ChallengeOption(verifier))
	fmt.Fprintln(f.Out, "Open this URL in your browser and sign in:")
	fmt.Fprintln(f.Out, authURL)

	codeCh := make(chan string, 1)
	errCh := make(chan error, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("state") != state {
			http.Error(w, "State mismatch", http.StatusBadRequest)
			errCh <- errors.New("state mismatch in callback")
			return
		}
		code := q.Get("code")
		if code == "" {
			http.Error(w, "No code in callback", http.StatusBadRequest)
			errCh <- errors.New("no code in callback")
			return
		}
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, "<html><body><h1>Sign-in complete</h1><p>You may close this window.</p></body></html>")
		codeCh <- code
	})

	server := &http.Server{Handler: mux}
	go func() {
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	var code string
	select {
	case code = <-codeCh:
	case err := <-errCh:
		return nil, err
	case <-time.After(callbackTimeout):
		return nil, errors.New("sign-in callback timed out")
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	exchangeCtx, cancel := context.WithTimeout(ctx, exchangeTimeout)
	defer cancel()
	return cfg.Exchange(exchangeCtx, code, oauth2.VerifierOption(verifier))
}

// Manual prints the authorization URL and exchanges the code parsed from a
// pasted redirect URL. The redirect URI is the one registered for the app,
// so the browser lands on a dead page and the operator copies its URL.
func (f *CodeFlow) Manual(ctx context.Context) (*oauth2.Token, error) {
	verifier := oauth2.GenerateVerifier()
	state, err := randomState()
	if err != nil {
		return nil, err
	}

	authURL := f.Config.AuthCodeURL(state, oauth2.S256ChallengeOption(verifier))
	fmt.Fprintln(f.Out, "Go to this URL and sign in:")
	fmt.Fprintln(f.Out, authURL)
	fmt.Fprint(f.Out, "After signing in, paste the full URL of the page you were redirected to: ")

	line, err := bufio.NewReader(f.In).ReadString('\n')
	if err != nil && line == "" {
		return nil, fmt.Errorf("reading redirect URL: %w", err)
	}

	code, gotState, err := ParseRedirect(strings.TrimSpace(line))
	if err != nil {
		return nil, err
	}
	if gotState != state {
		return nil, errors.New("malformed redirect URL: state does not match")
	}

	exchangeCtx, cancel := context.WithTimeout(ctx, exchangeTimeout)
	defer cancel()
	return f.Config.Exchange(exchangeCtx, code, oauth2.VerifierOption(verifier))
}

// ParseRedirect extracts the code and state query parameters from a pasted
// redirect URL.
func ParseRedirect(raw string) (code, state string, err error) {
	if raw == "" {
		return "", "", errors.New("malformed redirect URL: empty input")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", fmt.Errorf("malformed redirect URL: %w", err)
	}
	q := u.Query()
	code = q.Get("code")
	if code == "" {
		return "", "", errors.New("malformed redirect URL: no code parameter")
	}
	return code, q.Get("state"), nil
}

func findAvailablePort() (int, net.Listener, error) {
	for i := 0; i < callbackMaxPortAttempts; i++ {
		port := callbackStartPort + i
		listener, err := net.Listen("tcp", fmt.Sprintf("localhost:%d", port))
		if err == nil {
			return port, listener, nil
		}
	}
	return 0, nil, errors.New("no available port found")
}

func randomState() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
