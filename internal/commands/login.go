package commands

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"taskpad/internal/backend/googletasks"
	"taskpad/internal/config"
	"taskpad/internal/exitcode"
)

const (
	callbackTimeout = 5 * time.Minute
	exchangeTimeout = 30 * time.Second

	// the loopback redirect tries callbackPort and the next few ports
	callbackPort     = 8085
	callbackAttempts = 5
)

func init() {
	Register(&LoginCmd{})
}

// LoginCmd authorizes export to Google Tasks.
type LoginCmd struct{}

func (c *LoginCmd) Name() string      { return "login" }
func (c *LoginCmd) Aliases() []string { return nil }
func (c *LoginCmd) Synopsis() string  { return "Authorize export to Google Tasks" }
func (c *LoginCmd) Usage() string     { return "taskpad login [common flags]" }
func (c *LoginCmd) Scope() Scope      { return ScopeProcess }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *LoginCmd) Run(ctx context.Context, sess *Session, args []string, out, errOut io.Writer) int {
	cfg := sess.Config
	logger := sess.Log("login")

	if !cfg.HasOAuthClient() {
		printOAuthSetup(cfg, errOut)
		return exitcode.AuthError
	}

	if cfg.HasToken() && isTokenValid(ctx, cfg) {
		if !cfg.Quiet {
			fmt.Fprintln(out, "already logged in")
		}
		return exitcode.Success
	}

	oauthConfig, err := googletasks.OAuthConfig(cfg)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.AuthError
	}

	ln, err := listenLoopback()
	if err != nil {
		fmt.Fprintf(errOut, "error: oauth callback: %v\n", err)
		return exitcode.AuthError
	}

	oauthConfig.RedirectURL = fmt.Sprintf("http://%s/callback", ln.Addr())
	state := uuid.NewString()
	verifier := oauth2.GenerateVerifier()
	authURL := oauthConfig.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.S256ChallengeOption(verifier),
	)

	fmt.Fprintf(errOut, "Authorize taskpad in your browser:\n%s\n", authURL)
	logger.Debugw("msg", "waiting for oauth callback", "addr", ln.Addr().String())

	code, err := receiveCode(ctx, ln, state)
	if err != nil {
		fmt.Fprintf(errOut, "error: oauth callback: %v\n", err)
		return exitcode.AuthError
	}

	exchangeCtx, cancelExchange := context.WithTimeout(ctx, exchangeTimeout)
	defer cancelExchange()

	token, err := oauthConfig.Exchange(exchangeCtx, code, oauth2.VerifierOption(verifier))
	if err != nil {
		fmt.Fprintf(errOut, "error: failed to exchange code for token: %v\n", err)
		return exitcode.AuthError
	}

	if err := cfg.EnsureDir(); err != nil {
		fmt.Fprintf(errOut, "error: failed to create config directory: %v\n", err)
		return exitcode.AuthError
	}

	if err := saveToken(cfg.TokenPath(), token); err != nil {
		fmt.Fprintf(errOut, "error: failed to save token: %v\n", err)
		return exitcode.AuthError
	}

	logger.Infow("msg", "token saved", "path", cfg.TokenPath())
	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

func printOAuthSetup(cfg *config.Config, errOut io.Writer) {
	fmt.Fprintf(errOut, "error: %s not found in %s\n", config.OAuthClientFile, cfg.Dir)
	fmt.Fprintf(errOut, `
Export needs a desktop OAuth client with the Tasks API enabled on its
Google Cloud project (console.cloud.google.com, "APIs & Services").
Download the client JSON and store it as

    %s

then retry with: taskpad login
`, cfg.OAuthClientPath())
}

// listenLoopback binds the first free port from callbackPort on.
func listenLoopback() (net.Listener, error) {
	var lastErr error
	for port := callbackPort; port < callbackPort+callbackAttempts; port++ {
		ln, err := net.Listen("tcp", fmt.Sprintf("localhost:%d", port))
		if err == nil {
			return ln, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("no free port in %d-%d: %w", callbackPort, callbackPort+callbackAttempts-1, lastErr)
}

// receiveCode serves one OAuth redirect on ln and returns its code.
// Requests carrying a different state are refused. ln is closed on return.
func receiveCode(ctx context.Context, ln net.Listener, state string) (string, error) {
	defer ln.Close()

	type redirect struct {
		code string
		err  error
	}
	result := make(chan redirect, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		var err error
		switch {
		case q.Get("state") != state:
			err = errors.New("state mismatch")
		case q.Get("error") != "":
			err = fmt.Errorf("denied: %s", q.Get("error"))
		case q.Get("code") == "":
			err = errors.New("no code in redirect")
		}
		if err != nil {
			http.Error(w, "taskpad: "+err.Error(), http.StatusBadRequest)
		} else {
			fmt.Fprintln(w, "taskpad is authorized. You can close this tab.")
		}
		select {
		case result <- redirect{code: q.Get("code"), err: err}:
		default:
		}
	})

	server := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			select {
			case result <- redirect{err: err}:
			default:
			}
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	timer := time.NewTimer(callbackTimeout)
	defer timer.Stop()

	select {
	case r := <-result:
		return r.code, r.err
	case <-timer.C:
		return "", errors.New("timed out")
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// isTokenValid reports whether the stored token has a refresh token and
// can still be exchanged for an access token.
func isTokenValid(ctx context.Context, cfg *config.Config) bool {
	data, err := os.ReadFile(cfg.TokenPath())
	if err != nil {
		return false
	}
	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return false
	}
	if token.RefreshToken == "" {
		return false
	}

	oauthConfig, err := googletasks.OAuthConfig(cfg)
	if err != nil {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err = oauthConfig.TokenSource(ctx, &token).Token()
	return err == nil
}

// saveToken saves an OAuth token to a file with mode 0600.
func saveToken(path string, token *oauth2.Token) error {
	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
