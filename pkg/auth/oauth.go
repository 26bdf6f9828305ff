// Package auth handles the Google OAuth2 installed-app flow: client secrets,
// token persistence, and the local-redirect consent dance.
package auth

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

const (
	// ClientSecretsFile is the downloaded Google API credentials file
	// (client_id, client_secret, redirect_uris), kept under the config dir.
	ClientSecretsFile = "credentials.json"

	// TokenFile caches the obtained access + refresh token.
	TokenFile = "token.json"

	// LocalhostAuthPort is the port the local redirect listener binds to.
	LocalhostAuthPort = "6789"

	xdgAppName = "agenda"
)

// ConfigDir returns ~/.config/agenda.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", xdgAppName), nil
}

// LoadConfig builds an oauth2.Config from the client secrets file for the
// given scopes, forcing the redirect URL onto the local listener port.
func LoadConfig(scopes ...string) (*oauth2.Config, error) {
	dir, err := ConfigDir()
	if err != nil {
		return nil, err
	}

	secretsFile := filepath.Join(dir, ClientSecretsFile)
	b, err := os.ReadFile(secretsFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read client secret file %s: %w", secretsFile, err)
	}

	config, err := google.ConfigFromJSON(b, scopes...)
	if err != nil {
		return nil, fmt.Errorf("unable to parse client secret file to config: %w", err)
	}

	// The Google Cloud Console redirect URI must match what the local
	// listener serves, so normalize whatever the secrets file carries.
	parsed, parseErr := url.Parse(config.RedirectURL)
	switch {
	case parseErr != nil:
		log.Warn("could not parse redirect URL, using it as is", "url", config.RedirectURL, "err", parseErr)
	case parsed.Hostname() == "localhost" || parsed.Hostname() == "127.0.0.1":
		if parsed.Port() != LocalhostAuthPort {
			parsed.Host = fmt.Sprintf("%s:%s", parsed.Hostname(), LocalhostAuthPort)
			config.RedirectURL = parsed.String()
		}
	default:
		config.RedirectURL = fmt.Sprintf("http://localhost:%s/oauth2callback", LocalhostAuthPort)
	}

	return config, nil
}

// Token returns a usable token: the stored one when still valid, a
// transparently refreshed one when a refresh credential is available, or a
// freshly obtained one from the interactive consent flow. Obtained and
// refreshed tokens are written back to the store.
func Token(ctx context.Context, config *oauth2.Config, store TokenStore) (*oauth2.Token, error) {
	tok, err := store.Load()
	if err == nil {
		if tok.Valid() {
			return tok, nil
		}
		if tok.RefreshToken != "" {
			refreshed, refreshErr := config.TokenSource(ctx, tok).Token()
			if refreshErr == nil {
				if saveErr := store.Save(refreshed); saveErr != nil {
					log.Warn("could not persist refreshed token", "err", saveErr)
				}
				return refreshed, nil
			}
			log.Warn("token refresh failed, falling back to consent flow", "err", refreshErr)
		}
	}

	tok, err = tokenFromWeb(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to get token from web: %w", err)
	}
	if saveErr := store.Save(tok); saveErr != nil {
		log.Warn("could not persist token", "err", saveErr)
	}
	return tok, nil
}

// tokenFromWeb runs the OAuth 2.0 authorization code flow: a local HTTP
// server captures the redirect while the user grants access in the browser.
func tokenFromWeb(ctx context.Context, config *oauth2.Config) (*oauth2.Token, error) {
	codeCh := make(chan string)
	errCh := make(chan error)

	listener, err := net.Listen("tcp", fmt.Sprintf(":%s", LocalhostAuthPort))
	if err != nil {
		return nil, fmt.Errorf("failed to start listener on port %s: %w", LocalhostAuthPort, err)
	}
	defer listener.Close()

	server := &http.Server{
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			code := r.URL.Query().Get("code")
			if code == "" {
				http.Error(w, "Authorization code not found", http.StatusBadRequest)
				errCh <- fmt.Errorf("authorization code not found in redirect URL")
				return
			}
			fmt.Fprintf(w, "Authentication successful! You can close this window.")
			codeCh <- code
		}),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  15 * time.Second,
	}

	go func() {
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// AccessTypeOffline ensures a refresh token is returned.
	authURL := config.AuthCodeURL("state-token", oauth2.AccessTypeOffline, oauth2.SetAuthURLParam("prompt", "consent"))
	fmt.Printf("Please open the following URL in your browser to authorize agenda:\n%s\n", authURL)
	log.Info("waiting for authorization code", "redirect", config.RedirectURL)

	select {
	case authCode := <-codeCh:
		exchangeCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		tok, err := config.Exchange(exchangeCtx, authCode)
		if err != nil {
			return nil, fmt.Errorf("unable to retrieve token from Google: %w", err)
		}
		server.Shutdown(exchangeCtx)
		return tok, nil
	case err := <-errCh:
		return nil, err
	case <-time.After(5 * time.Minute):
		server.Shutdown(context.Background())
		return nil, fmt.Errorf("authorization timed out. Please try again")
	}
}

// CalendarService builds an authenticated read-only Google Calendar service.
func CalendarService(ctx context.Context, config *oauth2.Config, store TokenStore) (*calendar.Service, error) {
	tok, err := Token(ctx, config, store)
	if err != nil {
		return nil, err
	}

	client := config.Client(ctx, tok)
	srv, err := calendar.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to create Google Calendar service: %w", err)
	}
	return srv, nil
}
