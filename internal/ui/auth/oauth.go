// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package authview provides the sign-in and sign-up view for the TUI.
package authview

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/exec"
	"runtime"
	"strconv"
	"time"

	"github.com/jeranaias/pdfchat-tui/internal/auth"
)

// oauthTimeout bounds the whole browser round trip.
const oauthTimeout = 3 * time.Minute

// callbackPage converts the token fragment into a query the local
// server can read. The provider returns tokens in the URL fragment,
// which never reaches the server on its own.
const callbackPage = `<!DOCTYPE html>
<html><head><title>pdfchat</title></head><body>
<p>Completing sign-in&hellip;</p>
<script>
  var h = window.location.hash;
  if (h && h.length > 1) {
    window.location.replace("/token?" + h.substring(1));
  } else {
    document.body.innerHTML = "<p>Sign-in failed: no tokens in redirect.</p>";
  }
</script>
</body></html>`

const donePage = `<!DOCTYPE html>
<html><head><title>pdfchat</title></head><body>
<p>Signed in. You can close this tab and return to the terminal.</p>
</body></html>`

// oauthGrant carries the tokens delivered by the redirect.
type oauthGrant struct {
	accessToken  string
	refreshToken string
	expiresIn    int
}

// runOAuthFlow opens the provider-hosted consent page in the browser and
// waits for the redirect to deliver tokens to a localhost listener.
func runOAuthFlow(ctx context.Context, provider auth.Provider, oauthProvider string, port int) (*auth.Session, error) {
	listener, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", port))
	if err != nil {
		return nil, fmt.Errorf("failed to open callback listener on port %d: %w", port, err)
	}
	defer listener.Close()

	redirectTo := fmt.Sprintf("http://localhost:%d/callback", port)
	authorizeURL, err := provider.SignInWithOAuth(oauthProvider, redirectTo)
	if err != nil {
		return nil, err
	}

	grants := make(chan oauthGrant, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, callbackPage)
	})
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		grant := oauthGrant{
			accessToken:  q.Get("access_token"),
			refreshToken: q.Get("refresh_token"),
		}
		grant.expiresIn, _ = strconv.Atoi(q.Get("expires_in"))

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, donePage)

		select {
		case grants <- grant:
		default:
		}
	})

	srv := &http.Server{Handler: mux}
	go srv.Serve(listener)
	defer srv.Close()

	if err := openBrowser(authorizeURL); err != nil {
		return nil, fmt.Errorf("failed to open browser: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, oauthTimeout)
	defer cancel()

	select {
	case <-ctx.Done():
		return nil, errors.New("sign-in timed out waiting for the browser")
	case grant := <-grants:
		if grant.accessToken == "" {
			return nil, errors.New("sign-in was rejected by the provider")
		}
		return sessionFromGrant(ctx, provider, grant)
	}
}

// sessionFromGrant resolves the granted tokens into a full session with
// the account attached.
func sessionFromGrant(ctx context.Context, provider auth.Provider, grant oauthGrant) (*auth.Session, error) {
	sess := &auth.Session{
		AccessToken:  grant.accessToken,
		RefreshToken: grant.refreshToken,
		TokenType:    "bearer",
	}
	if grant.expiresIn > 0 {
		sess.ExpiresAt = time.Now().Add(time.Duration(grant.expiresIn) * time.Second)
	}

	user, err := provider.User(ctx, grant.accessToken)
	if err != nil {
		return nil, err
	}
	sess.User = *user
	return sess, nil
}

// openBrowser launches the platform's default browser.
func openBrowser(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return exec.Command("xdg-open", url).Start()
	}
}
