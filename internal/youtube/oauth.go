package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

var oauthScopes = []string{
	"https://www.googleapis.com/auth/youtube.readonly",
	"https://www.googleapis.com/auth/yt-analytics.readonly",
}

// oauthClient builds an authorized HTTP client from the on-disk client
// secret and token files. The token must have been provisioned out of band;
// a server cannot drive the interactive consent flow.
func oauthClient(ctx context.Context, secretFile, tokenFile string, log zerolog.Logger) (*oauth2.Config, oauth2.TokenSource, error) {
	secret, err := os.ReadFile(secretFile)
	if err != nil {
		return nil, nil, fmt.Errorf("read client secret: %w", err)
	}

	cfg, err := google.ConfigFromJSON(secret, oauthScopes...)
	if err != nil {
		return nil, nil, fmt.Errorf("parse client secret: %w", err)
	}

	token, err := tokenFromFile(tokenFile)
	if err != nil {
		return nil, nil, fmt.Errorf("load oauth token from %s: %w", tokenFile, err)
	}

	source := &tokenSaver{
		config:    cfg,
		token:     token,
		tokenFile: tokenFile,
		log:       log.With().Str("component", "oauth").Logger(),
	}

	return cfg, source, nil
}

// tokenSaver is an oauth2.TokenSource that persists refreshed tokens so a
// refresh survives process restarts.
type tokenSaver struct {
	config    *oauth2.Config
	token     *oauth2.Token
	tokenFile string
	log       zerolog.Logger
	mu        sync.Mutex
}

func (ts *tokenSaver) Token() (*oauth2.Token, error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	fresh, err := ts.config.TokenSource(context.Background(), ts.token).Token()
	if err != nil {
		return nil, err
	}

	if fresh.AccessToken != ts.token.AccessToken {
		ts.token = fresh

		if err := saveToken(ts.tokenFile, fresh); err != nil {
			ts.log.Warn().Err(err).Msg("failed to persist refreshed token")
		} else {
			ts.log.Info().Time("expiry", fresh.Expiry).Msg("refreshed oauth token")
		}
	}

	return fresh, nil
}

func tokenFromFile(path string) (*oauth2.Token, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	token := &oauth2.Token{}
	if err := json.Unmarshal(data, token); err != nil {
		return nil, err
	}

	return token, nil
}

func saveToken(path string, token *oauth2.Token) error {
	data, err := json.Marshal(token)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o600)
}
