package simplefin

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Veraticus/finpilot/internal/common"
)

// AuthState is the saved result of claiming a setup token.
type AuthState struct {
	ClaimedAt  time.Time `json:"claimed_at"`
	AccessURL  string    `json:"access_url"`
	ClaimToken string    `json:"claim_token_hint"`
}

// LoadOrClaim returns the access URL saved in stateFile, or claims token and
// saves the result there.
func LoadOrClaim(ctx context.Context, token, stateFile string) (*AuthState, error) {
	auth, err := LoadAuthState(stateFile)
	if err == nil && auth.AccessURL != "" {
		slog.Debug("Using saved SimpleFIN access URL",
			"claimed_at", auth.ClaimedAt.Format("2006-01-02"),
			"state_file", stateFile)
		return auth, nil
	}
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("Ignoring unreadable SimpleFIN state", "file", stateFile, "error", err)
	}

	if strings.TrimSpace(token) == "" {
		return nil, fmt.Errorf("%w: SimpleFIN setup token", common.ErrMissingConfig)
	}

	accessURL, err := Claim(ctx, token, &http.Client{Timeout: defaultTimeout})
	if err != nil {
		return nil, err
	}

	auth = &AuthState{
		AccessURL:  accessURL,
		ClaimedAt:  time.Now(),
		ClaimToken: tokenHint(token),
	}
	if err := SaveAuthState(stateFile, auth); err != nil {
		return nil, fmt.Errorf("failed to save auth state: %w", err)
	}

	slog.Info("Claimed SimpleFIN access URL", "state_file", stateFile)
	return auth, nil
}

// Claim exchanges a base64 setup token for an access URL. Tokens are single
// use.
func Claim(ctx context.Context, token string, httpClient *http.Client) (string, error) {
	token = strings.TrimSpace(token)
	decoded, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		decoded, err = base64.StdEncoding.DecodeString(token)
		if err != nil {
			return "", fmt.Errorf("failed to decode SimpleFIN token: %w", err)
		}
	}

	claimURL := string(decoded)
	if err := validateURL(claimURL); err != nil {
		return "", fmt.Errorf("decoded token is not a valid URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, claimURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create claim request: %w", err)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", common.NewRemoteError("claim SimpleFIN token", 0, "", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return "", fmt.Errorf("failed to read access URL: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", common.NewRemoteError("claim SimpleFIN token", resp.StatusCode,
			fmt.Sprintf("failed to claim SimpleFIN access: %d - %s", resp.StatusCode, strings.TrimSpace(string(body))), nil)
	}

	accessURL := strings.TrimSpace(string(body))
	if err := validateURL(accessURL); err != nil {
		return "", fmt.Errorf("invalid access URL received: %w", err)
	}
	return accessURL, nil
}

// LoadAuthState reads a state file written by SaveAuthState.
func LoadAuthState(path string) (*AuthState, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path under the config dir
	if err != nil {
		return nil, err
	}
	var auth AuthState
	if err := json.Unmarshal(data, &auth); err != nil {
		return nil, fmt.Errorf("failed to decode auth state: %w", err)
	}
	return &auth, nil
}

// SaveAuthState writes auth with owner-only permissions. The access URL
// embeds credentials.
func SaveAuthState(path string, auth *AuthState) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	data, err := json.MarshalIndent(auth, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

func tokenHint(token string) string {
	if len(token) > 16 {
		return token[:8] + "..." + token[len(token)-8:]
	}
	return "short_token"
}
