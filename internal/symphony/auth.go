package symphony

import (
	"bytes"
	"context"
	"crypto/rsa"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	dErrors "streamaudit/pkg/domain-errors"
)

// sessionTokenTTL is the JWT lifetime the platform accepts for key-pair
// authentication; tokens expiring further out are rejected.
const sessionTokenTTL = 5 * time.Minute

// Authenticator performs the RSA key-pair session handshake: it signs a
// short-lived JWT with the service account's private key and trades it for a
// session token on the session-auth host.
type Authenticator struct {
	authURL  string
	username string
	key      *rsa.PrivateKey
	http     *http.Client
	logger   *slog.Logger
	now      func() time.Time
}

// NewAuthenticator loads the PEM private key at keyPath and prepares the
// handshake against authURL.
func NewAuthenticator(authURL, username, keyPath string, timeout time.Duration, logger *slog.Logger) (*Authenticator, error) {
	pem, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeValidation, "read private key")
	}
	key, err := jwt.ParseRSAPrivateKeyFromPEM(pem)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeValidation, "parse private key")
	}
	return &Authenticator{
		authURL:  authURL,
		username: username,
		key:      key,
		http:     &http.Client{Timeout: timeout},
		logger:   logger,
		now:      time.Now,
	}, nil
}

// Authenticate establishes a session and returns the session token. Any
// failure here is fatal for the run; nothing is paginated without a session.
func (a *Authenticator) Authenticate(ctx context.Context) (string, error) {
	a.logger.Info("authenticating", "username", a.username)

	claims := jwt.MapClaims{
		"sub": a.username,
		"exp": a.now().Add(sessionTokenTTL).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS512, claims).SignedString(a.key)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "sign auth token")
	}

	body, err := json.Marshal(map[string]string{"token": signed})
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "encode auth request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		a.authURL+"/login/pubkey/authenticate", bytes.NewReader(body))
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "build auth request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.http.Do(req)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeUnavailable, "session auth request")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return "", dErrors.Newf(dErrors.CodeUnauthorized, "session auth rejected: %s", resp.Status)
	}
	if resp.StatusCode != http.StatusOK {
		return "", dErrors.Newf(dErrors.CodeUnavailable, "session auth failed: %s", resp.Status)
	}

	var out authResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeUnavailable, "decode auth response")
	}
	if out.Token == "" {
		return "", dErrors.New(dErrors.CodeUnauthorized, "session auth returned no token")
	}

	a.logger.Info("session established")
	return out.Token, nil
}
