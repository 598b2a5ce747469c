package symphony

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "streamaudit/pkg/domain-errors"
)

func writeTestKey(t *testing.T) (string, *rsa.PublicKey) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "bot-key.pem")
	block := &pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)}
	require.NoError(t, os.WriteFile(path, pem.EncodeToMemory(block), 0o600))
	return path, &key.PublicKey
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAuthenticate_SignsAndExchangesToken(t *testing.T) {
	keyPath, pub := writeTestKey(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/login/pubkey/authenticate", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		parsed, err := jwt.Parse(body["token"], func(tok *jwt.Token) (any, error) {
			return pub, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodRS512.Alg()}))
		require.NoError(t, err, "token must verify against the bot public key")

		sub, err := parsed.Claims.GetSubject()
		require.NoError(t, err)
		assert.Equal(t, "audit-bot", sub)

		exp, err := parsed.Claims.GetExpirationTime()
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().Add(sessionTokenTTL), exp.Time, time.Minute)

		json.NewEncoder(w).Encode(authResponse{Token: "session-xyz", Name: "sessionToken"})
	}))
	defer srv.Close()

	auth, err := NewAuthenticator(srv.URL, "audit-bot", keyPath, time.Second, discardLogger())
	require.NoError(t, err)

	session, err := auth.Authenticate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "session-xyz", session)
}

func TestAuthenticate_RejectionIsUnauthorized(t *testing.T) {
	keyPath, _ := writeTestKey(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	auth, err := NewAuthenticator(srv.URL, "audit-bot", keyPath, time.Second, discardLogger())
	require.NoError(t, err)

	_, err = auth.Authenticate(context.Background())
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestNewAuthenticator_BadKeyMaterial(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := NewAuthenticator("https://auth", "audit-bot", "/nonexistent.pem", time.Second, discardLogger())
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("not a key", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "junk.pem")
		require.NoError(t, os.WriteFile(path, []byte("not a pem"), 0o600))

		_, err := NewAuthenticator("https://auth", "audit-bot", path, time.Second, discardLogger())
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})
}
