package esim

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"math/big"
	"strconv"
	"time"
)

// TSIMConfig holds configuration for the TSIM eSIM provider API
type TSIMConfig struct {
	// Account is the channel account identifier
	Account string
	// Secret is the shared HMAC signing secret
	Secret string
	// BaseURL is the v1 API endpoint (catalog, subscribe, QR)
	BaseURL string
	// BaseURLV2 is the v2 API endpoint (usage, session tokens)
	BaseURLV2 string
	// AccessToken is the static token required by the token-creation call
	AccessToken string
	// Username and Password are the v2 credentials exchanged for session tokens
	Username string
	Password string
	// TimeoutSeconds is the HTTP request timeout
	TimeoutSeconds int
}

// Errors for TSIM configuration
var (
	ErrTSIMConfigMissingAccount = errors.New("tsim: account is required")
	ErrTSIMConfigMissingSecret  = errors.New("tsim: secret is required")
	ErrTSIMConfigMissingBaseURL = errors.New("tsim: base URL is required")
)

// nonceAlphabet is the character set for TSIM-NONCE values
const nonceAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// nonceLength is the generated nonce length (provider accepts 6-32)
const nonceLength = 16

// Validate validates the TSIM configuration
func (c *TSIMConfig) Validate() error {
	if c.Account == "" {
		return ErrTSIMConfigMissingAccount
	}
	if c.Secret == "" {
		return ErrTSIMConfigMissingSecret
	}
	if c.BaseURL == "" {
		return ErrTSIMConfigMissingBaseURL
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
	return nil
}

// SignedHeaders returns the authentication header set for a v1 API request.
// A fresh nonce and the current Unix timestamp are generated per call.
func (c *TSIMConfig) SignedHeaders() (map[string]string, error) {
	nonce, err := generateNonce(nonceLength)
	if err != nil {
		return nil, err
	}
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	return c.signedHeaders(nonce, timestamp), nil
}

// signedHeaders computes the header set for a fixed nonce and timestamp.
// The signature is HMAC-SHA256 over account + nonce + timestamp, hex encoded.
func (c *TSIMConfig) signedHeaders(nonce, timestamp string) map[string]string {
	mac := hmac.New(sha256.New, []byte(c.Secret))
	mac.Write([]byte(c.Account + nonce + timestamp))
	sign := hex.EncodeToString(mac.Sum(nil))

	return map[string]string{
		"TSIM-ACCOUNT":   c.Account,
		"TSIM-NONCE":     nonce,
		"TSIM-TIMESTAMP": timestamp,
		"TSIM-SIGN":      sign,
	}
}

// generateNonce produces a random string from the nonce alphabet
func generateNonce(length int) (string, error) {
	max := big.NewInt(int64(len(nonceAlphabet)))
	buf := make([]byte, length)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = nonceAlphabet[n.Int64()]
	}
	return string(buf), nil
}
