package slackhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Slack signs requests with a versioned HMAC-SHA256 over the exact raw body.
const (
	signatureHeader = "X-Slack-Signature"
	timestampHeader = "X-Slack-Request-Timestamp"
	signaturePrefix = "v0"

	// FreshnessWindow is the maximum allowed skew between the claimed
	// request timestamp and verification time. Anything staler is treated
	// as a replay.
	FreshnessWindow = 5 * time.Minute
)

// ErrSignatureRejected wraps every verification failure. The gate is
// binary: a request either carries a fresh, matching signature or runs
// nothing downstream.
var ErrSignatureRejected = errors.New("slack signature rejected")

// Verifier authenticates inbound requests against the shared signing
// secret. Safe for concurrent use; read-only after construction.
type Verifier struct {
	secret string
	now    func() time.Time
}

// NewVerifier returns a Verifier for the given signing secret.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: secret, now: time.Now}
}

// Verify checks the signature and timestamp headers against the raw body
// bytes as received. Any missing header, malformed timestamp, stale
// timestamp, or digest mismatch is a rejection.
func (v *Verifier) Verify(header http.Header, body []byte) error {
	ts := strings.TrimSpace(header.Get(timestampHeader))
	sig := strings.TrimSpace(header.Get(signatureHeader))
	if ts == "" || sig == "" {
		return fmt.Errorf("%w: missing headers", ErrSignatureRejected)
	}
	tsNum, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: malformed timestamp", ErrSignatureRejected)
	}
	if delta := v.now().Sub(time.Unix(tsNum, 0)); delta > FreshnessWindow || delta < -FreshnessWindow {
		return fmt.Errorf("%w: timestamp outside freshness window", ErrSignatureRejected)
	}
	expected := Sign(v.secret, ts, body)
	if !hmac.Equal([]byte(expected), []byte(sig)) {
		return fmt.Errorf("%w: signature mismatch", ErrSignatureRejected)
	}
	return nil
}

// Sign computes the v0 signature for a timestamp and raw body.
func Sign(secret, timestamp string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(signaturePrefix + ":" + timestamp + ":"))
	mac.Write(body)
	return signaturePrefix + "=" + hex.EncodeToString(mac.Sum(nil))
}
