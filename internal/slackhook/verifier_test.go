package slackhook

import (
	"net/http"
	"strconv"
	"testing"
	"time"
)

func signedHeaders(secret string, ts time.Time, body []byte) http.Header {
	h := http.Header{}
	stamp := strconv.FormatInt(ts.Unix(), 10)
	h.Set(timestampHeader, stamp)
	h.Set(signatureHeader, Sign(secret, stamp, body))
	return h
}

func fixedVerifier(secret string, now time.Time) *Verifier {
	v := NewVerifier(secret)
	v.now = func() time.Time { return now }
	return v
}

func TestVerifyRoundTrip(t *testing.T) {
	now := time.Now()
	body := []byte(`{"type":"event_callback"}`)
	v := fixedVerifier("secret-a", now)

	if err := v.Verify(signedHeaders("secret-a", now, body), body); err != nil {
		t.Fatalf("valid signature rejected: %v", err)
	}
	if err := v.Verify(signedHeaders("secret-b", now, body), body); err == nil {
		t.Fatal("signature from a different secret accepted")
	}
}

func TestVerifyTamperedBody(t *testing.T) {
	now := time.Now()
	body := []byte(`{"type":"event_callback"}`)
	h := signedHeaders("secret-a", now, body)

	err := fixedVerifier("secret-a", now).Verify(h, []byte(`{"type":"tampered"}`))
	if err == nil {
		t.Fatal("tampered body accepted")
	}
}

func TestVerifyMissingHeaders(t *testing.T) {
	v := fixedVerifier("secret-a", time.Now())
	if err := v.Verify(http.Header{}, []byte("x")); err == nil {
		t.Fatal("missing headers accepted")
	}
	h := http.Header{}
	h.Set(timestampHeader, "1700000000")
	if err := v.Verify(h, []byte("x")); err == nil {
		t.Fatal("missing signature accepted")
	}
}

func TestVerifyMalformedTimestamp(t *testing.T) {
	now := time.Now()
	body := []byte("x")
	h := signedHeaders("secret-a", now, body)
	h.Set(timestampHeader, "yesterday")

	if err := fixedVerifier("secret-a", now).Verify(h, body); err == nil {
		t.Fatal("malformed timestamp accepted")
	}
}

func TestVerifyFreshnessWindow(t *testing.T) {
	now := time.Now()
	body := []byte("x")
	v := fixedVerifier("secret-a", now)

	stale := signedHeaders("secret-a", now.Add(-FreshnessWindow-time.Minute), body)
	if err := v.Verify(stale, body); err == nil {
		t.Fatal("stale timestamp accepted")
	}
	future := signedHeaders("secret-a", now.Add(FreshnessWindow+time.Minute), body)
	if err := v.Verify(future, body); err == nil {
		t.Fatal("future timestamp accepted")
	}
	edge := signedHeaders("secret-a", now.Add(-FreshnessWindow+time.Minute), body)
	if err := v.Verify(edge, body); err != nil {
		t.Fatalf("in-window timestamp rejected: %v", err)
	}
}

func TestVerifyReplayAfterWindow(t *testing.T) {
	sent := time.Now()
	body := []byte(`{"type":"event_callback"}`)
	h := signedHeaders("secret-a", sent, body)

	// The identical signed request, replayed once the window has elapsed,
	// must be rejected even though the payload is unchanged.
	later := fixedVerifier("secret-a", sent.Add(FreshnessWindow+time.Second))
	if err := later.Verify(h, body); err == nil {
		t.Fatal("replayed request accepted after freshness window")
	}
}
