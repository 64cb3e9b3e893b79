// Package webhook verifies incoming webhook signatures.
package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Tolerance is the maximum allowed clock skew between the webhook
// timestamp and the server clock.
const Tolerance = 5 * time.Minute

var (
	// ErrMissingHeaders is returned when a required signature header is absent.
	ErrMissingHeaders = errors.New("webhook: missing signature headers")

	// ErrTimestampTooOld is returned when the webhook timestamp is outside the tolerance window.
	ErrTimestampTooOld = errors.New("webhook: timestamp outside tolerance")

	// ErrNoMatchingSignature is returned when no provided signature matches the payload.
	ErrNoMatchingSignature = errors.New("webhook: no matching signature")
)

// Verifier validates webhook payloads signed with the svix scheme used by
// Resend: HMAC-SHA256 over "{id}.{timestamp}.{payload}" with a base64
// secret carried after the "whsec_" prefix.
type Verifier struct {
	key []byte
	now func() time.Time
}

// NewVerifier creates a Verifier from a signing secret. The "whsec_"
// prefix is optional.
func NewVerifier(secret string) (*Verifier, error) {
	raw := strings.TrimPrefix(secret, "whsec_")
	key, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("webhook: decode secret: %w", err)
	}
	return &Verifier{key: key, now: time.Now}, nil
}

// Verify checks the svix-id / svix-timestamp / svix-signature headers
// against the raw request payload.
func (v *Verifier) Verify(payload []byte, msgID, timestamp, signatures string) error {
	if msgID == "" || timestamp == "" || signatures == "" {
		return ErrMissingHeaders
	}

	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return fmt.Errorf("webhook: parse timestamp: %w", err)
	}
	age := v.now().Sub(time.Unix(ts, 0))
	if age > Tolerance || age < -Tolerance {
		return ErrTimestampTooOld
	}

	mac := hmac.New(sha256.New, v.key)
	fmt.Fprintf(mac, "%s.%s.", msgID, timestamp)
	mac.Write(payload)
	expected := mac.Sum(nil)

	// The header carries space-separated "v1,<base64>" entries; any match accepts.
	for _, part := range strings.Fields(signatures) {
		version, sig, found := strings.Cut(part, ",")
		if !found || version != "v1" {
			continue
		}
		got, err := base64.StdEncoding.DecodeString(sig)
		if err != nil {
			continue
		}
		if hmac.Equal(expected, got) {
			return nil
		}
	}
	return ErrNoMatchingSignature
}
