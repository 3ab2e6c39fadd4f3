package cache

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

const (
	// KeyPrefix namespaces every cache entry in the backing store, so that
	// Clear can remove app entries without touching unrelated data.
	KeyPrefix = "fitlife_secure_"

	// salt is the plaintext marker prepended before encoding. A decoded
	// value missing this marker is treated as tampered/foreign and dropped.
	// This is obfuscation to deter casual inspection, not encryption.
	salt = "fitlife_salt_v1_"
)

var errInvalidMarker = errors.New("missing or invalid salt marker")

// envelope carries the cached payload together with its optional expiry.
type envelope struct {
	Payload   json.RawMessage `json:"payload"`
	ExpiresAt int64           `json:"expiresAt,omitempty"` // unix millis, 0 means no expiry
}

// encode obfuscates a value: JSON -> salt marker -> percent-encoding ->
// base64. Percent-encoding happens before the base64 step so that
// multi-byte unicode content round-trips losslessly.
func encode(value any, expiresAt int64) (string, error) {
	payload, err := json.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("marshal payload: %w", err)
	}

	envBytes, err := json.Marshal(envelope{
		Payload:   payload,
		ExpiresAt: expiresAt,
	})
	if err != nil {
		return "", fmt.Errorf("marshal envelope: %w", err)
	}

	escaped := url.QueryEscape(salt + string(envBytes))
	return base64.StdEncoding.EncodeToString([]byte(escaped)), nil
}

// decode reverses encode. Any malformed input, including a missing salt
// marker, yields an error which callers treat as a cache miss.
func decode(raw string) (json.RawMessage, int64, error) {
	escaped, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, 0, fmt.Errorf("base64 decode: %w", err)
	}

	salted, err := url.QueryUnescape(string(escaped))
	if err != nil {
		return nil, 0, fmt.Errorf("unescape: %w", err)
	}

	if !strings.HasPrefix(salted, salt) {
		return nil, 0, errInvalidMarker
	}

	var env envelope
	if err := json.Unmarshal([]byte(salted[len(salt):]), &env); err != nil {
		return nil, 0, fmt.Errorf("unmarshal envelope: %w", err)
	}

	return env.Payload, env.ExpiresAt, nil
}
