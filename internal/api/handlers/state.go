package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/syneepse/ResumeFix/internal/auth"
	"github.com/syneepse/ResumeFix/internal/utils"
)

var ErrInvalidState = errors.New("invalid oauth state")

type statePayload struct {
	Nonce   string            `json:"n"`
	Expires int64             `json:"exp"`
	Data    map[string]string `json:"d,omitempty"`
}

// StateSigner produces OAuth state values that are signed and expire.
type StateSigner struct {
	key []byte
	ttl time.Duration
}

func NewStateSigner(secret string, ttl time.Duration) (*StateSigner, error) {
	key, err := auth.DeriveKey(secret, "oauth-state")
	if err != nil {
		return nil, fmt.Errorf("failed to derive state key: %w", err)
	}
	return &StateSigner{key: key, ttl: ttl}, nil
}

// Generate returns payload.signature, both base64url.
func (s *StateSigner) Generate(data map[string]string) (string, error) {
	nonce, err := utils.RandomToken(16)
	if err != nil {
		return "", err
	}

	payloadBytes, err := json.Marshal(statePayload{
		Nonce:   nonce,
		Expires: time.Now().Add(s.ttl).Unix(),
		Data:    data,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal state data: %w", err)
	}
	payloadPart := base64.RawURLEncoding.EncodeToString(payloadBytes)

	return payloadPart + "." + s.sign(payloadPart), nil
}

// Decode verifies the signature and expiry and returns the metadata.
func (s *StateSigner) Decode(state string) (map[string]string, error) {
	payloadPart, sig, ok := strings.Cut(state, ".")
	if !ok || !hmac.Equal([]byte(sig), []byte(s.sign(payloadPart))) {
		return nil, ErrInvalidState
	}

	payloadBytes, err := base64.RawURLEncoding.DecodeString(payloadPart)
	if err != nil {
		return nil, ErrInvalidState
	}

	var payload statePayload
	if err := json.Unmarshal(payloadBytes, &payload); err != nil {
		return nil, ErrInvalidState
	}
	if time.Now().Unix() > payload.Expires {
		return nil, fmt.Errorf("%w: expired", ErrInvalidState)
	}
	if payload.Data == nil {
		payload.Data = map[string]string{}
	}
	return payload.Data, nil
}

func (s *StateSigner) sign(payloadPart string) string {
	mac := hmac.New(sha256.New, s.key)
	mac.Write([]byte(payloadPart))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
