package assistant

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Signer authenticates proposed actions across the propose/confirm round
// trip. The pending action lives only in the client between the two calls,
// so a signature lets the server verify the client echoed the proposal
// unmodified. A nil Signer disables signing.
type Signer struct {
	key []byte
}

// NewSigner creates a signer from the configured key. An empty key returns
// nil, which disables signing.
func NewSigner(key string) *Signer {
	if key == "" {
		return nil
	}
	return &Signer{key: []byte(key)}
}

// canonical produces a stable byte form of an action. encoding/json sorts
// map keys, so equal argument maps always canonicalize identically.
func canonical(action Action) []byte {
	args, err := json.Marshal(action.Arguments)
	if err != nil {
		args = []byte("{}")
	}
	return append(append([]byte(action.Name), '\n'), args...)
}

// Sign returns the hex HMAC-SHA256 of the action's canonical form
func (s *Signer) Sign(action Action) string {
	mac := hmac.New(sha256.New, s.key)
	mac.Write(canonical(action))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify reports whether the signature matches the action
func (s *Signer) Verify(action Action, signature string) bool {
	expected, err := hex.DecodeString(s.Sign(action))
	if err != nil {
		return false
	}
	got, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}
	return hmac.Equal(expected, got)
}
