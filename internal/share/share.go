// Package share encodes configurator state into signed, URL-safe tokens so a
// quote can be reopened from a link.
package share

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/psxcreative/engine/internal/catalog"
	"github.com/psxcreative/engine/internal/order"
	"github.com/psxcreative/engine/internal/pricing"
)

// MaxTokenLength bounds the tokens Decode will look at.
const MaxTokenLength = 16 << 10

const (
	defaultBudget   = 5000
	defaultDesigns  = 3
	defaultQuantity = 100
	defaultMargin   = 0.5
)

var (
	// ErrMalformed is returned for tokens that are not payload.signature or
	// whose payload is not valid state.
	ErrMalformed = errors.New("share: malformed token")
	// ErrSignature is returned when the signature does not match.
	ErrSignature = errors.New("share: invalid signature")
)

// State is everything a shared link restores.
type State struct {
	Project    order.Project      `json:"project"`
	Contact    order.Contact      `json:"contact"`
	Selections order.Selections   `json:"selections"`
	Cart       []string           `json:"cart,omitempty"`
	Merch      pricing.MerchInput `json:"merch"`
}

// Selection projects the state onto the pricing engine's input.
func (s State) Selection() pricing.Selection {
	return pricing.Selection{
		Chain:    s.Project.Chain,
		Timeline: s.Project.Timeline,
		Budget:   s.Project.Budget,
		Channels: s.Selections.Channels,
		Content:  s.Selections.Content,
		Styles:   s.Selections.Styles,
	}
}

// Codec signs and verifies tokens with an HMAC-SHA256 secret.
type Codec struct {
	secret []byte
}

// NewCodec returns a Codec for secret. Tokens only verify under the secret
// that produced them.
func NewCodec(secret []byte) *Codec {
	return &Codec{secret: append([]byte(nil), secret...)}
}

// RandomSecret returns a fresh 32-byte secret.
func RandomSecret() ([]byte, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("generate share secret: %w", err)
	}
	return b, nil
}

// Encode serializes and signs s.
func (c *Codec) Encode(s State) (string, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("encode share state: %w", err)
	}
	payload := base64.RawURLEncoding.EncodeToString(raw)
	return payload + "." + c.sign(payload), nil
}

// Decode verifies token and restores the state it carries, filling defaults
// for absent fields.
func (c *Codec) Decode(token string) (State, error) {
	if len(token) > MaxTokenLength {
		return State{}, ErrMalformed
	}
	payload, signature, ok := strings.Cut(token, ".")
	if !ok || payload == "" || strings.Contains(signature, ".") {
		return State{}, ErrMalformed
	}

	provided, err := hex.DecodeString(signature)
	if err != nil {
		return State{}, ErrMalformed
	}
	expected, _ := hex.DecodeString(c.sign(payload))
	if !hmac.Equal(provided, expected) {
		return State{}, ErrSignature
	}

	raw, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return State{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	s := State{Merch: pricing.MerchInput{DesignCount: defaultDesigns, Margin: defaultMargin}}
	if err := json.Unmarshal(raw, &s); err != nil {
		return State{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	applyDefaults(&s)
	return s, nil
}

func (c *Codec) sign(payload string) string {
	mac := hmac.New(sha256.New, c.secret)
	_, _ = mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

func applyDefaults(s *State) {
	if s.Project.Budget == 0 {
		s.Project.Budget = defaultBudget
	}
	if len(s.Merch.ItemIDs) == 0 {
		s.Merch.ItemIDs = []string{"tee", "hoodie"}
	}
	if s.Merch.Method == "" {
		s.Merch.Method = catalog.MethodPOD
	}
	if s.Merch.Platform == "" {
		s.Merch.Platform = catalog.PlatformShopify
	}
	if s.Merch.Quantity == 0 {
		s.Merch.Quantity = defaultQuantity
	}
}
