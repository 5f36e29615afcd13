package share

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psxcreative/engine/internal/catalog"
	"github.com/psxcreative/engine/internal/order"
	"github.com/psxcreative/engine/internal/pricing"
)

func sampleState() State {
	return State{
		Project: order.Project{
			Name:     "Moon Frogs",
			Chain:    "Base",
			Timeline: catalog.TimelineRush,
			Budget:   12000,
			Vision:   "Frogs, but cinematic.",
		},
		Contact: order.Contact{Name: "Ana", Email: "ana@example.com", Telegram: "@ana"},
		Selections: order.Selections{
			Channels: []catalog.ChannelID{"website"},
			Content:  []catalog.ContentID{"launchFilm"},
			Styles:   []catalog.StyleID{"cinematic"},
		},
		Cart: []string{"zealy"},
		Merch: pricing.MerchInput{
			ItemIDs:     []string{"hat"},
			Method:      catalog.MethodBulk,
			Platform:    catalog.PlatformWhop,
			Quantity:    250,
			Margin:      0,
			DesignCount: 0,
		},
	}
}

func TestCodec_RoundTrip(t *testing.T) {
	c := NewCodec([]byte("secret"))

	token, err := c.Encode(sampleState())
	require.NoError(t, err)
	assert.NotContains(t, token, "=")
	assert.NotContains(t, token, "/")

	got, err := c.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, sampleState(), got)
}

func TestCodec_RejectsTampering(t *testing.T) {
	c := NewCodec([]byte("secret"))
	token, err := c.Encode(sampleState())
	require.NoError(t, err)

	payload, sig, _ := strings.Cut(token, ".")
	forged := base64.RawURLEncoding.EncodeToString([]byte(`{"project":{"budget":1}}`))

	_, err = c.Decode(forged + "." + sig)
	assert.ErrorIs(t, err, ErrSignature)

	_, err = NewCodec([]byte("other")).Decode(token)
	assert.ErrorIs(t, err, ErrSignature)

	_, err = c.Decode(payload + "." + strings.Repeat("0", len(sig)))
	assert.ErrorIs(t, err, ErrSignature)
}

func TestCodec_RejectsMalformed(t *testing.T) {
	c := NewCodec([]byte("secret"))

	for _, token := range []string{
		"",
		"no-dot",
		".abcd",
		"a.b.c",
		"payload.not-hex",
		strings.Repeat("a", MaxTokenLength+1),
	} {
		_, err := c.Decode(token)
		assert.ErrorIs(t, err, ErrMalformed, "token %q", token)
	}
}

func TestCodec_RejectsSignedGarbage(t *testing.T) {
	c := NewCodec([]byte("secret"))

	payload := base64.RawURLEncoding.EncodeToString([]byte("not json"))
	_, err := c.Decode(payload + "." + c.sign(payload))
	assert.ErrorIs(t, err, ErrMalformed)

	payload = "!!!"
	_, err = c.Decode(payload + "." + c.sign(payload))
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestCodec_DecodeAppliesDefaults(t *testing.T) {
	c := NewCodec([]byte("secret"))
	payload := base64.RawURLEncoding.EncodeToString([]byte(`{"project":{"name":"Empty"}}`))

	got, err := c.Decode(payload + "." + c.sign(payload))
	require.NoError(t, err)

	assert.Equal(t, "Empty", got.Project.Name)
	assert.Equal(t, 5000.0, got.Project.Budget)
	assert.Equal(t, pricing.MerchInput{
		ItemIDs:     []string{"tee", "hoodie"},
		Method:      catalog.MethodPOD,
		Platform:    catalog.PlatformShopify,
		Quantity:    100,
		Margin:      0.5,
		DesignCount: 3,
	}, got.Merch)
}

func TestCodec_DecodeKeepsExplicitZeroMarginAndDesigns(t *testing.T) {
	c := NewCodec([]byte("secret"))
	payload := base64.RawURLEncoding.EncodeToString([]byte(`{"merch":{"margin":0,"designs":0}}`))

	got, err := c.Decode(payload + "." + c.sign(payload))
	require.NoError(t, err)
	assert.Zero(t, got.Merch.Margin)
	assert.Zero(t, got.Merch.DesignCount)
}

func TestState_Selection(t *testing.T) {
	sel := sampleState().Selection()
	assert.Equal(t, "Base", sel.Chain)
	assert.Equal(t, 12000.0, sel.Budget)
	assert.Equal(t, []catalog.ContentID{"launchFilm"}, sel.Content)
}

func TestRandomSecret(t *testing.T) {
	a, err := RandomSecret()
	require.NoError(t, err)
	b, err := RandomSecret()
	require.NoError(t, err)
	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)
}
