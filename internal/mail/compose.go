package mail

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	htmltemplate "html/template"
	"reflect"
	"strconv"
	"strings"
	texttemplate "text/template"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/shopspring/decimal"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/psxcreative/engine/internal/order"
	"github.com/psxcreative/engine/internal/pricing"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

const timestampLayout = "Jan 2, 2006 3:04 PM MST"

var funcs = map[string]any{
	"usd":     pricing.FormatUSD,
	"cents":   formatCents,
	"join":    joinIDs,
	"percent": formatPercent,
}

var (
	textTemplates = texttemplate.Must(texttemplate.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.md.tmpl"))
	htmlTemplates = htmltemplate.Must(htmltemplate.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html.tmpl"))
)

// Addresses are the fixed sender and studio inbox.
type Addresses struct {
	From string
	To   string
}

// Composer renders notification emails. Markdown bodies are sent as text and
// as sanitized HTML.
type Composer struct {
	addr     Addresses
	now      func() time.Time
	markdown goldmark.Markdown
	policy   *bluemonday.Policy
}

// NewComposer returns a Composer. A nil now uses time.Now.
func NewComposer(addr Addresses, now func() time.Time) *Composer {
	if now == nil {
		now = time.Now
	}
	return &Composer{
		addr:     addr,
		now:      now,
		markdown: goldmark.New(goldmark.WithExtensions(extension.GFM)),
		policy:   bluemonday.UGCPolicy(),
	}
}

// CreativeSubmission is the studio notification for a Creative Factory brief,
// carrying the server-side quote.
func (c *Composer) CreativeSubmission(s order.CreativeSubmission, q pricing.Quote, ref string) (Message, error) {
	dump, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return Message{}, fmt.Errorf("marshal submission: %w", err)
	}

	data := struct {
		order.CreativeSubmission
		Quote     pricing.Quote
		Reference string
		Submitted string
		JSON      string
	}{s, q, ref, c.timestamp(), string(dump)}

	subject := "New PSX Creative Factory Submission"
	if name := strings.TrimSpace(s.Project.Name); name != "" {
		subject += ": " + name
	}
	return c.markdownMessage("creative_submission.md.tmpl", data, subject, s.Contact.Email)
}

// StoreOrder is the studio notification for a Bootstrap Store cart.
func (c *Composer) StoreOrder(o order.StoreOrder, cart pricing.StoreCart, ref string) (Message, error) {
	data := struct {
		Order     order.StoreOrder
		Cart      pricing.StoreCart
		Reference string
		Submitted string
	}{o, cart, ref, c.timestamp()}

	return c.markdownMessage("store_order.md.tmpl", data, "New Bootstrap Store Order: "+orDefault(o.Project.Name, "New Order"), "")
}

// MerchCartOrder is the studio notification for a merch store cart.
func (c *Composer) MerchCartOrder(o order.MerchCartOrder, ref string) (Message, error) {
	data := struct {
		Order     order.MerchCartOrder
		Total     decimal.Decimal
		Reference string
		Submitted string
	}{o, o.Total(), ref, c.timestamp()}

	return c.markdownMessage("merch_cart_order.md.tmpl", data, "New Merch Store Order: "+orDefault(o.Project.Name, "New Order"), "")
}

// MerchOrder is the studio notification for a retail merch order.
func (c *Composer) MerchOrder(o order.MerchOrder, r order.Receipt, ref string) (Message, error) {
	data := c.merchData(o, r, ref)
	html, err := c.renderHTML("merch_order.html.tmpl", data)
	if err != nil {
		return Message{}, err
	}
	return Message{
		From:    c.addr.From,
		To:      []string{c.addr.To},
		ReplyTo: strings.TrimSpace(data.Shipping.Email),
		Subject: "New Merch Order from " + data.Shipping.FullName(),
		HTML:    html,
	}, nil
}

// MerchConfirmation is the customer's receipt for a retail merch order.
func (c *Composer) MerchConfirmation(o order.MerchOrder, r order.Receipt, ref string) (Message, error) {
	data := c.merchData(o, r, ref)
	html, err := c.renderHTML("merch_confirmation.html.tmpl", data)
	if err != nil {
		return Message{}, err
	}
	return Message{
		From:    c.addr.From,
		To:      []string{strings.TrimSpace(data.Shipping.Email)},
		Subject: "Your PSX Merch Order Confirmation",
		HTML:    html,
	}, nil
}

type merchData struct {
	Receipt   order.Receipt
	Shipping  *order.ShippingInfo
	Reference string
	Submitted string
}

func (c *Composer) merchData(o order.MerchOrder, r order.Receipt, ref string) merchData {
	shipping := o.Shipping
	if shipping == nil {
		shipping = &order.ShippingInfo{}
	}
	return merchData{Receipt: r, Shipping: shipping, Reference: ref, Submitted: c.timestamp()}
}

func (c *Composer) markdownMessage(name string, data any, subject, replyTo string) (Message, error) {
	var text bytes.Buffer
	if err := textTemplates.ExecuteTemplate(&text, name, data); err != nil {
		return Message{}, fmt.Errorf("render %s: %w", name, err)
	}

	var html bytes.Buffer
	if err := c.markdown.Convert(text.Bytes(), &html); err != nil {
		return Message{}, fmt.Errorf("convert %s to html: %w", name, err)
	}

	if !order.ValidEmail(replyTo) {
		replyTo = ""
	}
	return Message{
		From:    c.addr.From,
		To:      []string{c.addr.To},
		ReplyTo: strings.TrimSpace(replyTo),
		Subject: subject,
		Text:    text.String(),
		HTML:    c.policy.Sanitize(html.String()),
	}, nil
}

func (c *Composer) renderHTML(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := htmlTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}

func (c *Composer) timestamp() string {
	return c.now().UTC().Format(timestampLayout)
}

func formatCents(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

func formatPercent(f float64) string {
	return strconv.FormatFloat(f*100, 'f', -1, 64) + "%"
}

// joinIDs renders a slice of string-kinded ids as a comma list.
func joinIDs(v any) string {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice || rv.Len() == 0 {
		return "N/A"
	}
	parts := make([]string, rv.Len())
	for i := range parts {
		parts[i] = rv.Index(i).String()
	}
	return strings.Join(parts, ", ")
}

func orDefault(s, fallback string) string {
	if s = strings.TrimSpace(s); s != "" {
		return s
	}
	return fallback
}
