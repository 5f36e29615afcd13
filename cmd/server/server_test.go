package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/psxcreative/engine/internal/catalog"
	"github.com/psxcreative/engine/internal/mail"
	"github.com/psxcreative/engine/internal/metrics"
	"github.com/psxcreative/engine/internal/pricing"
	"github.com/psxcreative/engine/internal/share"
	"github.com/psxcreative/engine/internal/testutil"
)

func newTestServer(t *testing.T, box *testutil.Mailbox) (*server, http.Handler) {
	t.Helper()

	s := &server{
		engine:       pricing.New(catalog.Default()),
		codec:        share.NewCodec([]byte("test-secret")),
		composer:     mail.NewComposer(mail.Addresses{From: "noreply@psx.test", To: "studio@psx.test"}, nil),
		metrics:      metrics.New(),
		log:          zap.NewNop(),
		emailTimeout: time.Second,
		baseURL:      "https://psx.test",
		newRef:       func() string { return "ref-1" },
	}
	if box != nil {
		s.sender = box
	}
	return s, s.routes()
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), "body: %s", rec.Body.String())
	return v
}

func TestHealthz(t *testing.T) {
	_, h := newTestServer(t, nil)
	rec := do(t, h, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestCatalogEndpoint(t *testing.T) {
	_, h := newTestServer(t, nil)
	rec := do(t, h, http.MethodGet, "/api/catalog", "")
	require.Equal(t, http.StatusOK, rec.Code)

	got := decode[catalog.Tables](t, rec)
	assert.Equal(t, len(catalog.DefaultTables().Contents), len(got.Contents))
	assert.Len(t, got.Packages, 3)
}

func TestEstimateEndpoint(t *testing.T) {
	_, h := newTestServer(t, nil)
	rec := do(t, h, http.MethodPost, "/api/estimate", `{
		"content": ["launchFilm"],
		"channels": ["website"],
		"chain": "Base",
		"timeline": "3+ months",
		"budget": 5000
	}`)
	require.Equal(t, http.StatusOK, rec.Code)

	q := decode[pricing.Quote](t, rec)
	assert.Equal(t, 3100.0, q.Total)
	assert.Equal(t, catalog.TierStudio, q.Tier)
	assert.Equal(t, "Studio Package", q.Package.Name)
	require.Len(t, q.Breakdown, 2)
	assert.Equal(t, 3120.0, q.Breakdown[0].Subtotal)
}

func TestEstimateEndpoint_InvalidJSON(t *testing.T) {
	_, h := newTestServer(t, nil)
	rec := do(t, h, http.MethodPost, "/api/estimate", `{"content":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	got := decode[errorResponse](t, rec)
	assert.False(t, got.Success)
	assert.Equal(t, "Invalid JSON body", got.Error)
}

func TestContentEstimateEndpoint(t *testing.T) {
	_, h := newTestServer(t, nil)

	rec := do(t, h, http.MethodPost, "/api/estimate/content", `{"content":"launchFilm","channels":["website"],"chain":"Base"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[contentEstimateResponse](t, rec)
	assert.Equal(t, 3120.0, got.Price)
	assert.NotEmpty(t, got.Breakdown)

	rec = do(t, h, http.MethodPost, "/api/estimate/content", `{"content":"hologram"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMerchEstimateEndpoint(t *testing.T) {
	_, h := newTestServer(t, nil)
	rec := do(t, h, http.MethodPost, "/api/merch/estimate", `{"items":["tee"],"method":"POD","qty":10,"margin":0.5,"designs":2}`)
	require.Equal(t, http.StatusOK, rec.Code)

	got := decode[pricing.MerchEconomics](t, rec)
	assert.Equal(t, 50, got.Units)
	assert.Equal(t, 1500.0, got.Price)
	assert.Equal(t, 100.0, got.GrossProfit)
}

func TestStoreTotalEndpoint(t *testing.T) {
	_, h := newTestServer(t, nil)
	rec := do(t, h, http.MethodPost, "/api/store/total", `{"items":["zealy","site","unknown"]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	got := decode[pricing.StoreCart](t, rec)
	assert.Equal(t, 3700.0, got.Total)
	assert.Len(t, got.Items, 2)
}

func TestShareRoundTrip(t *testing.T) {
	_, h := newTestServer(t, nil)

	rec := do(t, h, http.MethodPost, "/api/share", `{
		"project": {"name": "Moon <Frogs>", "chain": "Base", "timeline": "3+ months", "budget": 5000},
		"selections": {"content": ["launchFilm"], "channels": ["website"], "styles": []},
		"cart": ["zealy"]
	}`)
	require.Equal(t, http.StatusOK, rec.Code)
	created := decode[shareCreateResponse](t, rec)
	assert.Equal(t, "https://psx.test/share/"+created.Token, created.URL)

	rec = do(t, h, http.MethodGet, "/api/share/"+created.Token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[sharedQuote](t, rec)
	assert.Equal(t, "Moon <Frogs>", got.State.Project.Name)
	assert.Equal(t, 3100.0, got.Quote.Total)
	assert.Equal(t, 1500.0, got.Cart.Total)
	assert.Equal(t, 100, got.Merch.Units)

	rec = do(t, h, http.MethodGet, "/share/"+created.Token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))

	doc := testutil.ParseHTML(t, rec.Body.Bytes())
	assert.Equal(t, "Moon <Frogs>", doc.Find("#project").Text())
	assert.Equal(t, "Estimate: $3,100", doc.Find("#estimate").Text())
	assert.Equal(t, 2, doc.Find("#breakdown tbody tr").Length())
	assert.Equal(t, 1, doc.Find("#cart li").Length())
	assert.NotContains(t, rec.Body.String(), "<Frogs>")
}

func TestShareRejectsForeignTokens(t *testing.T) {
	_, h := newTestServer(t, nil)

	token, err := share.NewCodec([]byte("another-secret")).Encode(share.State{})
	require.NoError(t, err)

	rec := do(t, h, http.MethodGet, "/api/share/"+token, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "signature mismatch", decode[errorResponse](t, rec).Details)

	rec = do(t, h, http.MethodGet, "/api/share/garbage", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "malformed token", decode[errorResponse](t, rec).Details)

	rec = do(t, h, http.MethodGet, "/share/"+token, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

const creativeBody = `{
	"project": {"name": "Moon Frogs", "chain": "Solana", "timeline": "1-2 months", "budget": 9000, "vision": "Frogs on the moon"},
	"contact": {"name": "Ana", "email": "ana@example.com", "telegram": "@ana"},
	"selections": {"channels": ["twitter"], "content": ["memes"], "styles": ["schizo"]}
}`

func TestSubmit_CreativeSubmissionIsTheDefaultType(t *testing.T) {
	box := &testutil.Mailbox{}
	_, h := newTestServer(t, box)

	rec := do(t, h, http.MethodPost, "/api/submit", creativeBody)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	got := decode[submitResponse](t, rec)
	assert.True(t, got.Success)
	assert.Equal(t, "Submission received successfully", got.Message)
	assert.Equal(t, "email-1", got.EmailID)
	assert.Equal(t, "ref-1", got.Reference)

	sent := box.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "New PSX Creative Factory Submission: Moon Frogs", sent[0].Subject)
	assert.Equal(t, "ana@example.com", sent[0].ReplyTo)
	assert.Contains(t, sent[0].Text, "ref-1")
}

func TestSubmit_ValidationFailureSendsNothing(t *testing.T) {
	box := &testutil.Mailbox{}
	_, h := newTestServer(t, box)

	rec := do(t, h, http.MethodPost, "/api/submit", `{"type":"creative-factory-submission","project":{"name":"x"}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	got := decode[errorResponse](t, rec)
	assert.False(t, got.Success)
	assert.Equal(t, "Invalid request", got.Error)
	assert.Contains(t, got.Details, "project.chain")
	assert.Empty(t, box.Sent())
}

func TestSubmit_BootstrapStoreOrder(t *testing.T) {
	box := &testutil.Mailbox{}
	_, h := newTestServer(t, box)

	rec := do(t, h, http.MethodPost, "/api/submit", `{
		"type": "bootstrap-store-order",
		"project": {"name": "Moon Frogs"},
		"contact": {"socials": "@moonfrogs"},
		"description": "Quests please",
		"items": ["zealy", "site"]
	}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	sent := box.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "New Bootstrap Store Order: Moon Frogs", sent[0].Subject)
	assert.Contains(t, sent[0].Text, "$3,700")
}

func TestSubmit_MerchStoreOrder(t *testing.T) {
	box := &testutil.Mailbox{}
	_, h := newTestServer(t, box)

	rec := do(t, h, http.MethodPost, "/api/submit", `{
		"type": "merch-store-order",
		"project": {"name": "Moon Frogs"},
		"contact": {"socials": "@moonfrogs"},
		"cart": [{"id": "tee", "title": "Tee", "price": 19.99, "quantity": 3}],
		"metadata": {"designs": 2, "method": "Bulk", "platform": "Whop", "quantity": 300, "margin": 0.5}
	}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	sent := box.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "New Merch Store Order: Moon Frogs", sent[0].Subject)
}

func TestSubmit_UnknownType(t *testing.T) {
	box := &testutil.Mailbox{}
	_, h := newTestServer(t, box)

	rec := do(t, h, http.MethodPost, "/api/submit", `{"type":"raffle"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, box.Sent())
}

func TestSubmit_WithoutSenderIsAConfigurationError(t *testing.T) {
	_, h := newTestServer(t, nil)

	rec := do(t, h, http.MethodPost, "/api/submit", creativeBody)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Server configuration error", decode[errorResponse](t, rec).Error)

	rec = do(t, h, http.MethodPost, "/api/submit-merch-order", `{}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestSubmit_DeliveryFailure(t *testing.T) {
	box := &testutil.Mailbox{Fail: func(mail.Message) error { return errors.New("provider down") }}
	_, h := newTestServer(t, box)

	rec := do(t, h, http.MethodPost, "/api/submit", creativeBody)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	got := decode[errorResponse](t, rec)
	assert.Equal(t, "Failed to send email notification", got.Error)
	assert.Equal(t, "provider down", got.Details)
}

const merchOrderBody = `{
	"items": [
		{"itemId": "hoodie", "size": "L", "quantity": 2},
		{"itemId": "hat", "size": "One Size", "quantity": 1}
	],
	"shipping": {
		"firstName": "Ana", "lastName": "Lima", "email": "ana@example.com",
		"address": "1 Main St", "city": "Austin", "state": "TX", "zipCode": "78701", "country": "United States"
	},
	"total": 1.00
}`

func TestSubmitMerchOrder_SendsNoticeAndConfirmation(t *testing.T) {
	box := &testutil.Mailbox{}
	_, h := newTestServer(t, box)

	rec := do(t, h, http.MethodPost, "/api/submit-merch-order", merchOrderBody)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		OrderID string `json:"orderId"`
		Receipt struct {
			Total json.Number `json:"total"`
		} `json:"receipt"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.True(t, got.Success)
	assert.Equal(t, "Order submitted successfully", got.Message)
	assert.Equal(t, "email-1", got.OrderID)
	assert.Equal(t, "220.56", got.Receipt.Total.String())

	sent := box.Sent()
	require.Len(t, sent, 2)
	assert.Equal(t, "New Merch Order from Ana Lima", sent[0].Subject)
	assert.Equal(t, []string{"studio@psx.test"}, sent[0].To)
	assert.Equal(t, []string{"ana@example.com"}, sent[1].To)

	doc := testutil.ParseHTML(t, []byte(sent[1].HTML))
	assert.Equal(t, "Order Total: $220.56", doc.Find("#total").Text())
}

func TestSubmitMerchOrder_ConfirmationFailureIsNotFatal(t *testing.T) {
	box := &testutil.Mailbox{Fail: func(m mail.Message) error {
		if m.Subject == "Your PSX Merch Order Confirmation" {
			return errors.New("bounced")
		}
		return nil
	}}
	_, h := newTestServer(t, box)

	rec := do(t, h, http.MethodPost, "/api/submit-merch-order", merchOrderBody)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, box.Sent(), 1)
}

func TestSubmitMerchOrder_Validation(t *testing.T) {
	box := &testutil.Mailbox{}
	_, h := newTestServer(t, box)

	rec := do(t, h, http.MethodPost, "/api/submit-merch-order", `{"items":[],"shipping":{"firstName":"Ana","lastName":"Lima","email":"ana@example.com","address":"1 Main St","city":"Austin","zip":"78701","country":"US"}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "No items in order", decode[errorResponse](t, rec).Error)

	rec = do(t, h, http.MethodPost, "/api/submit-merch-order", `{"items":[{"itemId":"hoodie","size":"L","quantity":1}]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Shipping information is required", decode[errorResponse](t, rec).Error)

	assert.Empty(t, box.Sent())
}

func TestRequestBodyLimit(t *testing.T) {
	_, h := newTestServer(t, nil)

	body := `{"items":["` + strings.Repeat("a", maxBodyBytes) + `"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/store/total", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestMetricsEndpointRecordsRequests(t *testing.T) {
	_, h := newTestServer(t, nil)

	do(t, h, http.MethodPost, "/api/store/total", `{"items":["zealy"]}`)
	rec := do(t, h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `psx_estimates_total{kind="store"} 1`)
	assert.Contains(t, body, `psx_http_request_duration_seconds_count{code="200",route="/api/store/total"} 1`)
}
