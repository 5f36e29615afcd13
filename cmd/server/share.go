package main

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/psxcreative/engine/internal/pricing"
	"github.com/psxcreative/engine/internal/share"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = template.Must(template.New("").Funcs(template.FuncMap{
	"usd": pricing.FormatUSD,
}).ParseFS(templateFS, "templates/*.html"))

type shareCreateResponse struct {
	Token string `json:"token"`
	URL   string `json:"url"`
}

type sharedQuote struct {
	State share.State            `json:"state"`
	Quote pricing.Quote          `json:"quote"`
	Cart  pricing.StoreCart      `json:"cart"`
	Merch pricing.MerchEconomics `json:"merch"`
}

func (s *server) handleShareCreate(w http.ResponseWriter, r *http.Request) {
	var st share.State
	if !decodeJSON(w, r, &st) {
		return
	}

	token, err := s.codec.Encode(st)
	if err != nil {
		s.log.Error("encode share token", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal server error", nil)
		return
	}
	writeJSON(w, http.StatusOK, shareCreateResponse{Token: token, URL: s.baseURL + "/share/" + token})
}

func (s *server) handleShareGet(w http.ResponseWriter, r *http.Request) {
	q, ok := s.resolveShare(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, q)
}

func (s *server) handleSharePage(w http.ResponseWriter, r *http.Request) {
	q, err := s.decodeShare(chi.URLParam(r, "token"))
	if err != nil {
		http.Error(w, "invalid share link", http.StatusBadRequest)
		return
	}

	var buf bytes.Buffer
	if err := pageTemplates.ExecuteTemplate(&buf, "share.html", q); err != nil {
		s.log.Error("render share page", zap.Error(err))
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (s *server) resolveShare(w http.ResponseWriter, r *http.Request) (sharedQuote, bool) {
	q, err := s.decodeShare(chi.URLParam(r, "token"))
	switch {
	case errors.Is(err, share.ErrSignature):
		writeError(w, http.StatusBadRequest, "Invalid share link", "signature mismatch")
		return sharedQuote{}, false
	case err != nil:
		writeError(w, http.StatusBadRequest, "Invalid share link", "malformed token")
		return sharedQuote{}, false
	}
	return q, true
}

func (s *server) decodeShare(token string) (sharedQuote, error) {
	st, err := s.codec.Decode(token)
	if err != nil {
		return sharedQuote{}, err
	}
	s.metrics.RecordEstimate("share")
	return sharedQuote{
		State: st,
		Quote: s.engine.Quote(st.Selection()),
		Cart:  s.engine.StoreCartTotal(st.Cart),
		Merch: s.engine.EstimateMerchEconomics(st.Merch),
	}, nil
}
