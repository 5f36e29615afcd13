package main

import (
	"net/http"

	"github.com/psxcreative/engine/internal/catalog"
	"github.com/psxcreative/engine/internal/pricing"
)

type contentEstimateRequest struct {
	Content  catalog.ContentID   `json:"content"`
	Channels []catalog.ChannelID `json:"channels"`
	Styles   []catalog.StyleID   `json:"styles"`
	Chain    string              `json:"chain"`
}

type contentEstimateResponse struct {
	Content   catalog.ContentID       `json:"content"`
	Price     float64                 `json:"price"`
	Breakdown []pricing.BreakdownLine `json:"breakdown"`
}

type storeTotalRequest struct {
	Items []string `json:"items"`
}

func (s *server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.Catalog().Tables())
}

func (s *server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	var sel pricing.Selection
	if !decodeJSON(w, r, &sel) {
		return
	}
	s.metrics.RecordEstimate("selection")
	writeJSON(w, http.StatusOK, s.engine.Quote(sel))
}

func (s *server) handleContentEstimate(w http.ResponseWriter, r *http.Request) {
	var req contentEstimateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if _, ok := s.engine.Catalog().Content(req.Content); !ok {
		writeError(w, http.StatusBadRequest, "Unknown content type", map[string]string{"content": string(req.Content)})
		return
	}

	s.metrics.RecordEstimate("content")
	writeJSON(w, http.StatusOK, contentEstimateResponse{
		Content:   req.Content,
		Price:     s.engine.PriceContentItem(req.Content, req.Channels, req.Styles, req.Chain),
		Breakdown: s.engine.ContentBreakdown(req.Content, req.Channels, req.Styles, req.Chain),
	})
}

func (s *server) handleMerchEstimate(w http.ResponseWriter, r *http.Request) {
	var in pricing.MerchInput
	if !decodeJSON(w, r, &in) {
		return
	}
	s.metrics.RecordEstimate("merch")
	writeJSON(w, http.StatusOK, s.engine.EstimateMerchEconomics(in))
}

func (s *server) handleStoreTotal(w http.ResponseWriter, r *http.Request) {
	var req storeTotalRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	s.metrics.RecordEstimate("store")
	writeJSON(w, http.StatusOK, s.engine.StoreCartTotal(req.Items))
}
