package main

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/psxcreative/engine/internal/mail"
	"github.com/psxcreative/engine/internal/order"
)

type submitResponse struct {
	Success   bool           `json:"success"`
	Message   string         `json:"message"`
	EmailID   string         `json:"emailId,omitempty"`
	OrderID   string         `json:"orderId,omitempty"`
	Reference string         `json:"reference"`
	Receipt   *order.Receipt `json:"receipt,omitempty"`
}

type submitEnvelope struct {
	Type string `json:"type"`
}

// handleSubmit accepts the three configurator intake forms and sends one
// studio notification for each. The payload's type field selects the form.
func (s *server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if !s.requireSender(w) {
		return
	}

	body, err := readBody(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	var env submitEnvelope
	if !unmarshalBody(w, body, &env) {
		return
	}
	kind := env.Type
	if kind == "" {
		kind = order.TypeCreativeSubmission
	}

	ref := s.newRef()
	var (
		msg      mail.Message
		buildErr error
	)
	switch kind {
	case order.TypeCreativeSubmission:
		var sub order.CreativeSubmission
		if !unmarshalBody(w, body, &sub) {
			return
		}
		if err := sub.Validate(s.engine.Catalog()); err != nil {
			s.metrics.RecordSubmission(kind, "invalid")
			writeValidation(w, err)
			return
		}
		msg, buildErr = s.composer.CreativeSubmission(sub, s.engine.Quote(sub.Selection()), ref)

	case order.TypeBootstrapStore:
		var o order.StoreOrder
		if !unmarshalBody(w, body, &o) {
			return
		}
		if err := o.Validate(s.engine.Catalog()); err != nil {
			s.metrics.RecordSubmission(kind, "invalid")
			writeValidation(w, err)
			return
		}
		msg, buildErr = s.composer.StoreOrder(o, s.engine.StoreCartTotal(o.Items), ref)

	case order.TypeMerchStore:
		var o order.MerchCartOrder
		if !unmarshalBody(w, body, &o) {
			return
		}
		if err := o.Validate(); err != nil {
			s.metrics.RecordSubmission(kind, "invalid")
			writeValidation(w, err)
			return
		}
		msg, buildErr = s.composer.MerchCartOrder(o, ref)

	default:
		writeError(w, http.StatusBadRequest, "Unknown submission type", map[string]string{"type": kind})
		return
	}

	if buildErr != nil {
		s.log.Error("compose submission email", zap.String("type", kind), zap.String("reference", ref), zap.Error(buildErr))
		s.metrics.RecordSubmission(kind, "error")
		writeError(w, http.StatusInternalServerError, "Internal server error", nil)
		return
	}

	id, err := s.send(r.Context(), kind, msg)
	if err != nil {
		s.log.Error("send submission email", zap.String("type", kind), zap.String("reference", ref), zap.Error(err))
		s.metrics.RecordSubmission(kind, "error")
		writeError(w, http.StatusInternalServerError, "Failed to send email notification", err.Error())
		return
	}

	s.log.Info("submission received", zap.String("type", kind), zap.String("reference", ref), zap.String("email_id", id))
	s.metrics.RecordSubmission(kind, "ok")
	writeJSON(w, http.StatusOK, submitResponse{
		Success:   true,
		Message:   "Submission received successfully",
		EmailID:   id,
		Reference: ref,
	})
}

const kindMerchOrder = "merch-order"

// handleSubmitMerchOrder prices a retail merch order from the catalog, notifies
// the studio and sends the customer a confirmation. A failed confirmation does
// not fail the order.
func (s *server) handleSubmitMerchOrder(w http.ResponseWriter, r *http.Request) {
	if !s.requireSender(w) {
		return
	}

	var o order.MerchOrder
	if !decodeJSON(w, r, &o) {
		return
	}
	receipt, err := o.Price(s.engine.Catalog())
	if err != nil {
		s.metrics.RecordSubmission(kindMerchOrder, "invalid")
		writeValidation(w, err)
		return
	}

	ref := s.newRef()
	log := s.log.With(zap.String("type", kindMerchOrder), zap.String("reference", ref))

	notice, err := s.composer.MerchOrder(o, receipt, ref)
	if err != nil {
		log.Error("compose merch order email", zap.Error(err))
		s.metrics.RecordSubmission(kindMerchOrder, "error")
		writeError(w, http.StatusInternalServerError, "Failed to process order", nil)
		return
	}
	id, err := s.send(r.Context(), kindMerchOrder, notice)
	if err != nil {
		log.Error("send merch order email", zap.Error(err))
		s.metrics.RecordSubmission(kindMerchOrder, "error")
		writeError(w, http.StatusInternalServerError, "Failed to send order email", err.Error())
		return
	}

	confirmation, err := s.composer.MerchConfirmation(o, receipt, ref)
	if err == nil {
		_, err = s.send(r.Context(), "merch-confirmation", confirmation)
	}
	if err != nil {
		log.Warn("order processed but confirmation email failed", zap.String("order_id", id), zap.Error(err))
	}

	log.Info("merch order received", zap.String("order_id", id), zap.String("total", receipt.Total.StringFixed(2)))
	s.metrics.RecordSubmission(kindMerchOrder, "ok")
	writeJSON(w, http.StatusOK, submitResponse{
		Success:   true,
		Message:   "Order submitted successfully",
		OrderID:   id,
		Reference: ref,
		Receipt:   &receipt,
	})
}

func (s *server) requireSender(w http.ResponseWriter) bool {
	if s.sender != nil {
		return true
	}
	s.log.Error("email delivery is not configured")
	writeError(w, http.StatusInternalServerError, "Server configuration error", nil)
	return false
}

// send makes one delivery attempt bounded by the email timeout.
func (s *server) send(ctx context.Context, kind string, m mail.Message) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.emailTimeout)
	defer cancel()

	id, err := s.sender.Send(ctx, m)
	if err != nil {
		s.metrics.RecordEmail(kind, "error")
		return "", err
	}
	s.metrics.RecordEmail(kind, "ok")
	return id, nil
}
