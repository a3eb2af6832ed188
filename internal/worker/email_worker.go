package worker

// email_worker.go
// Processes notification jobs from QueueEmail: after every stored upload a
// short summary is mailed to the orders inbox.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/baikov/orders-backend/internal/infra"

	"github.com/rs/zerolog/log"
)

// EmailJobPayload is the job envelope sent to QueueEmail.
type EmailJobPayload struct {
	CustomerOrderID string `json:"customer_order_id"`
	CustomerName    string `json:"customer_name"`
	File            string `json:"file"`
}

// EmailWorker sends upload notifications via SMTP.
type EmailWorker struct {
	mailer *infra.Mailer
	to     string
}

// NewEmailWorker creates an EmailWorker delivering to the configured inbox.
func NewEmailWorker(mailer *infra.Mailer, to string) *EmailWorker {
	return &EmailWorker{mailer: mailer, to: to}
}

func (w *EmailWorker) Process(_ context.Context, raw json.RawMessage) error {
	var payload EmailJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("email_worker: invalid payload")
		return nil // malformed payloads are not retryable
	}
	if w.to == "" {
		log.Warn().Msg("email_worker: notify email not configured — skipping")
		return nil
	}

	subject := fmt.Sprintf("New order from %s", payload.CustomerName)
	body := fmt.Sprintf("Order %s from %s has been processed.\nFile: %s\n",
		payload.CustomerOrderID, payload.CustomerName, payload.File)

	if err := w.mailer.Send(w.to, subject, body, ""); err != nil {
		log.Error().Err(err).Str("to", w.to).Msg("email_worker: failed to send notification")
		return err
	}
	log.Info().Str("to", w.to).Str("customer_order", payload.CustomerOrderID).Msg("email_worker: notification sent")
	return nil
}
