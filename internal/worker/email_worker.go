package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/OKANLA95/Keziah-Shop/internal/infra"

	"github.com/rs/zerolog/log"
)

// EmailPayload describes one outgoing message.
type EmailPayload struct {
	To             string `json:"to"`
	Subject        string `json:"subject"`
	Body           string `json:"body"`
	AttachmentPath string `json:"attachment_path,omitempty"`
}

// EmailWorker sends queued emails through the configured SMTP mailer.
type EmailWorker struct {
	mailer *infra.Mailer
}

func NewEmailWorker(mailer *infra.Mailer) *EmailWorker {
	return &EmailWorker{mailer: mailer}
}

func (w *EmailWorker) Handle(_ context.Context, payload json.RawMessage) error {
	var p EmailPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return fmt.Errorf("email worker: decode payload: %w", err)
	}
	if err := w.mailer.Send(p.To, p.Subject, p.Body, p.AttachmentPath); err != nil {
		return fmt.Errorf("email worker: send to %s: %w", p.To, err)
	}
	log.Info().Str("to", p.To).Str("subject", p.Subject).Msg("email sent")
	return nil
}
