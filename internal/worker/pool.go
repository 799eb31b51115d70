package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	QueueInvoicePDF = "jobs:invoice_pdf"
	QueueEmail      = "jobs:email"

	maxAttempts = 3
)

// Job is the generic envelope for all async tasks.
type Job struct {
	Type     string          `json:"type"`
	Payload  json.RawMessage `json:"payload"`
	Attempts int             `json:"attempts"`
}

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EnqueueInvoicePDF pushes an invoice rendering job to Redis.
func (d *Dispatcher) EnqueueInvoicePDF(ctx context.Context, payload any) error {
	return d.enqueue(ctx, QueueInvoicePDF, "invoice_pdf", payload, 0)
}

// EnqueueEmail pushes an email job to Redis.
func (d *Dispatcher) EnqueueEmail(ctx context.Context, payload any) error {
	return d.enqueue(ctx, QueueEmail, "email", payload, 0)
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload any, attempts int) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	job := Job{Type: jobType, Payload: data, Attempts: attempts}
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, queue, encoded).Err()
}

// Handlers holds the concrete workers, wired at the composition root so the
// pool has full access to all infrastructure dependencies.
type Handlers struct {
	InvoicePDF *InvoicePDFWorker
	Email      *EmailWorker
}

// StartPool launches numWorkers goroutines consuming both queues.
// Each goroutine blocks on BRPOP, so an idle pool costs no CPU.
func StartPool(ctx context.Context, rdb *redis.Client, d *Dispatcher, h *Handlers, numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, rdb, d, h, i)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func runWorker(ctx context.Context, rdb *redis.Client, d *Dispatcher, h *Handlers, id int) {
	queues := []string{QueueInvoicePDF, QueueEmail}
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop: waits up to 5s then loops to check ctx
			result, err := rdb.BRPop(ctx, 5*time.Second, queues...).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			if len(result) < 2 {
				continue
			}
			processJob(ctx, rdb, d, h, result[0], result[1])
		}
	}
}

func processJob(ctx context.Context, rdb *redis.Client, d *Dispatcher, h *Handlers, queue, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("failed to unmarshal job")
		return
	}

	var err error
	switch queue {
	case QueueInvoicePDF:
		err = h.InvoicePDF.Handle(ctx, job.Payload)
	case QueueEmail:
		err = h.Email.Handle(ctx, job.Payload)
	default:
		log.Error().Str("queue", queue).Msg("unknown queue")
		return
	}
	if err == nil {
		return
	}

	job.Attempts++
	log.Warn().Str("type", job.Type).Int("attempts", job.Attempts).Err(err).Msg("job failed")

	if job.Attempts >= maxAttempts {
		SendToDLQ(ctx, rdb, queue, job.Type, job.Payload, err.Error(), job.Attempts)
		return
	}
	if reqErr := d.enqueue(ctx, queue, job.Type, json.RawMessage(job.Payload), job.Attempts); reqErr != nil {
		log.Error().Err(reqErr).Msg("failed to re-enqueue job")
	}
}
