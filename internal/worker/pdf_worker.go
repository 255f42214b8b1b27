package worker

// pdf_worker.go
// Processes quote-rendering jobs from QueuePDF.
// Renders the printable PDF for an approved presupuesto and, if the
// client left an email, chains an email job with the PDF attached.

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Felipe-Salom-Git/plataforma-jm/internal/infra"
	"github.com/Felipe-Salom-Git/plataforma-jm/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const maxPDFAttempts = 3

// PDFJobPayload is the job envelope sent to QueuePDF.
type PDFJobPayload struct {
	PresupuestoID string  `json:"presupuesto_id"`
	ClienteEmail  *string `json:"cliente_email,omitempty"`
}

// PDFWorker renders quote PDFs for approved presupuestos.
type PDFWorker struct {
	presupuestoRepo repository.PresupuestoRepository
	dispatcher      *Dispatcher
	rdb             *redis.Client
	pdfStoragePath  string
	empresaNombre   string
}

func NewPDFWorker(
	presupuestoRepo repository.PresupuestoRepository,
	dispatcher *Dispatcher,
	rdb *redis.Client,
	pdfStoragePath string,
	empresaNombre string,
) *PDFWorker {
	return &PDFWorker{
		presupuestoRepo: presupuestoRepo,
		dispatcher:      dispatcher,
		rdb:             rdb,
		pdfStoragePath:  pdfStoragePath,
		empresaNombre:   empresaNombre,
	}
}

// Process handles a single PDF job:
//  1. Parse PDFJobPayload from the job envelope
//  2. Fetch the Presupuesto (with items) from DB
//  3. Render the PDF with exponential backoff (max 3 attempts)
//  4. Persist the resulting path on the presupuesto
//  5. Optionally chain an email job with the attachment
func (w *PDFWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload PDFJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("pdf_worker: invalid payload")
		return
	}

	id, err := uuid.Parse(payload.PresupuestoID)
	if err != nil {
		log.Error().Str("presupuesto_id", payload.PresupuestoID).Msg("pdf_worker: invalid presupuesto_id")
		return
	}

	p, err := w.presupuestoRepo.FindByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Str("presupuesto_id", payload.PresupuestoID).Msg("pdf_worker: presupuesto not found")
		return
	}

	var pdfPath string
	renderErr := withRetry(ctx, maxPDFAttempts, func(attempt int) error {
		path, err := infra.GenerarPresupuestoPDF(p, w.empresaNombre, w.pdfStoragePath)
		if err != nil {
			log.Warn().
				Err(err).
				Int("attempt", attempt+1).
				Str("presupuesto_id", payload.PresupuestoID).
				Msg("pdf_worker: render attempt failed, retrying")
			return err
		}
		pdfPath = path
		return nil
	})

	if renderErr != nil {
		log.Error().Err(renderErr).Str("presupuesto_id", payload.PresupuestoID).Msg("pdf_worker: render failed after all retries")
		SendToDLQ(ctx, w.rdb, QueuePDF, "pdf", raw,
			fmt.Sprintf("render failed after %d attempts: %v", maxPDFAttempts, renderErr),
			maxPDFAttempts)
		return
	}

	if err := w.presupuestoRepo.UpdateCampos(ctx, id, map[string]interface{}{"pdf_path": pdfPath}); err != nil {
		log.Warn().Err(err).Str("presupuesto_id", payload.PresupuestoID).Msg("pdf_worker: failed to persist pdf path")
	}
	log.Info().Str("pdf", pdfPath).Str("presupuesto_id", payload.PresupuestoID).Msg("pdf_worker: PDF rendered")

	if payload.ClienteEmail != nil && *payload.ClienteEmail != "" {
		emailJob := EmailJobPayload{
			ToEmail: *payload.ClienteEmail,
			Subject: fmt.Sprintf("%s — Presupuesto #%d", w.empresaNombre, p.Numero),
			Body: fmt.Sprintf("Adjunto encontrarás tu presupuesto #%d.\nTotal: $%s",
				p.Numero, p.Total.StringFixed(2)),
			PDFPath: pdfPath,
		}
		if err := w.dispatcher.EnqueueEmail(ctx, emailJob); err != nil {
			log.Warn().Err(err).Str("email", *payload.ClienteEmail).Msg("pdf_worker: failed to enqueue email")
		} else {
			log.Info().Str("email", *payload.ClienteEmail).Msg("pdf_worker: email job enqueued")
		}
	}
}

// withRetry calls fn up to maxAttempts times with exponential backoff.
// Backoff schedule: attempt 1 = immediate, 2 = 1s, 3 = 2s.
// Returns nil if any attempt succeeds; last error otherwise.
func withRetry(ctx context.Context, maxAttempts int, fn func(attempt int) error) error {
	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		if i > 0 {
			wait := time.Duration(1<<uint(i-1)) * time.Second
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}
		if err := fn(i); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return lastErr
}
