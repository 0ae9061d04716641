// internals/features/hr/payments/service/payslip_worker.go
package service

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// PayslipWorker runs payslip generation as a deferred task: creation
// responds to the caller first, rendering happens here. Failures are
// logged and swallowed; the payment stays authoritative and the
// on-demand path in Payslip self-heals a missed render.
type PayslipWorker struct {
	svc   *PaymentService
	queue chan uuid.UUID

	stopOnce sync.Once
	done     chan struct{}
}

func NewPayslipWorker(svc *PaymentService, buffer int) *PayslipWorker {
	if buffer <= 0 {
		buffer = 64
	}
	return &PayslipWorker{
		svc:   svc,
		queue: make(chan uuid.UUID, buffer),
		done:  make(chan struct{}),
	}
}

func (w *PayslipWorker) Start() {
	go w.loop()
}

// Enqueue schedules generation without ever blocking the request path.
// A full queue drops the task; the record stays payslip_generated=false
// and the next download request renders it on demand.
func (w *PayslipWorker) Enqueue(paymentID uuid.UUID) bool {
	select {
	case w.queue <- paymentID:
		return true
	default:
		log.Printf("[payslip] queue full, dropping %s (will render on demand)", paymentID)
		return false
	}
}

// Stop drains nothing: pending tasks are abandoned, which is safe
// because generation is idempotent and recoverable on demand.
func (w *PayslipWorker) Stop() {
	w.stopOnce.Do(func() { close(w.done) })
}

func (w *PayslipWorker) loop() {
	for {
		select {
		case <-w.done:
			return
		case id := <-w.queue:
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			if _, _, err := w.svc.GeneratePayslip(ctx, id); err != nil {
				log.Printf("[payslip] generation failed for %s: %v", id, err)
			}
			cancel()
		}
	}
}
