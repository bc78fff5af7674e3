// Package audit appends administrative action records off the request path.
// Recording is fire-and-forget: a full buffer or a failed insert is logged and
// dropped, never surfaced to the mutation that triggered it.
package audit

import (
	"context"
	"log"
	"time"

	"github.com/saeid-a/ProgramTrackBack/internal/models"
)

const writeTimeout = 5 * time.Second

type recordWriter interface {
	Create(ctx context.Context, record *models.AuditRecord) error
}

type Recorder struct {
	repo    recordWriter
	records chan models.AuditRecord
	done    chan struct{}
}

func NewRecorder(repo recordWriter) *Recorder {
	return &Recorder{
		repo:    repo,
		records: make(chan models.AuditRecord, 64),
		done:    make(chan struct{}),
	}
}

// Run drains the record channel until Close. Start it on its own goroutine.
func (r *Recorder) Run() {
	defer close(r.done)
	for record := range r.records {
		r.write(record)
	}
}

// Record enqueues without blocking. When the buffer is full the record is
// dropped and logged.
func (r *Recorder) Record(record models.AuditRecord) {
	select {
	case r.records <- record:
	default:
		log.Printf("audit recorder: buffer full, dropping %s record for actor %d", record.Action, record.ActorID)
	}
}

// Close stops accepting records and waits for the loop to drain what was
// already enqueued.
func (r *Recorder) Close() {
	close(r.records)
	<-r.done
}

func (r *Recorder) write(record models.AuditRecord) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	if err := r.repo.Create(ctx, &record); err != nil {
		log.Printf("audit recorder: write %s record for actor %d: %v", record.Action, record.ActorID, err)
	}
}
