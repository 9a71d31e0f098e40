package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/arplanets/livesight-order-service/internal/domain"
	"github.com/jaevor/go-nanoid"
	"github.com/segmentio/kafka-go"
)

// Sink queues order audit snapshots in memory and flushes them to a kafka
// topic in batches, either when a batch fills or on the flush interval.
// Recording never blocks the request path: when the queue is full the
// snapshot is dropped and counted, because audit delivery is best-effort
// and must not back-pressure order mutations.
type Sink struct {
	writer   *kafka.Writer
	queue    chan domain.AuditSnapshot
	batch    int
	interval time.Duration
	newID    func() string
	log      *slog.Logger
	dropped  func()
	done     chan struct{}
	stopped  chan struct{}
}

type record struct {
	AuditID string `json:"audit_id"`
	domain.AuditSnapshot
}

func NewSink(
	brokers []string,
	topic string,
	queueSize, batchSize int,
	interval time.Duration,
	log *slog.Logger,
	onDropped func(),
) (*Sink, error) {
	newID, err := nanoid.Standard(21)
	if err != nil {
		return nil, fmt.Errorf("initializing audit id generator: %w", err)
	}

	if queueSize <= 0 {
		queueSize = 1024
	}
	if batchSize <= 0 {
		batchSize = 50
	}
	if interval <= 0 {
		interval = 5 * time.Second
	}
	if onDropped == nil {
		onDropped = func() {}
	}

	return &Sink{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
		queue:    make(chan domain.AuditSnapshot, queueSize),
		batch:    batchSize,
		interval: interval,
		newID:    newID,
		log:      log,
		dropped:  onDropped,
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}, nil
}

// Record enqueues a snapshot. The passed context is ignored on purpose:
// delivery happens later on the flush goroutine and must not be tied to
// the request lifetime.
func (s *Sink) Record(_ context.Context, snapshot domain.AuditSnapshot) {
	select {
	case s.queue <- snapshot:
	default:
		s.dropped()
		s.log.Warn("audit queue full, snapshot dropped",
			"operation", snapshot.Operation, "order_id", snapshot.OrderID)
	}
}

// Start runs the flush loop until Close is called.
func (s *Sink) Start() {
	go s.run()
}

func (s *Sink) run() {
	defer close(s.stopped)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	pending := make([]domain.AuditSnapshot, 0, s.batch)

	flush := func() {
		if len(pending) == 0 {
			return
		}
		s.flush(pending)
		pending = pending[:0]
	}

	for {
		select {
		case snapshot := <-s.queue:
			pending = append(pending, snapshot)
			if len(pending) >= s.batch {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-s.done:
			// Drain whatever is still queued before stopping.
			for {
				select {
				case snapshot := <-s.queue:
					pending = append(pending, snapshot)
				default:
					flush()
					return
				}
			}
		}
	}
}

func (s *Sink) flush(batch []domain.AuditSnapshot) {
	msgs := make([]kafka.Message, 0, len(batch))
	for _, snapshot := range batch {
		rec := record{AuditID: s.newID(), AuditSnapshot: snapshot}
		value, err := json.Marshal(rec)
		if err != nil {
			s.log.Error("failed to encode audit record", "error", err.Error())
			continue
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(rec.OrderID),
			Value: value,
			Time:  time.Now(),
		})
	}
	if len(msgs) == 0 {
		return
	}

	if err := s.writer.WriteMessages(context.Background(), msgs...); err != nil {
		s.log.Error("failed to flush audit batch", "size", len(msgs), "error", err.Error())
	}
}

// Close stops the flush loop after a final drain and closes the writer.
func (s *Sink) Close() error {
	close(s.done)
	<-s.stopped
	return s.writer.Close()
}
