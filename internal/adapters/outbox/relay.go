package outbox

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"sync/atomic"
	"time"

	"github.com/lib/pq"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/AchilleasB/salon-booking/booking-service/internal/core/domain"
	"github.com/AchilleasB/salon-booking/booking-service/internal/core/ports"
)

const (
	// PostgreSQL NOTIFY/LISTEN configuration
	listenerMinReconnectInterval = 10 * time.Second
	listenerMaxReconnectInterval = time.Minute
	outboxChannelName            = "outbox_channel"

	// Event processing timeouts
	eventProcessTimeout     = 30 * time.Second
	batchProcessTimeout     = 60 * time.Second
	periodicProcessInterval = 90 * time.Second

	healthCheckStaleThreshold = 5 * time.Minute

	maxEventsPerBatch = 100
)

// Relay listens for PostgreSQL NOTIFY signals on the outbox_channel
// and forwards pending outbox events to the broker.
type Relay struct {
	db        *sql.DB
	dbURL     string
	publisher ports.EventPublisher
	dbCB      *gobreaker.CircuitBreaker
	logger    *zap.Logger

	lastProcessed atomic.Int64
	healthy       atomic.Bool
}

type record struct {
	ID        string
	Type      string
	Payload   []byte
	CreatedAt time.Time
}

func NewRelay(db *sql.DB, dbURL string, publisher ports.EventPublisher, dbCB *gobreaker.CircuitBreaker, logger *zap.Logger) *Relay {
	r := &Relay{
		db:        db,
		dbURL:     dbURL,
		publisher: publisher,
		dbCB:      dbCB,
		logger:    logger,
	}
	r.markProcessed()
	return r
}

// IsHealthy reports whether the worker loop is alive. An open circuit does not
// make the relay unhealthy, only unready.
func (r *Relay) IsHealthy() bool {
	return r.healthy.Load()
}

// IsReady returns true if the relay can process events.
func (r *Relay) IsReady() bool {
	if r.dbCB.State() == gobreaker.StateOpen {
		return false
	}
	if time.Since(time.Unix(0, r.lastProcessed.Load())) > healthCheckStaleThreshold {
		return false
	}
	return r.IsHealthy()
}

func (r *Relay) markProcessed() {
	r.lastProcessed.Store(time.Now().UnixNano())
	r.healthy.Store(true)
}

// Start begins listening for outbox notifications and processing events.
// It blocks until ctx is cancelled.
func (r *Relay) Start(ctx context.Context) error {
	reportProblem := func(ev pq.ListenerEventType, err error) {
		if err != nil {
			r.logger.Warn("outbox listener error", zap.Error(err))
		}
	}

	listener := pq.NewListener(r.dbURL, listenerMinReconnectInterval, listenerMaxReconnectInterval, reportProblem)
	defer listener.Close()

	if err := listener.Listen(outboxChannelName); err != nil {
		return err
	}
	r.logger.Info("outbox relay listening", zap.String("channel", outboxChannelName))

	// catch up on anything written while the relay was down
	if err := r.processPending(ctx); err != nil {
		r.logger.Error("processing startup backlog", zap.Error(err))
	}

	ticker := time.NewTicker(periodicProcessInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("outbox relay shutting down")
			return ctx.Err()

		case n := <-listener.Notify:
			if n == nil {
				// connection was lost and re-established; notifications may have been missed
				r.logger.Warn("outbox listener reconnected")
				r.healthy.Store(false)
				if err := r.processPending(ctx); err == nil {
					r.markProcessed()
				}
				continue
			}

			if err := r.processByID(ctx, n.Extra); err != nil {
				r.logger.Error("processing outbox event", zap.String("event_id", n.Extra), zap.Error(err))
			} else {
				r.markProcessed()
			}

		case <-ticker.C:
			go func() { _ = listener.Ping() }()

			if err := r.processPending(ctx); err != nil {
				r.logger.Error("periodic outbox sweep", zap.Error(err))
			} else {
				r.markProcessed()
			}
		}
	}
}

func (r *Relay) processByID(ctx context.Context, eventID string) error {
	ctx, cancel := context.WithTimeout(ctx, eventProcessTimeout)
	defer cancel()

	_, err := r.dbCB.Execute(func() (interface{}, error) {
		tx, err := r.db.BeginTx(ctx, nil)
		if err != nil {
			return nil, err
		}
		defer tx.Rollback()

		var rec record
		err = tx.QueryRowContext(ctx, `
			SELECT id, event_type, payload, created_at
			FROM outbox_events
			WHERE id = $1 AND processed_at IS NULL
			FOR UPDATE SKIP LOCKED`, eventID).Scan(&rec.ID, &rec.Type, &rec.Payload, &rec.CreatedAt)
		if errors.Is(err, sql.ErrNoRows) {
			// already handled by a sweep or another relay
			return nil, nil
		}
		if err != nil {
			return nil, err
		}

		if err := r.dispatch(ctx, rec); err != nil {
			return nil, err
		}
		if err := markDone(ctx, tx, rec.ID); err != nil {
			return nil, err
		}
		return nil, tx.Commit()
	})
	return err
}

func (r *Relay) processPending(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, batchProcessTimeout)
	defer cancel()

	_, err := r.dbCB.Execute(func() (interface{}, error) {
		tx, err := r.db.BeginTx(ctx, nil)
		if err != nil {
			return nil, err
		}
		defer tx.Rollback()

		rows, err := tx.QueryContext(ctx, `
			SELECT id, event_type, payload, created_at
			FROM outbox_events
			WHERE processed_at IS NULL
			ORDER BY created_at
			LIMIT $1
			FOR UPDATE SKIP LOCKED`, maxEventsPerBatch)
		if err != nil {
			return nil, err
		}

		var records []record
		for rows.Next() {
			var rec record
			if err := rows.Scan(&rec.ID, &rec.Type, &rec.Payload, &rec.CreatedAt); err != nil {
				rows.Close()
				return nil, err
			}
			records = append(records, rec)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return nil, err
		}

		for _, rec := range records {
			if err := r.dispatch(ctx, rec); err != nil {
				// left pending for the next sweep
				r.logger.Warn("publishing outbox event", zap.String("event_id", rec.ID), zap.Error(err))
				continue
			}
			if err := markDone(ctx, tx, rec.ID); err != nil {
				return nil, err
			}
		}
		return nil, tx.Commit()
	})
	return err
}

// dispatch publishes one outbox row. A row whose payload is not valid JSON is
// logged and reported as done so it is not retried forever.
func (r *Relay) dispatch(ctx context.Context, rec record) error {
	if !json.Valid(rec.Payload) {
		r.logger.Error("dropping outbox event with invalid payload",
			zap.String("event_id", rec.ID),
			zap.String("event_type", rec.Type),
		)
		return nil
	}

	evt := domain.OutboxEvent{
		ID:        rec.ID,
		Type:      rec.Type,
		Payload:   json.RawMessage(rec.Payload),
		CreatedAt: rec.CreatedAt,
	}
	if err := r.publisher.Publish(ctx, evt); err != nil {
		return err
	}
	r.logger.Debug("outbox event published", zap.String("event_id", rec.ID), zap.String("event_type", rec.Type))
	return nil
}

func markDone(ctx context.Context, tx *sql.Tx, id string) error {
	_, err := tx.ExecContext(ctx, `UPDATE outbox_events SET processed_at = NOW() WHERE id = $1`, id)
	return err
}
