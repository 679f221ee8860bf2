// Package worker runs the ledger mirror: it listens for change
// notifications and pushes full ledger snapshots to Google Sheets.
package worker

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"spendtrack/internal/amqp"
	"spendtrack/internal/core"
	"spendtrack/internal/log"
	"spendtrack/internal/storage"
)

// SnapshotWriter receives full ledger snapshots. Implemented by the
// Google Sheets client.
type SnapshotWriter interface {
	WriteSnapshot(ctx context.Context, rows []core.Expense) error
	Ref() string
}

// ChangeConsumer delivers ledger change notifications. Implemented by
// the AMQP client.
type ChangeConsumer interface {
	ConsumeLedgerChanges(ctx context.Context, handler func(*amqp.LedgerChangedMessage) error) error
}

// Mirror consumes change notifications, reloads the ledger from its
// store, and pushes the snapshot to the sheet. A periodic resync covers
// notifications lost while the worker was down.
type Mirror struct {
	store          storage.LedgerStore
	sheet          SnapshotWriter
	consumer       ChangeConsumer
	resyncInterval time.Duration
	logger         *log.Logger
}

// NewMirror creates a mirror worker. A non-positive resyncInterval
// disables the periodic resync.
func NewMirror(store storage.LedgerStore, sheet SnapshotWriter, consumer ChangeConsumer, resyncInterval time.Duration, logger *log.Logger) *Mirror {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &Mirror{
		store:          store,
		sheet:          sheet,
		consumer:       consumer,
		resyncInterval: resyncInterval,
		logger:         logger.WithComponent(log.ComponentWorker),
	}
}

// Run blocks until ctx is cancelled or a fatal error occurs. The
// consumer loop and the resync ticker run concurrently.
func (m *Mirror) Run(ctx context.Context) error {
	// Push once on startup so a fresh sheet catches up immediately.
	if err := m.Snapshot(ctx); err != nil {
		m.logger.Error("startup snapshot failed",
			log.FieldOperation, log.OpStartup,
			log.FieldError, err)
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return m.consumeLoop(ctx)
	})

	if m.resyncInterval > 0 {
		g.Go(func() error {
			return m.resyncLoop(ctx)
		})
	}

	return g.Wait()
}

func (m *Mirror) consumeLoop(ctx context.Context) error {
	handler := func(msg *amqp.LedgerChangedMessage) error {
		m.logger.Info("ledger change received",
			log.FieldOperation, msg.Op,
			log.FieldRows, msg.Rows)
		return m.Snapshot(ctx)
	}
	if err := m.consumer.ConsumeLedgerChanges(ctx, handler); err != nil {
		return fmt.Errorf("consume ledger changes: %w", err)
	}
	return nil
}

func (m *Mirror) resyncLoop(ctx context.Context) error {
	ticker := time.NewTicker(m.resyncInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := m.Snapshot(ctx); err != nil {
				m.logger.Error("periodic resync failed",
					log.FieldOperation, log.OpMirror,
					log.FieldError, err)
			}
		}
	}
}

// Snapshot reloads the ledger and pushes it to the sheet.
func (m *Mirror) Snapshot(ctx context.Context) error {
	rows, err := m.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load ledger: %w", err)
	}
	if err := m.sheet.WriteSnapshot(ctx, rows); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	m.logger.Info("ledger mirrored",
		log.FieldOperation, log.OpMirror,
		log.FieldRows, len(rows),
		log.FieldSheetsRef, m.sheet.Ref())
	return nil
}
