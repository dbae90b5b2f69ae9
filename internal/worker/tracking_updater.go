package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/eparsel/eparsel/internal/adapter/carrier"
	"github.com/eparsel/eparsel/internal/domain/model"
)

// ShippingFacade exposes the subset of application functionality required by the worker.
type ShippingFacade interface {
	ShipmentsForTracking(ctx context.Context, limit int) ([]model.Shipment, error)
	CheckTracking(ctx context.Context, trackingCode string) ([]model.ShipmentEvent, error)
	RecordTrackingEvent(ctx context.Context, shipmentID string, event model.ShipmentEvent) (bool, error)
}

// TrackingUpdater polls the carrier aggregator and appends fresh tracking
// events to active shipments concurrently.
type TrackingUpdater struct {
	facade       ShippingFacade
	pollInterval time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan model.Shipment
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewTrackingUpdater constructs tracking updater worker pool.
func NewTrackingUpdater(facade ShippingFacade, pollInterval time.Duration, batchSize, workers int, logger *slog.Logger) *TrackingUpdater {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &TrackingUpdater{
		facade:       facade,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan model.Shipment, batchSize*workers),
	}
}

// Start launches background processing.
func (p *TrackingUpdater) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(runCtx)
	}

	p.wg.Add(1)
	go p.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (p *TrackingUpdater) Stop() {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.mu.Unlock()

	p.wg.Wait()
}

func (p *TrackingUpdater) dispatch(ctx context.Context) {
	defer p.wg.Done()
	defer close(p.jobs)
	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.fetchAndDispatch(ctx)
		}
	}
}

func (p *TrackingUpdater) fetchAndDispatch(ctx context.Context) {
	shipments, err := p.facade.ShipmentsForTracking(ctx, p.batchSize)
	if err != nil {
		p.logger.Error("fetch shipments for tracking failed", slog.String("error", err.Error()))
		return
	}
	for _, shipment := range shipments {
		select {
		case <-ctx.Done():
			return
		case p.jobs <- shipment:
		}
	}
}

func (p *TrackingUpdater) worker(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case shipment, ok := <-p.jobs:
			if !ok {
				return
			}
			p.handleShipment(ctx, shipment)
		}
	}
}

func (p *TrackingUpdater) handleShipment(ctx context.Context, shipment model.Shipment) {
	updates, err := p.facade.CheckTracking(ctx, shipment.TrackingCode)
	if err != nil {
		switch e := err.(type) {
		case carrier.TooManyRequestsError:
			p.logger.Warn("carrier rate limited", slog.Duration("retry_after", e.RetryAfter))
			time.Sleep(e.RetryAfter)
		default:
			if errors.Is(err, carrier.ErrTrackingNotFound) {
				time.Sleep(p.pollInterval)
				return
			}
			p.logger.Error("carrier fetch failed", slog.String("tracking_code", shipment.TrackingCode), slog.String("error", err.Error()))
		}
		return
	}

	// The history is append-only: only entries newer than the latest
	// logged event are recorded, in carrier order.
	lastSeen := shipment.LatestEventTime()
	for _, event := range updates {
		if !event.Date.After(lastSeen) {
			continue
		}
		found, err := p.facade.RecordTrackingEvent(ctx, shipment.ID, event)
		if err != nil {
			p.logger.Error("record tracking event failed", slog.String("shipment", shipment.ID), slog.String("error", err.Error()))
			return
		}
		if !found {
			return
		}
	}
}
