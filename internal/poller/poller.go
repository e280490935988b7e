package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"playbud-discovery/internal/domain/refdata"
	"playbud-discovery/internal/logging"
	"playbud-discovery/internal/metrics"
	"playbud-discovery/internal/providers"
	"playbud-discovery/internal/store"
)

const defaultInterval = time.Minute

// Source is the slice of the provider surface the poller needs: the game
// listing and the reference tables. Both are re-fetched in full each cycle.
type Source interface {
	providers.GameLister
	providers.ReferenceFetcher
}

// Poller refreshes the in-memory store from the upstream API on an interval.
// Reference data rides along with every game refresh; the tables are small
// and a single failure mode keeps readiness simple.
type Poller struct {
	source    Source
	store     *store.MemoryStore
	logger    *slog.Logger
	metrics   *metrics.Recorder
	interval  time.Duration
	listLimit int
	now       func() time.Time

	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the poller loop.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
}

// IsReady reports whether the poller has had a recent success and is not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < 3
}

// New constructs a Poller with sane defaults.
func New(source Source, st *store.MemoryStore, logger *slog.Logger, recorder *metrics.Recorder, interval time.Duration, listLimit int) *Poller {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Poller{
		source:    source,
		store:     st,
		logger:    logger,
		metrics:   recorder,
		interval:  interval,
		listLimit: listLimit,
		now:       time.Now,
		done:      make(chan struct{}),
	}
}

// Start begins polling until the context is cancelled or Stop is called.
func (p *Poller) Start(ctx context.Context) {
	p.startMu.Lock()
	if p.started {
		p.startMu.Unlock()
		return
	}
	p.started = true
	p.startMu.Unlock()

	p.ticker = time.NewTicker(p.interval)

	go func() {
		p.logInfo("poller started", slog.Int64(logging.FieldDurationMS, p.interval.Milliseconds()))
		// Initial fetch to warm data on boot.
		p.refreshOnce(ctx)

		for {
			select {
			case <-ctx.Done():
				p.stopTicker()
				p.logInfo("poller stopped")
				return
			case <-p.done:
				p.stopTicker()
				p.logInfo("poller stopped")
				return
			case <-p.ticker.C:
				p.refreshOnce(ctx)
			}
		}
	}()
}

// Stop halts the polling loop.
func (p *Poller) Stop(ctx context.Context) error {
	_ = ctx
	p.stopOnce.Do(func() {
		close(p.done)
		p.stopTicker()
	})
	return nil
}

// Refresh runs a single fetch cycle outside the ticker. The web layer uses
// it after a successful join so roster counts update immediately.
func (p *Poller) Refresh(ctx context.Context) error {
	return p.refreshOnce(ctx)
}

func (p *Poller) refreshOnce(ctx context.Context) error {
	start := time.Now()
	p.recordAttempt(start)

	records, err := p.source.ListGames(ctx, p.listLimit)
	if err == nil {
		var set refdata.Set
		set, err = p.source.FetchReferenceData(ctx)
		if err == nil {
			p.store.SetGames(records)
			p.store.SetReference(set, p.now())
		}
	}

	if p.metrics != nil {
		p.metrics.RecordPollerCycle(time.Since(start), err)
	}
	if err != nil {
		p.logError("poller refresh failed", err, slog.Int64(logging.FieldDurationMS, time.Since(start).Milliseconds()))
		p.recordFailure(err, start)
		return err
	}

	p.recordSuccess(start)
	p.logInfo("poller refreshed listings",
		logging.FieldCount, len(records),
		logging.FieldDurationMS, time.Since(start).Milliseconds(),
	)
	return nil
}

func (p *Poller) stopTicker() {
	if p.ticker != nil {
		p.ticker.Stop()
	}
}

func (p *Poller) logInfo(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Info(msg, args...)
	}
}

func (p *Poller) logError(msg string, err error, attrs ...any) {
	if p.logger != nil {
		p.logger.Error(msg, append(attrs, "error", err)...)
	}
}

func (p *Poller) recordAttempt(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.LastAttempt = at
}

func (p *Poller) recordSuccess(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures = 0
	p.status.LastError = ""
	p.status.LastSuccess = at
}

func (p *Poller) recordFailure(err error, at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures++
	if err != nil {
		p.status.LastError = err.Error()
	}
	p.status.LastAttempt = at
}

// Status returns a snapshot of the poller's recent health.
func (p *Poller) Status() Status {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	return p.status
}
