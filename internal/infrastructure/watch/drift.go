// Package watch runs the session role-drift detector: a cancellable
// periodic task that cross-checks every watched session's cached role
// against the authoritative user store.
package watch

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/Themiya19/Quotation-System-sub001/internal/api/metrics"
	"github.com/Themiya19/Quotation-System-sub001/internal/core/domain"
	"github.com/Themiya19/Quotation-System-sub001/internal/core/ports"
)

const defaultInterval = 10 * time.Second

// Drift owns the polling loop. Start and Stop are explicit; the loop also
// ends when the context passed to Start is cancelled.
type Drift struct {
	sessions ports.SessionService
	interval time.Duration
	log      zerolog.Logger
	stop     chan struct{}
	done     chan struct{}
}

// NewDrift creates a drift watcher. If interval <= 0, defaultInterval is used.
func NewDrift(sessions ports.SessionService, interval time.Duration, log zerolog.Logger) *Drift {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Drift{
		sessions: sessions,
		interval: interval,
		log:      log,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the polling goroutine. The first tick after start is
// skipped so a scan never races freshly written session state.
func (d *Drift) Start(ctx context.Context) {
	go d.run(ctx)
}

// Stop terminates the loop and blocks until the goroutine has exited.
func (d *Drift) Stop() {
	close(d.stop)
	<-d.done
}

func (d *Drift) run(ctx context.Context) {
	defer close(d.done)

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	first := true
	for {
		select {
		case <-ctx.Done():
			return
		case <-d.stop:
			return
		case <-ticker.C:
			if first {
				first = false
				continue
			}
			d.scan(ctx)
		}
	}
}

func (d *Drift) scan(ctx context.Context) {
	started := time.Now()
	report, err := d.sessions.CheckDrift(ctx)
	metrics.DriftScanDuration.Observe(time.Since(started).Seconds())

	if err != nil {
		d.log.Error().Err(err).Msg("drift scan failed")
		return
	}

	metrics.SessionDriftTotal.WithLabelValues(string(domain.ReasonRoleChanged)).Add(float64(report.RoleChanged))
	metrics.SessionDriftTotal.WithLabelValues(string(domain.ReasonAccountDeleted)).Add(float64(report.Deleted))

	if report.RoleChanged > 0 || report.Deleted > 0 {
		d.log.Info().
			Int("scanned", report.Scanned).
			Int("role_changed", report.RoleChanged).
			Int("account_deleted", report.Deleted).
			Msg("drift scan invalidated sessions")
	} else {
		d.log.Debug().Int("scanned", report.Scanned).Msg("drift scan clean")
	}
}
