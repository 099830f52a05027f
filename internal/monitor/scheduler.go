package monitor

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/pagewatch/pagewatch/internal/config"
	"github.com/pagewatch/pagewatch/internal/history"
	"github.com/pagewatch/pagewatch/internal/notify"
)

// Scheduler runs one goroutine per configured site. Each goroutine re-runs
// its site's check when the current timer fires and arms the next timer only
// after the full check cycle, including any alert delivery, has completed, so
// at most one check per site is ever in flight.
type Scheduler struct {
	sites    []config.Site
	fetcher  Fetcher
	notifier notify.Notifier
	history  *history.Log

	cancel   context.CancelFunc
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// NewScheduler creates a Scheduler for a fixed set of sites.
func NewScheduler(sites []config.Site, fetcher Fetcher, notifier notify.Notifier, hist *history.Log) *Scheduler {
	return &Scheduler{
		sites:    sites,
		fetcher:  fetcher,
		notifier: notifier,
		history:  hist,
	}
}

// Start launches one monitoring goroutine per site. Every site begins with an
// immediate first check.
func (s *Scheduler) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	for _, site := range s.sites {
		s.history.Register(site.Name, site.URL, string(StatusReady))
		m := New(site, s.fetcher, s.notifier, s.history)

		s.wg.Add(1)
		go func(site config.Site, m *Monitor) {
			defer s.wg.Done()
			s.run(ctx, site, m)
		}(site, m)
	}
}

// Stop cancels all site goroutines and waits for in-flight checks to finish.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		if s.cancel != nil {
			s.cancel()
		}
		s.wg.Wait()
	})
}

func (s *Scheduler) run(ctx context.Context, site config.Site, m *Monitor) {
	slog.Info("site monitoring started",
		"site", site.Name,
		"url", site.URL,
		"interval", site.Interval(),
		"cooldown", site.Cooldown(),
	)

	status := StatusReady
	for {
		delay, again := nextDelay(site, status)
		if !again {
			slog.Info("site monitoring ended", "site", site.Name)
			return
		}
		if !sleepCtx(ctx, delay) {
			slog.Info("site monitoring stopped", "site", site.Name)
			return
		}
		status = m.Check(ctx)
	}
}

// nextDelay translates a check outcome into the wait before the next check of
// the site. The boolean reports whether another check should run at all.
func nextDelay(site config.Site, status Status) (time.Duration, bool) {
	switch status {
	case StatusReady:
		// Only the very first check of a site; runs without delay.
		return 0, true
	case StatusWait:
		return site.Interval(), true
	case StatusCooldown:
		return site.Cooldown(), true
	case StatusGaveUp:
		return 0, false
	default:
		// An unknown status is a broken contract between monitor and
		// scheduler; continuing would mis-schedule silently.
		panic(fmt.Sprintf("unhandled monitor status %q for site %q", status, site.Name))
	}
}

// sleepCtx waits for d or until ctx is cancelled. It reports whether the full
// delay elapsed.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
