package monitor

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/pagewatch/pagewatch/internal/config"
	"github.com/pagewatch/pagewatch/internal/history"
	"github.com/pagewatch/pagewatch/internal/metrics"
	"github.com/pagewatch/pagewatch/internal/notify"
)

// Status is the outcome of one check cycle. The scheduler uses it to decide
// when, or whether, the next check of the site runs.
type Status string

const (
	// StatusReady requests an immediate check. It is the initial status of
	// every configured site and is never returned by a check.
	StatusReady Status = "ready"
	// StatusWait resumes normal-interval polling.
	StatusWait Status = "wait"
	// StatusCooldown backs off for the site's failure-cooldown interval.
	StatusCooldown Status = "cooldown"
	// StatusGaveUp stops monitoring the site for the rest of the process
	// lifetime.
	StatusGaveUp Status = "gave_up"
)

// attemptsBeforeGivingUp is how many consecutive failed checks a site may
// accumulate before the monitor stops checking it for good.
const attemptsBeforeGivingUp = 3

// sendTimeout bounds a single alert delivery so a stalled SMTP conversation
// cannot hold up the site's scheduling decision indefinitely.
const sendTimeout = 10 * time.Second

// Monitor owns one site's check cycle: fetch the page, look for the expected
// text fragment, decide the next status, and alert on state-changing events.
// A Monitor is driven by a single scheduler goroutine, so its failure counter
// needs no locking.
type Monitor struct {
	site     config.Site
	fetcher  Fetcher
	notifier notify.Notifier
	history  *history.Log

	failures int
}

// New creates a Monitor for one configured site.
func New(site config.Site, fetcher Fetcher, notifier notify.Notifier, hist *history.Log) *Monitor {
	return &Monitor{
		site:     site,
		fetcher:  fetcher,
		notifier: notifier,
		history:  hist,
	}
}

// Check runs one check cycle and returns the scheduling decision.
func (m *Monitor) Check(ctx context.Context) Status {
	result, err := m.fetcher.Fetch(ctx, m.site.URL)
	if err != nil {
		return m.fail(ctx, err.Error())
	}
	if result.StatusCode != http.StatusOK {
		return m.fail(ctx, fmt.Sprintf("unexpected status code %d", result.StatusCode))
	}

	// --- Successful fetch ---
	// The failure counter resets on any readable 200 response, even when the
	// expected fragment turns out to be gone.
	m.failures = 0

	if !strings.Contains(result.Body, m.site.TextMatch) {
		slog.Warn("expected text missing", "site", m.site.Name, "url", m.site.URL)
		metrics.ChecksTotal.WithLabelValues(m.site.Name, metrics.ResultMissing).Inc()

		subject, body := notify.ContentsChanged(m.site)
		m.sendAlert(ctx, metrics.AlertContentsChanged, subject, body)

		m.record(StatusCooldown, false, "expected text missing")
		return StatusCooldown
	}

	slog.Info("check ok", "site", m.site.Name, "url", m.site.URL)
	metrics.ChecksTotal.WithLabelValues(m.site.Name, metrics.ResultMatch).Inc()

	m.record(StatusWait, true, "")
	return StatusWait
}

// fail handles one failed check: count it, escalate when the counter crosses
// the give-up threshold, and alert on the first failure only.
func (m *Monitor) fail(ctx context.Context, reason string) Status {
	m.failures++
	metrics.ChecksTotal.WithLabelValues(m.site.Name, metrics.ResultError).Inc()

	slog.Warn("check failed",
		"site", m.site.Name,
		"url", m.site.URL,
		"reason", reason,
		"consecutive_failures", m.failures,
	)

	if m.failures > attemptsBeforeGivingUp {
		// Transition: COOLDOWN -> GAVE_UP (final alert, no further checks)
		slog.Error("giving up on site", "site", m.site.Name, "attempts", m.failures)

		subject, body := notify.GivingUp(m.site, reason, m.failures)
		m.sendAlert(ctx, metrics.AlertGivingUp, subject, body)

		m.record(StatusGaveUp, false, reason)
		return StatusGaveUp
	}

	if m.failures == 1 {
		subject, body := notify.CheckFailed(m.site, reason)
		m.sendAlert(ctx, metrics.AlertCheckFailed, subject, body)
	}

	m.record(StatusCooldown, false, reason)
	return StatusCooldown
}

// sendAlert delivers one alert. Delivery failures are logged and counted but
// never influence the check result.
func (m *Monitor) sendAlert(ctx context.Context, kind, subject, body string) {
	metrics.AlertsTotal.WithLabelValues(m.site.Name, kind).Inc()

	sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	if err := m.notifier.Send(sendCtx, subject, body); err != nil {
		slog.Error("alert delivery failed", "site", m.site.Name, "kind", kind, "error", err)
		metrics.AlertSendFailuresTotal.WithLabelValues(m.site.Name).Inc()
	}
}

func (m *Monitor) record(status Status, ok bool, detail string) {
	m.history.RecordCheck(m.site.Name, history.Point{
		OK:       ok,
		Status:   string(status),
		Detail:   detail,
		Failures: m.failures,
	})
}
