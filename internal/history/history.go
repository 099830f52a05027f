package history

import (
	"sync"
	"time"
)

// Point is the outcome of a single check cycle.
type Point struct {
	Time     int64  `json:"t"`
	OK       bool   `json:"ok"`
	Status   string `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Failures int    `json:"failures"`
}

// SiteHistory holds the runtime state of a single site: its current
// scheduling status and a bounded window of recent check points.
type SiteHistory struct {
	URL       string  `json:"url"`
	Status    string  `json:"status"`
	LastCheck int64   `json:"last_check"`
	Failures  int     `json:"failures"`
	Checks    []Point `json:"checks"`
}

// Log is the in-memory, process-lifetime record of check outcomes. State
// resets on restart; nothing touches disk.
type Log struct {
	mu        sync.RWMutex
	sites     map[string]*SiteHistory
	maxPoints int
}

// New creates an empty Log keeping at most maxPoints checks per site.
func New(maxPoints int) *Log {
	return &Log{
		sites:     make(map[string]*SiteHistory),
		maxPoints: maxPoints,
	}
}

// Register creates an entry for a site before its first check so snapshots
// list it with the given initial status.
func (l *Log) Register(name, url, status string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.sites[name]; ok {
		return
	}
	l.sites[name] = &SiteHistory{
		URL:    url,
		Status: status,
		Checks: make([]Point, 0),
	}
}

// RecordCheck appends a check point and updates the site's current state.
func (l *Log) RecordCheck(name string, p Point) {
	l.mu.Lock()
	defer l.mu.Unlock()

	h, ok := l.sites[name]
	if !ok {
		h = &SiteHistory{Checks: make([]Point, 0)}
		l.sites[name] = h
	}

	if p.Time == 0 {
		p.Time = time.Now().Unix()
	}
	h.Checks = append(h.Checks, p)

	// Ring buffer: trim to max
	if len(h.Checks) > l.maxPoints {
		excess := len(h.Checks) - l.maxPoints
		h.Checks = h.Checks[excess:]
	}

	h.Status = p.Status
	h.LastCheck = p.Time
	h.Failures = p.Failures
}

// Get returns a copy of a site's history (nil if not found).
func (l *Log) Get(name string) *SiteHistory {
	l.mu.RLock()
	defer l.mu.RUnlock()
	h, ok := l.sites[name]
	if !ok {
		return nil
	}
	cp := *h
	cp.Checks = append([]Point(nil), h.Checks...)
	return &cp
}

// Snapshot returns a copy of all site histories.
func (l *Log) Snapshot() map[string]SiteHistory {
	l.mu.RLock()
	defer l.mu.RUnlock()
	result := make(map[string]SiteHistory, len(l.sites))
	for name, h := range l.sites {
		cp := *h
		cp.Checks = append([]Point(nil), h.Checks...)
		result[name] = cp
	}
	return result
}
