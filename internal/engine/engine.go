// Package engine issues HTTP requests for entries drawn from a replay
// source and aggregates the results.
package engine

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/bmcalindin/wlog/internal/engine/rate"
	"github.com/bmcalindin/wlog/internal/wlog"
)

// Source supplies replay entries in capture order. Next is called by a
// single feeder goroutine, never concurrently.
type Source interface {
	Next() (wlog.Entry, error)
}

// Config contains configuration for an Engine.
type Config struct {
	// BaseURL is prepended to each entry's target. Empty means targets
	// are already absolute URLs.
	BaseURL string

	// Workers is the number of concurrent request issuers (default 1).
	Workers int

	// Rate limits request admission to this many per second; 0 disables
	// limiting.
	Rate float64

	// Timeout applies per request (default 30s).
	Timeout time.Duration

	// ExtraHeaders are applied to every outgoing request, before any
	// per-entry embedded headers.
	ExtraHeaders http.Header

	// Verbose reports each issued request on Diag.
	Verbose bool

	// Diag receives verbose output. Defaults to os.Stderr.
	Diag io.Writer
}

// Engine drives a replay run: one feeder goroutine pulls entries from the
// Source (preserving its single-caller contract) and fans them out to a
// pool of workers that issue the HTTP requests.
type Engine struct {
	cfg     Config
	client  *http.Client
	limiter *rate.Limiter

	stopCh   chan struct{}
	stopOnce sync.Once
}

// New creates an Engine. Zero-valued config fields get defaults.
func New(cfg Config) *Engine {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.Diag == nil {
		cfg.Diag = os.Stderr
	}

	e := &Engine{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		stopCh: make(chan struct{}),
	}
	if cfg.Rate > 0 {
		e.limiter = rate.NewLimiter(cfg.Rate)
	}
	return e
}

// Stop asks the engine to finish gracefully: no new entries are admitted,
// in-flight requests complete. Safe to call from any goroutine, including
// a Source exhaustion callback firing inside Next. Idempotent.
func (e *Engine) Stop() {
	e.stopOnce.Do(func() { close(e.stopCh) })
}

// Run replays entries from src until the source fails, Stop is called, or
// ctx is cancelled. The entry being produced when Stop fires is still
// issued. Returns the aggregated results and, if the source failed, its
// error.
func (e *Engine) Run(ctx context.Context, src Source) (*Results, error) {
	results := NewResults()
	entries := make(chan wlog.Entry)
	srcErr := make(chan error, 1)

	go e.feed(ctx, src, entries, srcErr)

	var wg sync.WaitGroup
	for i := 0; i < e.cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for entry := range entries {
				e.issue(ctx, entry, results)
			}
		}()
	}
	wg.Wait()

	results.Finish()

	select {
	case err := <-srcErr:
		return results, err
	default:
		return results, nil
	}
}

// feed is the only caller of src.Next. It pushes each produced entry to
// the workers before honoring a pending stop, so the entry that triggered
// exhaustion still goes out.
func (e *Engine) feed(ctx context.Context, src Source, entries chan<- wlog.Entry, srcErr chan<- error) {
	defer close(entries)

	for {
		if e.limiter != nil {
			if err := e.limiter.Wait(ctx); err != nil {
				return
			}
		}

		select {
		case <-e.stopCh:
			return
		case <-ctx.Done():
			return
		default:
		}

		entry, err := src.Next()
		if err != nil {
			srcErr <- err
			return
		}

		select {
		case entries <- entry:
		case <-ctx.Done():
			return
		}
	}
}

// issue sends one request and records its outcome.
func (e *Engine) issue(ctx context.Context, entry wlog.Entry, results *Results) {
	url := joinTarget(e.cfg.BaseURL, entry.Target)

	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		results.Record(time.Since(start), false, 0)
		fmt.Fprintf(e.cfg.Diag, "wlog: bad target %q: %v\n", entry.Target, err)
		return
	}

	for name, values := range e.cfg.ExtraHeaders {
		for _, v := range values {
			req.Header.Add(name, v)
		}
	}
	if entry.HasHeader {
		ParseHeaderBlock(req.Header, entry.Header)
	}

	if e.cfg.Verbose {
		fmt.Fprintf(e.cfg.Diag, "wlog: GET %s\n", url)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		results.Record(time.Since(start), false, 0)
		return
	}
	defer resp.Body.Close()

	n, _ := io.Copy(io.Discard, resp.Body)
	results.Record(time.Since(start), resp.StatusCode < 400, n)
}

// joinTarget glues a base URL and a captured target without doubling or
// dropping the separating slash.
func joinTarget(base, target string) string {
	if base == "" {
		return target
	}
	base = strings.TrimRight(base, "/")
	if !strings.HasPrefix(target, "/") {
		return base + "/" + target
	}
	return base + target
}

// ParseHeaderBlock parses a decoded header block (CR LF separated
// "Name: value" lines) into h. Malformed lines are skipped. The same
// grammar serves per-record embedded headers and the --add-header option.
func ParseHeaderBlock(h http.Header, block string) {
	for _, line := range strings.Split(block, "\r\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		name, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		h.Add(strings.TrimSpace(name), strings.TrimSpace(value))
	}
}
