package wlog

import (
	"fmt"
	"io"
	"os"
)

// Entry is one replayed request produced by a Generator.
type Entry struct {
	// Target is the request target exactly as captured.
	Target string

	// Header is the decoded embedded header block, if any. Header lines
	// are separated by CR LF per the escape grammar used at capture time.
	Header string

	// HasHeader reports whether the record carried a header block. The
	// block may decode to the empty string, in which case it contributes
	// no header to the outgoing request.
	HasHeader bool
}

// Call is the host engine's view of an outgoing request. The Generator
// fills it header-first, matching capture order.
type Call interface {
	// AppendHeader adds decoded header text to the outgoing request.
	AppendHeader(header string)

	// SetTarget sets the request target.
	SetTarget(target string)
}

// Options configures a Generator.
type Options struct {
	// Path of the workload log file.
	Path string

	// Loop restarts from the top of the log after the last record instead
	// of signalling exhaustion.
	Loop bool

	// EmbeddedHeaders enables per-record header blocks separated from the
	// target by the Sentinel byte.
	EmbeddedHeaders bool

	// Verbose reports each produced target on Diag.
	Verbose bool

	// Diag receives verbose output and decoder warnings. Defaults to
	// os.Stderr.
	Diag io.Writer

	// OnExhausted is invoked when the cursor wraps and Loop is false: the
	// host should stop admitting new requests and let in-flight ones
	// finish. The entry produced by the wrapping call is still returned.
	OnExhausted func()
}

// Generator replays request entries from a workload log in capture order.
//
// A Generator is driven by exactly one caller at a time; the host engine
// guarantees one in-flight Next per Generator. It is not safe for
// concurrent use.
type Generator struct {
	log    *Log
	cursor int
	opts   Options
}

// NewGenerator opens and maps the workload log and positions the cursor
// at the first record.
//
// Fails with ErrEmptyLog (wrapped) for a zero-length file, or with the
// underlying I/O error when the file cannot be opened or mapped. Both are
// unusable-configuration errors: callers should treat them as fatal.
func NewGenerator(opts Options) (*Generator, error) {
	if opts.Diag == nil {
		opts.Diag = os.Stderr
	}

	log, err := OpenLog(opts.Path)
	if err != nil {
		return nil, err
	}

	return &Generator{log: log, opts: opts}, nil
}

// Next produces the next non-empty entry from the log.
//
// Empty records are skipped transparently. When the end of the log is
// reached the cursor wraps to the start; with Loop disabled the wrap
// additionally fires OnExhausted, though the wrapping call still returns
// its entry. If a full cycle yields only empty records, Next returns
// ErrNoValidRecords (wrapped) — the log is unusable and the run should
// abort.
//
// Calling Next after Close is a programming error and panics.
func (g *Generator) Next() (Entry, error) {
	if g.log == nil {
		panic("wlog: Next called on closed Generator")
	}

	didWrap := false
	for {
		rec, next, wrapped := g.log.NextRecord(g.cursor)
		if wrapped {
			if didWrap {
				return Entry{}, fmt.Errorf("%s: %w", g.opts.Path, ErrNoValidRecords)
			}
			didWrap = true
			if !g.opts.Loop && g.opts.OnExhausted != nil {
				g.opts.OnExhausted()
			}
		}
		g.cursor = next

		if len(rec) == 0 {
			continue
		}

		target, rawHeader, hasHeader := SplitRecord(rec, g.opts.EmbeddedHeaders)

		entry := Entry{Target: string(target), HasHeader: hasHeader}
		if hasHeader {
			entry.Header = string(Unescape(rawHeader, g.diagf))
		}

		if g.opts.Verbose {
			if entry.HasHeader {
				fmt.Fprintf(g.opts.Diag, "wlog: headers [%s] target `%s'\n", entry.Header, entry.Target)
			} else {
				fmt.Fprintf(g.opts.Diag, "wlog: accessing target `%s'\n", entry.Target)
			}
		}

		return entry, nil
	}
}

// Produce fills the host's request object from the next entry: decoded
// headers are appended before the target is set, matching capture order.
// An empty decoded header block contributes nothing.
func (g *Generator) Produce(c Call) error {
	entry, err := g.Next()
	if err != nil {
		return err
	}
	if entry.HasHeader && entry.Header != "" {
		c.AppendHeader(entry.Header)
	}
	c.SetTarget(entry.Target)
	return nil
}

// Close unmaps the workload log. The Generator must not be used
// afterwards; Close itself is idempotent.
func (g *Generator) Close() error {
	if g.log == nil {
		return nil
	}
	log := g.log
	g.log = nil
	return log.Close()
}

func (g *Generator) diagf(format string, args ...interface{}) {
	fmt.Fprintf(g.opts.Diag, "wlog: "+format+"\n", args...)
}
