package wlog

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func newTestGenerator(t *testing.T, content []byte, opts Options) *Generator {
	t.Helper()
	opts.Path = writeLog(t, content)
	if opts.Diag == nil {
		opts.Diag = &bytes.Buffer{}
	}

	gen, err := NewGenerator(opts)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { gen.Close() })
	return gen
}

func TestGenerator_ReplaysRecordsInFileOrder(t *testing.T) {
	gen := newTestGenerator(t, []byte("/one\x00/two\x00/three\x00"), Options{Loop: true})

	want := []string{"/one", "/two", "/three"}
	for i, w := range want {
		entry, err := gen.Next()
		if err != nil {
			t.Fatalf("Next #%d: %v", i, err)
		}
		if entry.Target != w {
			t.Errorf("Next #%d target = %q, want %q", i, entry.Target, w)
		}
		if entry.HasHeader {
			t.Errorf("Next #%d unexpectedly has a header", i)
		}
	}
}

func TestGenerator_LoopIsPeriodic(t *testing.T) {
	records := []string{"/a", "/b", "/c"}
	gen := newTestGenerator(t, []byte("/a\x00/b\x00/c\x00"), Options{Loop: true})

	// Two full cycles: entry k must equal entry k+n.
	for k := 0; k < 2*len(records); k++ {
		entry, err := gen.Next()
		if err != nil {
			t.Fatalf("Next #%d: %v", k, err)
		}
		if want := records[k%len(records)]; entry.Target != want {
			t.Errorf("Next #%d target = %q, want %q", k, entry.Target, want)
		}
	}
}

func TestGenerator_ExhaustionFiresOnWrap(t *testing.T) {
	exhausted := 0
	gen := newTestGenerator(t, []byte("/only\x00"), Options{
		OnExhausted: func() { exhausted++ },
	})

	entry, err := gen.Next()
	if err != nil || entry.Target != "/only" {
		t.Fatalf("first Next = (%+v, %v)", entry, err)
	}
	if exhausted != 0 {
		t.Fatal("OnExhausted fired before the log was exhausted")
	}

	// The wrapping call still produces its entry, after notifying.
	entry, err = gen.Next()
	if err != nil || entry.Target != "/only" {
		t.Fatalf("wrapping Next = (%+v, %v)", entry, err)
	}
	if exhausted != 1 {
		t.Fatalf("OnExhausted fired %d times, want 1", exhausted)
	}
}

func TestGenerator_LoopSuppressesExhaustion(t *testing.T) {
	gen := newTestGenerator(t, []byte("/only\x00"), Options{
		Loop:        true,
		OnExhausted: func() { t.Error("OnExhausted fired with looping enabled") },
	})

	for i := 0; i < 5; i++ {
		if _, err := gen.Next(); err != nil {
			t.Fatal(err)
		}
	}
}

func TestGenerator_EmptyRecordsAreInvisible(t *testing.T) {
	// Runs of consecutive terminators collapse to nothing.
	gen := newTestGenerator(t, []byte("\x00\x00/a\x00\x00\x00/b\x00\x00"), Options{Loop: true})

	want := []string{"/a", "/b", "/a"}
	for i, w := range want {
		entry, err := gen.Next()
		if err != nil {
			t.Fatalf("Next #%d: %v", i, err)
		}
		if entry.Target != w {
			t.Errorf("Next #%d target = %q, want %q", i, entry.Target, w)
		}
	}
}

func TestGenerator_OnlyEmptyRecordsIsFatal(t *testing.T) {
	// A single NUL byte: one empty record, nothing usable.
	gen := newTestGenerator(t, []byte{0x00}, Options{Loop: true})

	_, err := gen.Next()
	if !errors.Is(err, ErrNoValidRecords) {
		t.Fatalf("err = %v, want ErrNoValidRecords", err)
	}
}

func TestGenerator_EmbeddedHeaders(t *testing.T) {
	content := []byte("X-Replay: 1\\n\x01/with\x00/without\x00")
	gen := newTestGenerator(t, content, Options{Loop: true, EmbeddedHeaders: true})

	entry, err := gen.Next()
	if err != nil {
		t.Fatal(err)
	}
	if entry.Target != "/with" {
		t.Errorf("target = %q, want /with", entry.Target)
	}
	if !entry.HasHeader || entry.Header != "X-Replay: 1\r\n" {
		t.Errorf("header = (%q, %v), want (X-Replay: 1\\r\\n, true)", entry.Header, entry.HasHeader)
	}

	entry, err = gen.Next()
	if err != nil {
		t.Fatal(err)
	}
	if entry.Target != "/without" || entry.HasHeader {
		t.Errorf("entry = %+v, want plain /without", entry)
	}
}

func TestGenerator_EmbeddedHeadersDisabledKeepsSentinel(t *testing.T) {
	content := []byte("hdr\x01/target\x00")
	gen := newTestGenerator(t, content, Options{Loop: true})

	entry, err := gen.Next()
	if err != nil {
		t.Fatal(err)
	}
	if entry.Target != "hdr\x01/target" || entry.HasHeader {
		t.Errorf("entry = %+v, want sentinel kept as data", entry)
	}
}

func TestGenerator_VerboseReportsTargets(t *testing.T) {
	var diag bytes.Buffer
	gen := newTestGenerator(t, []byte("/seen\x00"), Options{Loop: true, Verbose: true, Diag: &diag})

	if _, err := gen.Next(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(diag.String(), "/seen") {
		t.Errorf("verbose output %q does not mention the target", diag.String())
	}
}

type fakeCall struct {
	ops []string
}

func (c *fakeCall) AppendHeader(h string) { c.ops = append(c.ops, "header:"+h) }
func (c *fakeCall) SetTarget(tgt string)  { c.ops = append(c.ops, "target:"+tgt) }

func TestGenerator_ProduceAppendsHeaderBeforeTarget(t *testing.T) {
	content := []byte("A: 1\x01/t\x00")
	gen := newTestGenerator(t, content, Options{Loop: true, EmbeddedHeaders: true})

	var call fakeCall
	if err := gen.Produce(&call); err != nil {
		t.Fatal(err)
	}

	want := []string{"header:A: 1", "target:/t"}
	if len(call.ops) != len(want) || call.ops[0] != want[0] || call.ops[1] != want[1] {
		t.Errorf("ops = %v, want %v", call.ops, want)
	}
}

func TestGenerator_ProduceSkipsEmptyHeaderBlock(t *testing.T) {
	content := []byte("\x01/t\x00")
	gen := newTestGenerator(t, content, Options{Loop: true, EmbeddedHeaders: true})

	var call fakeCall
	if err := gen.Produce(&call); err != nil {
		t.Fatal(err)
	}

	if len(call.ops) != 1 || call.ops[0] != "target:/t" {
		t.Errorf("ops = %v, want only the target", call.ops)
	}
}

func TestGenerator_NextAfterClosePanics(t *testing.T) {
	gen := newTestGenerator(t, []byte("/a\x00"), Options{})
	if err := gen.Close(); err != nil {
		t.Fatal(err)
	}

	defer func() {
		if recover() == nil {
			t.Error("Next after Close did not panic")
		}
	}()
	gen.Next()
}
