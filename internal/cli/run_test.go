package cli

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestRunCommand_ReplaysAgainstServer(t *testing.T) {
	var count int32
	var gotHeader atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&count, 1)
		gotHeader.Store(r.Header.Get("X-Run"))
	}))
	defer srv.Close()

	path := writeLogFile(t, []byte("/a\x00/b\x00"))

	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetErr(&out)
	RootCmd.SetArgs([]string{
		"run",
		"--file", path,
		"--base-url", srv.URL,
		"--add-header", `X-Run: e2e\n`,
	})

	if err := RootCmd.Execute(); err != nil {
		t.Fatal(err)
	}

	// Two records plus the entry produced by the exhausting wrap.
	if got := atomic.LoadInt32(&count); got != 3 {
		t.Errorf("server saw %d requests, want 3", got)
	}
	if h, _ := gotHeader.Load().(string); h != "e2e" {
		t.Errorf("X-Run header = %q, want e2e", h)
	}
}

func TestRootCommand_HasSubcommands(t *testing.T) {
	for _, name := range []string{"run", "inspect", "build", "sample"} {
		found := false
		for _, c := range RootCmd.Commands() {
			if c.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command is missing subcommand %q", name)
		}
	}
}
