package cli

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/bmcalindin/wlog/internal/config"
	"github.com/bmcalindin/wlog/internal/engine"
	"github.com/bmcalindin/wlog/internal/output"
	"github.com/bmcalindin/wlog/internal/wlog"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Replay a workload log against a server",
	Long: `Replay every record of a workload log as an HTTP request.

Flags mode:
  wlog run --file requests.wlog --base-url http://localhost:8080

Config file mode (flags still override):
  wlog run --config run.yaml

With --loop the replay repeats indefinitely; without it, the run drains
in-flight requests and stops once the log is exhausted.`,
	RunE: runReplay,
}

func init() {
	runCmd.Flags().String("config", "", "Config file (YAML or JSON)")
	runCmd.Flags().String("file", "", "Workload log file to replay")
	runCmd.Flags().String("base-url", "", "Base URL prepended to captured targets")
	runCmd.Flags().Bool("loop", false, "Restart from the top when the log is exhausted")
	runCmd.Flags().Bool("embedded-headers", false, "Records carry per-request header blocks")
	runCmd.Flags().Int("workers", 1, "Concurrent request issuers")
	runCmd.Flags().Float64("rate", 0, "Requests per second (0 = unlimited)")
	runCmd.Flags().Duration("timeout", 30*time.Second, "Per-request timeout")
	runCmd.Flags().StringArray("add-header", nil, "Header applied to every request (escape grammar, repeatable)")
	runCmd.Flags().BoolP("verbose", "v", false, "Report each issued request")
}

func runReplay(cmd *cobra.Command, args []string) error {
	cfg, err := resolveRunConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	extra := http.Header{}
	for _, raw := range cfg.AddHeaders {
		decoded := wlog.Unescape([]byte(raw), func(format string, a ...interface{}) {
			fmt.Fprintf(os.Stderr, "wlog: "+format+"\n", a...)
		})
		engine.ParseHeaderBlock(extra, string(decoded))
	}

	eng := engine.New(engine.Config{
		BaseURL:      cfg.BaseURL,
		Workers:      cfg.Workers,
		Rate:         cfg.Rate,
		Timeout:      cfg.Timeout,
		ExtraHeaders: extra,
		Verbose:      cfg.Verbose,
	})

	gen, err := wlog.NewGenerator(wlog.Options{
		Path:            cfg.File,
		Loop:            cfg.Loop,
		EmbeddedHeaders: cfg.EmbeddedHeaders,
		Verbose:         cfg.Verbose,
		OnExhausted:     eng.Stop,
	})
	if err != nil {
		return err
	}
	defer gen.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	results, err := eng.Run(ctx, gen)
	if err != nil {
		return err
	}

	output.NewSummary(os.Stdout, output.SchemeFor(os.Stdout)).Print(results)
	return nil
}

// resolveRunConfig merges the config file (if any) with command line
// flags; explicitly set flags win.
func resolveRunConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := &config.Config{}

	if path, _ := cmd.Flags().GetString("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("file") {
		cfg.File, _ = flags.GetString("file")
	}
	if flags.Changed("base-url") {
		cfg.BaseURL, _ = flags.GetString("base-url")
	}
	if flags.Changed("loop") {
		cfg.Loop, _ = flags.GetBool("loop")
	}
	if flags.Changed("embedded-headers") {
		cfg.EmbeddedHeaders, _ = flags.GetBool("embedded-headers")
	}
	if flags.Changed("workers") {
		cfg.Workers, _ = flags.GetInt("workers")
	}
	if flags.Changed("rate") {
		cfg.Rate, _ = flags.GetFloat64("rate")
	}
	if flags.Changed("timeout") {
		cfg.Timeout, _ = flags.GetDuration("timeout")
	}
	if flags.Changed("add-header") {
		cfg.AddHeaders, _ = flags.GetStringArray("add-header")
	}
	if flags.Changed("verbose") {
		cfg.Verbose, _ = flags.GetBool("verbose")
	}

	return cfg, nil
}
