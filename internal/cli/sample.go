package cli

import (
	"bufio"
	"fmt"
	"os"
	"time"

	"github.com/brianvoe/gofakeit"
	"github.com/spf13/cobra"

	"github.com/bmcalindin/wlog/internal/wlog"
)

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Generate a synthetic workload log for smoke testing",
	Long: `Write a workload log of fabricated request targets, handy for trying
out replay runs without a real capture:

  wlog sample --out smoke.wlog --count 1000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		outPath, _ := cmd.Flags().GetString("out")
		count, _ := cmd.Flags().GetInt("count")
		seed, _ := cmd.Flags().GetInt64("seed")

		if outPath == "" {
			return fmt.Errorf("--out is required")
		}
		if count <= 0 {
			return fmt.Errorf("--count must be > 0")
		}

		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		gofakeit.Seed(seed)

		out, err := os.Create(outPath)
		if err != nil {
			return err
		}

		bw := bufio.NewWriter(out)
		for i := 0; i < count; i++ {
			bw.WriteString(gofakeit.Generate("/{lorem.word}/{lorem.word}.{file.extension}"))
			bw.WriteByte(wlog.Terminator)
		}
		err = bw.Flush()
		if cerr := out.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "wrote %d records to %s\n", count, outPath)
		return nil
	},
}

func init() {
	sampleCmd.Flags().String("out", "", "Output workload log file")
	sampleCmd.Flags().Int("count", 100, "Number of records to generate")
	sampleCmd.Flags().Int64("seed", 0, "Random seed (0 = time-based)")
}
