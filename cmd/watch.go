package cmd

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/bep/debounce"
	"github.com/kyubxy/simai-analyzer/log"
	"github.com/kyubxy/simai-analyzer/util"
	"github.com/spf13/cobra"
)

const (
	pollInterval = 250 * time.Millisecond
	settleDelay  = 500 * time.Millisecond
)

func init() {
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Re-reads a chart whenever it changes",
	Long:  `Watches a maidata.txt (or a bare chart) and prints its errors every time it is saved.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		watch(ctx, args[0], pollInterval, settleDelay)
	},
}

func check(path string) {
	res, err := deserializeFile(path)
	if err != nil {
		log.FS.Error(err)
		return
	}
	for _, d := range util.GetKeys(res.Chart.Levels) {
		log.CHART.Print(describeLevel(d, res.Chart.Levels[d]))
	}
	for _, err := range res.Errors {
		log.CHART.Printf("error: %v", err)
	}
	if len(res.Errors) == 0 {
		log.CHART.Print("no errors")
	}
}

func modTime(path string) time.Time {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}

// watch polls path until ctx is done. Editors tend to write a file more
// than once per save, so checks only run once the file has settled.
func watch(ctx context.Context, path string, interval, settle time.Duration) {
	debounced := debounce.New(settle)
	last := modTime(path)
	check(path)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			current := modTime(path)
			if current.Equal(last) {
				continue
			}
			last = current
			debounced(func() { check(path) })
		}
	}
}
