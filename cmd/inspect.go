package cmd

import (
	"fmt"
	"time"

	"github.com/hako/durafmt"
	"github.com/kyubxy/simai-analyzer/model"
	"github.com/kyubxy/simai-analyzer/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file> [difficulty]",
	Short: "Inspects a chart",
	Long:  `Deserializes a maidata.txt (or a bare chart) and prints what every difficulty contains.`,
	Args:  cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		var difficulty string
		if len(args) == 2 {
			difficulty = args[1]
		}
		inspect(args[0], difficulty)
	},
}

func formatLength(seconds float64) string {
	d := time.Duration(seconds * float64(time.Second)).Round(time.Millisecond)
	return durafmt.Parse(d).LimitFirstN(2).String()
}

func describeLevel(difficulty string, level model.Level) string {
	stats := level.Chart.Stats()
	return fmt.Sprintf("%-9s lv %-4s %4d notes (%d taps, %d holds, %d touches, %d touch holds) %3d slides %3d breaks, %s",
		difficulty, level.Level, stats.Notes(), stats.Taps, stats.Holds, stats.Touches, stats.TouchHolds,
		stats.Slides, stats.Breaks, formatLength(level.Chart.Length()))
}

func inspect(path string, difficulty string) {
	res, err := deserializeFile(path)
	if err != nil {
		panic(err)
	}
	file := res.Chart

	fmt.Printf("title: %v\n", file.Title)
	fmt.Printf("artist: %v\n", file.Artist)
	if file.Author != "" {
		fmt.Printf("chart by: %v\n", file.Author)
	}
	for _, d := range util.GetKeys(file.Levels) {
		if difficulty != "" && d != difficulty {
			continue
		}
		fmt.Println(describeLevel(d, file.Levels[d]))
	}
	for _, err := range res.Errors {
		fmt.Printf("error: %v\n", err)
	}
}
