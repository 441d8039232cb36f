package cmd

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/kyubxy/simai-analyzer/chartfile"
	"github.com/kyubxy/simai-analyzer/constants"
	"github.com/kyubxy/simai-analyzer/model"
	"github.com/kyubxy/simai-analyzer/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Creates a report",
	Long:  `Summarises the chart files in INDEX_PATH.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Print(report())
	},
}

type chartsReport struct {
	numFiles     int64
	numBytes     int64
	notes        []int
	slides       []int
	difficulties map[string]int
	longest      model.ChartOverview
}

func analyzeCharts() chartsReport {
	report := chartsReport{difficulties: make(map[string]int)}

	entries, err := os.ReadDir(constants.GetIndexDir())
	if err != nil {
		panic("Could not read dir because: " + err.Error())
	}
	for _, entry := range entries {
		if !chartfile.IsChartFile(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			panic("Could not get file stats: " + err.Error())
		}
		report.numFiles += 1
		report.numBytes += info.Size()
	}

	overviews := util.ReadBinaryOrPanic[[]model.ChartOverview](util.GetAllChartsPath())
	for _, o := range overviews {
		report.notes = append(report.notes, o.Notes)
		report.slides = append(report.slides, o.Slides)
		report.difficulties[o.Difficulty] += 1
		if o.Length > report.longest.Length {
			report.longest = o
		}
	}
	return report
}

func report() string {
	r := analyzeCharts()
	out := fmt.Sprintf("chart files: %v (%v)\n", r.numFiles, humanize.Bytes(uint64(r.numBytes)))
	out += fmt.Sprintf("notes: %v\n", humanize.Comma(int64(util.Sum(r.notes))))
	out += fmt.Sprintf("slides: %v\n", humanize.Comma(int64(util.Sum(r.slides))))
	for _, d := range util.GetKeys(r.difficulties) {
		out += fmt.Sprintf("%v: %v\n", d, r.difficulties[d])
	}
	if r.longest.Filename != "" {
		out += fmt.Sprintf("longest: %v [%v] %v\n", r.longest.Title, r.longest.Difficulty, formatLength(r.longest.Length))
	}
	return out
}
