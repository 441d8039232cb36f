package cmd

import (
	"runtime"
	"sort"
	"strconv"
	"sync"

	"github.com/kyubxy/simai-analyzer/chartfile"
	"github.com/kyubxy/simai-analyzer/constants"
	"github.com/kyubxy/simai-analyzer/db"
	"github.com/kyubxy/simai-analyzer/file"
	"github.com/kyubxy/simai-analyzer/log"
	"github.com/kyubxy/simai-analyzer/maidata"
	"github.com/kyubxy/simai-analyzer/model"
	"github.com/kyubxy/simai-analyzer/simai"
	"github.com/kyubxy/simai-analyzer/util"
	"github.com/remeh/sizedwaitgroup"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(indexCmd)
}

var indexCmd = &cobra.Command{
	Use:   "index [maxNum]",
	Short: "Creates index",
	Long:  `Deserializes every maidata.txt under MEDIA_PATH and writes one chart file per difficulty into INDEX_PATH.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var maxNum int
		if len(args) == 1 {
			arg1, err := strconv.Atoi(args[0])
			if err != nil {
				panic(err)
			}
			maxNum = arg1
		}

		Index(maxNum)
	},
}

func indexMaidataFile(path string) []model.ChartOverview {
	text, err := maidata.ReadFile(path)
	if err != nil {
		log.IDX.Warn("Skipping", "path", path, "err", err)
		return nil
	}
	res := simai.DeserializeMaidata(text)
	for _, err := range res.Errors {
		log.CHART.Printf("%v: %v", file.SongName(path), err)
	}

	var overviews []model.ChartOverview
	for _, difficulty := range util.GetKeys(res.Chart.Levels) {
		level := res.Chart.Levels[difficulty]
		filename, err := chartfile.Write(constants.GetIndexDir(), level.Chart)
		if err != nil {
			panic(err)
		}
		overviews = append(overviews, chartfile.Overview(filename, path, difficulty, res.Chart, level))

		if !db.Enabled() {
			continue
		}
		err = db.PutChartMetadata(model.ChartMetadata{
			Filename:   filename,
			Title:      res.Chart.Title,
			Artist:     res.Chart.Artist,
			Author:     res.Chart.Author,
			Difficulty: difficulty,
			Level:      level.Level,
		})
		if err != nil {
			log.IDX.Error("Could not store metadata", "file", filename, "err", err)
		}
	}
	return overviews
}

// Index rebuilds INDEX_PATH from the charts under MEDIA_PATH. maxNum of 0
// indexes everything.
func Index(maxNum int) {
	util.RecreateOutputDir()
	paths := util.GatherAllMaidataPaths(constants.GetMediaDir(), maxNum)
	fileNumMap := file.CreateFileNumMap(paths)

	var mu sync.Mutex
	all := []model.ChartOverview{}
	wg := sizedwaitgroup.New(runtime.NumCPU())
	for _, num := range util.GetKeys(fileNumMap) {
		wg.Add()
		go func(num model.FileNum, path string) {
			defer wg.Done()
			log.IDX.Printf("Processing %v of %v charts", num+1, len(fileNumMap))
			overviews := indexMaidataFile(path)
			mu.Lock()
			all = append(all, overviews...)
			mu.Unlock()
		}(num, fileNumMap[num])
	}
	wg.Wait()

	sort.Slice(all, func(i, j int) bool {
		if all[i].Source != all[j].Source {
			return all[i].Source < all[j].Source
		}
		return all[i].Difficulty < all[j].Difficulty
	})
	util.CreateBinary(util.GetAllChartsPath(), all)
	util.CreateBinary(util.GetFileNumToNamePath(), fileNumMap)
}
