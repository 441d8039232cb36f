package simai

import (
	"runtime"
	"strconv"

	"github.com/kyubxy/simai-analyzer/absyn"
	"github.com/kyubxy/simai-analyzer/linker"
	"github.com/kyubxy/simai-analyzer/maidata"
	"github.com/kyubxy/simai-analyzer/model"
	"github.com/kyubxy/simai-analyzer/notation"
	"github.com/remeh/sizedwaitgroup"
)

type LevelMetadata struct {
	Difficulty string
	ChartKey   string
	LevelKey   string
}

const (
	Easy     = "easy"
	Basic    = "basic"
	Advanced = "advanced"
	Expert   = "expert"
	Master   = "master"
	Remaster = "remaster"
	Original = "original"
)

var DefaultLevels = []LevelMetadata{
	{Difficulty: Easy, ChartKey: "inote_1", LevelKey: "lv_1"},
	{Difficulty: Basic, ChartKey: "inote_2", LevelKey: "lv_2"},
	{Difficulty: Advanced, ChartKey: "inote_3", LevelKey: "lv_3"},
	{Difficulty: Expert, ChartKey: "inote_4", LevelKey: "lv_4"},
	{Difficulty: Master, ChartKey: "inote_5", LevelKey: "lv_5"},
	{Difficulty: Remaster, ChartKey: "inote_6", LevelKey: "lv_6"},
	{Difficulty: Original, ChartKey: "inote_7", LevelKey: "lv_7"},
}

// Result holds the chart, nil when generation failed, along with every
// error met on the way. Cell level parse errors come first; a fatal error,
// if any, is last.
type Result[T any] struct {
	Chart  *T
	Errors []error
}

// Generate runs semantic analysis and linking over already parsed cells.
func Generate(cells []model.RawCell, offset float64) (*model.Chart, error) {
	parsed, err := absyn.Generate(cells, offset)
	if err != nil {
		return nil, err
	}
	return linker.Link(parsed)
}

// DeserializeSingle reads one difficulty worth of notation.
func DeserializeSingle(chart string) Result[model.Chart] {
	return DeserializeSingleAt(chart, 0)
}

// DeserializeSingleAt is DeserializeSingle with the first cell placed at
// offset seconds.
func DeserializeSingleAt(chart string, offset float64) Result[model.Chart] {
	cells, errs := notation.Parse(chart)
	c, err := Generate(cells, offset)
	if err != nil {
		return Result[model.Chart]{Errors: append(errs, err)}
	}
	return Result[model.Chart]{Chart: c, Errors: errs}
}

type levelResult struct {
	meta   LevelMetadata
	level  string
	result Result[model.Chart]
	found  bool
}

// DeserializeMaidata reads a whole maidata.txt. Every difficulty is
// generated on its own; one that fails is left out and its errors are
// reported.
func DeserializeMaidata(data string, customLevels ...LevelMetadata) Result[model.MaidataFile] {
	raw := maidata.Parse(data)
	offset, _ := strconv.ParseFloat(raw["first"], 64)

	levels := append(append([]LevelMetadata{}, DefaultLevels...), customLevels...)
	results := make([]levelResult, len(levels))

	wg := sizedwaitgroup.New(runtime.NumCPU())
	for i, meta := range levels {
		c, ok := raw[meta.ChartKey]
		if !ok {
			continue
		}
		wg.Add()
		go func(i int, meta LevelMetadata, c string) {
			defer wg.Done()
			results[i] = levelResult{
				meta:   meta,
				level:  raw[meta.LevelKey],
				result: DeserializeSingleAt(c, offset),
				found:  true,
			}
		}(i, meta, c)
	}
	wg.Wait()

	file := &model.MaidataFile{
		Title:  raw["title"],
		Artist: raw["artist"],
		Author: raw["des"],
		Offset: offset,
		Levels: make(map[string]model.Level),
		Raw:    raw,
	}
	var errs []error
	for _, r := range results {
		if !r.found {
			continue
		}
		errs = append(errs, r.result.Errors...)
		if r.result.Chart == nil {
			continue
		}
		file.Levels[r.meta.Difficulty] = model.Level{Chart: r.result.Chart, Level: r.level}
	}

	return Result[model.MaidataFile]{Chart: file, Errors: errs}
}
