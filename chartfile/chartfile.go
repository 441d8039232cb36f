package chartfile

import (
	"bytes"
	"encoding/gob"
	"os"
	"path/filepath"
	"regexp"

	"github.com/google/uuid"
	"github.com/kyubxy/simai-analyzer/model"
	"github.com/pkg/errors"
)

func init() {
	gob.Register(&model.Tap{})
	gob.Register(&model.Hold{})
	gob.Register(&model.Touch{})
	gob.Register(&model.TouchHold{})
}

var filenameRE = regexp.MustCompile("^[0-9a-fA-F]{8}-([0-9a-fA-F]{4}-){3}[0-9a-fA-F]{12}.dat$")

// IsChartFile reports whether filename looks like something Write produced.
func IsChartFile(filename string) bool {
	return filenameRE.MatchString(filename)
}

func NewFilename() string {
	return uuid.New().String() + ".dat"
}

func Encode(chart *model.Chart) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := gob.NewEncoder(buf).Encode(chart); err != nil {
		return nil, errors.Wrap(err, "could not encode chart")
	}
	return buf.Bytes(), nil
}

func Decode(data []byte) (*model.Chart, error) {
	var chart model.Chart
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&chart); err != nil {
		return nil, errors.Wrap(err, "could not decode chart")
	}
	return &chart, nil
}

// Write stores chart in dir under a fresh file name and returns that name.
func Write(dir string, chart *model.Chart) (string, error) {
	data, err := Encode(chart)
	if err != nil {
		return "", err
	}
	filename := NewFilename()
	if err := os.WriteFile(filepath.Join(dir, filename), data, 0666); err != nil {
		return "", errors.Wrapf(err, "write failed for chart file %s", filename)
	}
	return filename, nil
}

func Read(path string) (*model.Chart, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read chart file %s", path)
	}
	return Decode(data)
}

// Overview summarises a chart for the allCharts listing.
func Overview(filename, source, difficulty string, file *model.MaidataFile, level model.Level) model.ChartOverview {
	stats := level.Chart.Stats()
	return model.ChartOverview{
		Filename:   filename,
		Source:     source,
		Difficulty: difficulty,
		Level:      level.Level,
		Title:      file.Title,
		Artist:     file.Artist,
		Notes:      stats.Notes(),
		Slides:     stats.Slides,
		Length:     level.Chart.Length(),
	}
}
