package chartfile

import (
	"path/filepath"
	"testing"

	"github.com/kyubxy/simai-analyzer/model"
	"github.com/kyubxy/simai-analyzer/simai"
	"github.com/stretchr/testify/assert"
)

func TestWriteAndRead(t *testing.T) {
	res := simai.DeserializeSingle("(120)1-5[4:1]/Ch[2:1],2h[4:1]/B3f,")
	assert.Empty(t, res.Errors)

	dir := t.TempDir()
	filename, err := Write(dir, res.Chart)

	assert := assert.New(t)
	assert.NoError(err)
	assert.True(IsChartFile(filename))

	chart, err := Read(filepath.Join(dir, filename))
	assert.NoError(err)
	assert.Equal(res.Chart, chart)

	tap := chart.NoteCollections[0].Notes[0].(*model.Tap)
	assert.Same(tap, chart.SpawningTap(chart.SlideOf(tap)))
}

func TestIsChartFile(t *testing.T) {
	assert := assert.New(t)
	assert.True(IsChartFile(NewFilename()))
	assert.False(IsChartFile("allCharts.dat"))
	assert.False(IsChartFile("fileNumToName.dat"))
}

func TestReadMissing(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "nope.dat"))
	assert.Error(t, err)
}

func TestOverview(t *testing.T) {
	res := simai.DeserializeMaidata("&title=t\n&artist=a\n&lv_5=12\n&inote_5=(120)1,2-6[4:1],\n")
	file := res.Chart

	o := Overview("x.dat", "songs/t/maidata.txt", simai.Master, file, file.Levels[simai.Master])
	assert.Equal(t, model.ChartOverview{
		Filename:   "x.dat",
		Source:     "songs/t/maidata.txt",
		Difficulty: simai.Master,
		Level:      "12",
		Title:      "t",
		Artist:     "a",
		Notes:      2,
		Slides:     1,
		Length:     1.5,
	}, o)
}
