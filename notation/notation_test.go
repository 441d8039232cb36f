package notation

import (
	"testing"

	"github.com/kyubxy/simai-analyzer/model"
	"github.com/stretchr/testify/assert"
)

func bpm(v float64) *float64 { return &v }

func idx(v int) *int { return &v }

func TestMapParseWellFormed(t *testing.T) {
	charts := []string{
		"{1},(2),3,4-5[6:7],(8)7,E",
		"{1},(2),3,4-5[6:7],(8)7,",
		"{1}, (2 ),3,4  -5[6:  7],(8)7,E    ",
	}

	for _, chart := range charts {
		t.Run(chart, func(t *testing.T) {
			result := MapParse(chart)
			assert.Len(t, result, 5)
			for _, r := range result {
				assert.Nil(t, r.Err)
			}
		})
	}
}

func TestMapParseNothing(t *testing.T) {
	result := MapParse(",,,")

	assert := assert.New(t)
	assert.Len(result, 3)
	for _, r := range result {
		assert.Nil(r.Err)
		assert.True(r.Cell.IsEmpty())
	}
}

func TestMapParseOneError(t *testing.T) {
	result := MapParse("BROKEN,(2),3,4-5[6:7],(8)7,E")

	assert := assert.New(t)
	assert.Len(result, 5)
	assert.NotNil(result[0].Err)
	assert.Equal(0, result[0].Err.Cell)
	assert.Equal("BROKEN", result[0].Err.Text)
	for _, r := range result[1:] {
		assert.Nil(r.Err)
	}
}

func TestMapParseStopsAtFirstTerminator(t *testing.T) {
	result := MapParse("BROKEN,(2),E,4-5[6:7],(8)7,E")
	assert.Len(t, result, 2)
}

func TestMapParseUnterminatedCell(t *testing.T) {
	result := MapParse("1,2")

	assert := assert.New(t)
	assert.Len(result, 2)
	assert.Nil(result[0].Err)
	assert.NotNil(result[1].Err)
	assert.Equal(1, result[1].Err.Cell)
}

func TestParseReplacesBrokenCells(t *testing.T) {
	cells, errs := Parse("(120)1,BROKEN,2,")

	assert := assert.New(t)
	assert.Len(cells, 3)
	assert.Len(errs, 1)
	assert.True(cells[1].IsEmpty())
	assert.Equal([]model.RawNote{model.RawTap{Button: 2}}, cells[2].Notes)

	var parseErr *ParseError
	assert.ErrorAs(errs[0], &parseErr)
	assert.Equal(1, parseErr.Cell)
}

func TestNormalize(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("1,2,", Normalize("1, || first\n 2,\t"))
	assert.Equal("(120)1,", Normalize("（１２０）１，"))
	assert.Equal("1/5,", Normalize("1`5,"))
}

func TestParseCellHeader(t *testing.T) {
	cell, err := ParseCell("(120){8}")

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(bpm(120), cell.Tempo)
	assert.Equal(&model.Subdivision{Kind: model.Divisions, Value: 8}, cell.Subdivision)
	assert.Empty(cell.Notes)

	cell, err = ParseCell("{#1.5}")
	assert.NoError(err)
	assert.Nil(cell.Tempo)
	assert.Equal(&model.Subdivision{Kind: model.Seconds, Value: 1.5}, cell.Subdivision)
}

func TestParseCellNotes(t *testing.T) {
	cases := []struct {
		text     string
		expected []model.RawNote
	}{
		{"1", []model.RawNote{model.RawTap{Button: 1}}},
		{"1bx", []model.RawNote{model.RawTap{Button: 1, Decorators: "bx"}}},
		{"1$$", []model.RawNote{model.RawTap{Button: 1, Decorators: "$$"}}},
		{"1/5", []model.RawNote{model.RawTap{Button: 1}, model.RawTap{Button: 5}}},
		{"15", []model.RawNote{model.RawTap{Button: 1}, model.RawTap{Button: 5}}},
		{"C", []model.RawNote{model.RawTouch{Region: "C"}}},
		{"B7f", []model.RawNote{model.RawTouch{Region: "B", Index: idx(7), Decorators: "f"}}},
		{"1h[4:1]", []model.RawNote{model.RawHold{
			Button: 1,
			Length: model.HoldLength{Kind: model.HoldRatio, Ratio: model.Ratio{Div: 4, Num: 1}},
		}}},
		{"1xhb[150#8:3]", []model.RawNote{model.RawHold{
			Button:     1,
			Decorators: "xb",
			Length:     model.HoldLength{Kind: model.HoldTempoRatio, Tempo: 150, Ratio: model.Ratio{Div: 8, Num: 3}},
		}}},
		{"2h[#2.5]", []model.RawNote{model.RawHold{
			Button: 2,
			Length: model.HoldLength{Kind: model.HoldSeconds, Seconds: 2.5},
		}}},
		{"3h", []model.RawNote{model.RawHold{Button: 3, Length: model.HoldLength{Kind: model.HoldSeconds}}}},
		{"Ch[2:1]", []model.RawNote{model.RawTouchHold{
			Region: "C",
			Length: model.HoldLength{Kind: model.HoldRatio, Ratio: model.Ratio{Div: 2, Num: 1}},
		}}},
		{"C1hf[4:1]", []model.RawNote{model.RawTouchHold{
			Region:     "C",
			Index:      idx(1),
			Decorators: "f",
			Length:     model.HoldLength{Kind: model.HoldRatio, Ratio: model.Ratio{Div: 4, Num: 1}},
		}}},
	}

	for _, c := range cases {
		t.Run(c.text, func(t *testing.T) {
			cell, err := ParseCell(c.text)
			assert.NoError(t, err)
			assert.Equal(t, c.expected, cell.Notes)
		})
	}
}

func parseSlide(t *testing.T, text string) model.RawSlide {
	cell, err := ParseCell(text)
	assert.NoError(t, err)
	assert.Len(t, cell.Notes, 1)
	slide, ok := cell.Notes[0].(model.RawSlide)
	assert.True(t, ok)
	return slide
}

func TestParseVariableSlide(t *testing.T) {
	slide := parseSlide(t, "1-5[4:1]")

	assert := assert.New(t)
	assert.Equal(1, slide.Button)
	length := model.SlideLength{Kind: model.SlideRatio, Ratio: model.Ratio{Div: 4, Num: 1}}
	assert.Equal([]model.RawSlidePath{{
		Join:     model.JoinVariable,
		Segments: []model.RawSegment{{Shape: "-", Vertices: []int{5}, Length: &length}},
	}}, slide.Paths)
}

func TestParseConstantSlide(t *testing.T) {
	slide := parseSlide(t, "1-4-1[4:1]b")

	assert := assert.New(t)
	assert.Equal([]model.RawSlidePath{{
		Join: model.JoinConstant,
		Segments: []model.RawSegment{
			{Shape: "-", Vertices: []int{4}},
			{Shape: "-", Vertices: []int{1}, Break: true},
		},
		Length: model.SlideLength{Kind: model.SlideRatio, Ratio: model.Ratio{Div: 4, Num: 1}},
		Break:  true,
	}}, slide.Paths)
}

func TestParseSlideBreakBeforeLength(t *testing.T) {
	slide := parseSlide(t, "1-5b[4:1]")
	assert.True(t, slide.Paths[0].Segments[0].Break)
}

func TestParseSlideShapes(t *testing.T) {
	cases := map[string]string{
		"1pp5[4:1]": "pp",
		"1qq5[4:1]": "qq",
		"1p5[4:1]":  "p",
		"1<5[4:1]":  "<",
		"1^5[4:1]":  "^",
		"1w5[4:1]":  "w",
		"1s5[4:1]":  "s",
	}

	for text, shape := range cases {
		t.Run(text, func(t *testing.T) {
			slide := parseSlide(t, text)
			assert.Equal(t, shape, slide.Paths[0].Segments[0].Shape)
		})
	}

	slide := parseSlide(t, "1V35[4:1]")
	assert.Equal(t, []int{3, 5}, slide.Paths[0].Segments[0].Vertices)
}

// the grammar takes up to two digits for any shape; the vertex count is
// only checked once the shape is known
func TestParseStraightWithTwoVertices(t *testing.T) {
	slide := parseSlide(t, "1-56[4:1]")
	assert.Equal(t, []int{5, 6}, slide.Paths[0].Segments[0].Vertices)
}

func TestParseEachSlide(t *testing.T) {
	slide := parseSlide(t, "1@-5[4:1]*>3[8:1]")

	assert := assert.New(t)
	assert.Equal("@", slide.Decorators)
	assert.Len(slide.Paths, 2)
	assert.Equal(">", slide.Paths[1].Segments[0].Shape)
}

func TestParseSlideLengths(t *testing.T) {
	cases := map[string]model.SlideLength{
		"1-5[8:3]":          {Kind: model.SlideRatio, Ratio: model.Ratio{Div: 8, Num: 3}},
		"1-5[160#2:3]":      {Kind: model.SlideTempoRatio, Tempo: 160, Ratio: model.Ratio{Div: 2, Num: 3}},
		"1-5[160#4]":        {Kind: model.SlideTempoSeconds, Tempo: 160, Seconds: 4},
		"1-5[1##2]":         {Kind: model.SlideDelaySeconds, Delay: 1, Seconds: 2},
		"1-5[1##4:1]":       {Kind: model.SlideDelayRatio, Delay: 1, Ratio: model.Ratio{Div: 4, Num: 1}},
		"1-5[1.5##160#4:1]": {Kind: model.SlideDelayTempoRatio, Delay: 1.5, Tempo: 160, Ratio: model.Ratio{Div: 4, Num: 1}},
	}

	for text, expected := range cases {
		t.Run(text, func(t *testing.T) {
			slide := parseSlide(t, text)
			assert.Equal(t, &expected, slide.Paths[0].Segments[0].Length)
		})
	}
}

func TestParseCellErrors(t *testing.T) {
	cases := []string{
		"BROKEN",
		"1-4[4:1]-5-1[4:1]",
		"1-5",
		"1h[1##4:1]",
		"1-5[4]",
		"1/",
		"(120",
		"1h[4:1:2]",
	}

	for _, text := range cases {
		t.Run(text, func(t *testing.T) {
			_, err := ParseCell(text)
			assert.Error(t, err)
		})
	}
}
