package absyn

import (
	"fmt"

	"github.com/kyubxy/simai-analyzer/constants"
	"github.com/kyubxy/simai-analyzer/model"
	"github.com/kyubxy/simai-analyzer/timing"
	"github.com/pkg/errors"
)

// Error is a fatal failure while generating a chart. Cell is the zero based
// index of the raw cell that caused it.
type Error struct {
	Cell int
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("cell %d: %v", e.Cell, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// TaggedSlide is a slide together with the id of the raw note it came from.
type TaggedSlide struct {
	ID    int
	Slide model.Slide
}

// SlideHead points at the star tap spawned by the raw note with the same ID.
type SlideHead struct {
	ID   int
	Note int
}

// Cell is everything one raw cell produced, before linking.
type Cell struct {
	Index          int
	NoteCollection *model.NoteCollection
	Timing         *model.TimingMarker
	Slides         []TaggedSlide
	Heads          []SlideHead
}

// state is threaded from one cell to the next. time is always the start
// of the cell about to be processed.
type state struct {
	time float64
	bpm  *float64
	div  model.Subdivision
}

func (s state) tempo() (float64, error) {
	if s.bpm == nil {
		return 0, errors.WithStack(model.ErrMissingTempo)
	}
	return *s.bpm, nil
}

// Generate folds over the raw cells, resolving every note's time and
// building notes and slides. The chart starts at offset seconds.
func Generate(cells []model.RawCell, offset float64) ([]Cell, error) {
	st := state{
		time: offset,
		div:  model.Subdivision{Kind: model.Divisions, Value: constants.DefaultDivisions},
	}
	res := make([]Cell, 0, len(cells))
	for i, raw := range cells {
		cell, next, err := parseCell(i, raw, st)
		if err != nil {
			return nil, &Error{Cell: i, Err: err}
		}
		res = append(res, cell)
		st = next
	}
	return res, nil
}

func parseCell(index int, raw model.RawCell, prev state) (Cell, state, error) {
	st := prev
	if raw.Tempo != nil {
		bpm := *raw.Tempo
		st.bpm = &bpm
	}
	if raw.Subdivision != nil {
		st.div = *raw.Subdivision
	}

	cell := Cell{Index: index}
	if raw.Tempo != nil {
		cell.Timing = &model.TimingMarker{Time: st.time, Tempo: *raw.Tempo}
	}

	var notes []model.Note
	for id, rn := range raw.Notes {
		note, err := parseNote(rn, st)
		if err != nil {
			return Cell{}, prev, err
		}
		notes = append(notes, note)

		slide, ok := rn.(model.RawSlide)
		if !ok {
			continue
		}
		s, err := parseSlide(slide, st)
		if err != nil {
			return Cell{}, prev, err
		}
		cell.Slides = append(cell.Slides, TaggedSlide{ID: id, Slide: s})
		cell.Heads = append(cell.Heads, SlideHead{ID: id, Note: len(notes) - 1})
	}
	if len(notes) > 0 {
		cell.NoteCollection = &model.NoteCollection{Time: st.time, Notes: notes}
	}

	var delta float64
	var err error
	if st.div.Kind == model.Seconds {
		delta, err = timing.ResolveBeat(st.div, 0)
	} else {
		var bpm float64
		bpm, err = st.tempo()
		if err != nil {
			return Cell{}, prev, err
		}
		delta, err = timing.ResolveBeat(st.div, bpm)
	}
	if err != nil {
		return Cell{}, prev, err
	}
	st.time += delta

	return cell, st, nil
}
