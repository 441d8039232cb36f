package linker

import (
	"github.com/kyubxy/simai-analyzer/absyn"
	"github.com/kyubxy/simai-analyzer/model"
	"github.com/pkg/errors"
)

// Link flattens the generated cells into a chart and fills in the cross
// references: every note's parent collection, and the tap <-> slide pair
// spawned by each slide note.
func Link(cells []absyn.Cell) (*model.Chart, error) {
	chart := &model.Chart{
		NoteCollections: []model.NoteCollection{},
		Slides:          []model.Slide{},
		Timing:          []model.TimingMarker{},
	}

	for _, cell := range cells {
		collection := model.NoLink
		if cell.NoteCollection != nil && len(cell.NoteCollection.Notes) > 0 {
			collection = len(chart.NoteCollections)
			for _, note := range cell.NoteCollection.Notes {
				note.SetParent(collection)
			}
			chart.NoteCollections = append(chart.NoteCollections, *cell.NoteCollection)
		}

		firstSlide := len(chart.Slides)
		for _, tagged := range cell.Slides {
			chart.Slides = append(chart.Slides, tagged.Slide)
		}

		for _, head := range cell.Heads {
			if err := linkHead(chart, cell, collection, firstSlide, head); err != nil {
				return nil, err
			}
		}

		if cell.Timing != nil {
			chart.Timing = append(chart.Timing, *cell.Timing)
		}
	}

	return chart, nil
}

func linkHead(chart *model.Chart, cell absyn.Cell, collection, firstSlide int, head absyn.SlideHead) error {
	if collection == model.NoLink {
		return errors.Wrapf(model.ErrLinking, "cell %d has a slide head but no notes", cell.Index)
	}
	notes := chart.NoteCollections[collection].Notes
	if head.Note < 0 || head.Note >= len(notes) {
		return errors.Wrapf(model.ErrLinking, "cell %d: slide head %d out of range", cell.Index, head.Note)
	}
	tap, ok := notes[head.Note].(*model.Tap)
	if !ok {
		return errors.Wrapf(model.ErrLinking, "cell %d: slide head %d is a %s", cell.Index, head.Note, notes[head.Note].Kind())
	}

	for i, tagged := range cell.Slides {
		if tagged.ID != head.ID {
			continue
		}
		slide := firstSlide + i
		tap.Slide = slide
		chart.Slides[slide].Tap = model.NoteRef{Collection: collection, Note: head.Note}
		return nil
	}
	return errors.Wrapf(model.ErrLinking, "cell %d: no slide with id %d", cell.Index, head.ID)
}
