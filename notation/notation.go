package notation

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/kyubxy/simai-analyzer/constants"
	"github.com/kyubxy/simai-analyzer/model"
	"github.com/pkg/errors"
	"golang.org/x/text/width"
)

// ParseError is a cell that could not be tokenized. It never stops the
// rest of the chart from being read.
type ParseError struct {
	Cell int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cell %d [%s]: %v", e.Cell, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

type CellResult struct {
	Cell model.RawCell
	Err  *ParseError
}

// Normalize folds fullwidth characters, drops || comments and removes all
// whitespace.
func Normalize(chart string) string {
	lines := strings.Split(chart, "\n")
	for i, line := range lines {
		if idx := strings.Index(line, "||"); idx >= 0 {
			lines[i] = line[:idx]
		}
	}
	folded := width.Fold.String(strings.Join(lines, "\n"))
	// ` is a pseudo each, close enough to / for our purposes
	folded = strings.ReplaceAll(folded, "`", "/")
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, folded)
}

// MapParse splits a chart into cells and parses each one on its own.
// Reading stops at the first E cell.
func MapParse(chart string) []CellResult {
	fragments := strings.Split(Normalize(chart), ",")
	var res []CellResult
	for i, text := range fragments {
		if text == constants.Terminator {
			break
		}
		isLast := i == len(fragments)-1
		if isLast {
			if text == "" {
				break
			}
			res = append(res, CellResult{Err: &ParseError{
				Cell: i,
				Text: text,
				Err:  errors.New("cell is not terminated by ','"),
			}})
			break
		}

		cell, err := ParseCell(text)
		if err != nil {
			res = append(res, CellResult{Err: &ParseError{Cell: i, Text: text, Err: err}})
			continue
		}
		res = append(res, CellResult{Cell: cell})
	}
	return res
}

// Parse returns one raw cell per cell of notation. Cells that fail to parse
// are replaced by empty cells so timing is unaffected, and reported.
func Parse(chart string) ([]model.RawCell, []error) {
	results := MapParse(chart)
	cells := make([]model.RawCell, 0, len(results))
	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, r.Err)
			cells = append(cells, model.RawCell{})
			continue
		}
		cells = append(cells, r.Cell)
	}
	return cells, errs
}

// ParseCell parses the text of a single cell, without the trailing comma.
func ParseCell(text string) (model.RawCell, error) {
	if text == "" {
		return model.RawCell{}, nil
	}
	node, err := cellParser.ParseString("", text)
	if err != nil {
		return model.RawCell{}, err
	}
	return toRawCell(node)
}

func toRawCell(node *cellNode) (model.RawCell, error) {
	var cell model.RawCell
	cell.Tempo = node.Tempo
	if node.Length != nil {
		kind := model.Divisions
		if node.Length.Seconds {
			kind = model.Seconds
		}
		cell.Subdivision = &model.Subdivision{Kind: kind, Value: node.Length.Value}
	}
	for _, n := range node.Notes {
		note, err := toRawNote(n)
		if err != nil {
			return model.RawCell{}, err
		}
		cell.Notes = append(cell.Notes, note)
	}
	return cell, nil
}

func toRawNote(n *noteNode) (model.RawNote, error) {
	if n.Touch != nil {
		return toRawTouch(n.Touch)
	}
	l := n.Laned
	decorators := strings.Join(l.Decorators, "")
	switch {
	case l.Hold != nil:
		length := model.HoldLength{Kind: model.HoldSeconds}
		if l.Hold.Length != nil {
			var err error
			if length, err = holdLength(l.Hold.Length.Tokens); err != nil {
				return nil, err
			}
		}
		return model.RawHold{
			Button:     l.Button,
			Decorators: decorators + strings.Join(l.Hold.Decorators, ""),
			Length:     length,
		}, nil
	case l.Slide != nil:
		paths := make([]model.RawSlidePath, 0, len(l.Slide.Paths))
		for _, p := range l.Slide.Paths {
			path, err := toRawSlidePath(p)
			if err != nil {
				return nil, err
			}
			paths = append(paths, path)
		}
		return model.RawSlide{Button: l.Button, Decorators: decorators, Paths: paths}, nil
	default:
		return model.RawTap{Button: l.Button, Decorators: decorators}, nil
	}
}

func toRawTouch(t *touchNode) (model.RawNote, error) {
	decorators := strings.Join(t.Decorators, "")
	if t.Hold == nil {
		return model.RawTouch{Region: t.Region, Index: t.Index, Decorators: decorators}, nil
	}
	length := model.HoldLength{Kind: model.HoldSeconds}
	if t.Hold.Length != nil {
		var err error
		if length, err = holdLength(t.Hold.Length.Tokens); err != nil {
			return nil, err
		}
	}
	return model.RawTouchHold{
		Region:     t.Region,
		Index:      t.Index,
		Decorators: decorators + strings.Join(t.Hold.Decorators, ""),
		Length:     length,
	}, nil
}

// A path is variable when every segment has a length and constant when only
// the last does.
func toRawSlidePath(p *pathNode) (model.RawSlidePath, error) {
	var withLength int
	segments := make([]model.RawSegment, 0, len(p.Segments))
	for _, s := range p.Segments {
		seg := model.RawSegment{Shape: s.Shape, Vertices: s.Vertices, Break: s.Break || s.BreakAfter}
		if s.Length != nil {
			length, err := slideLength(s.Length.Tokens)
			if err != nil {
				return model.RawSlidePath{}, err
			}
			seg.Length = &length
			withLength++
		}
		segments = append(segments, seg)
	}

	last := segments[len(segments)-1]
	switch {
	case withLength == len(segments):
		return model.RawSlidePath{Join: model.JoinVariable, Segments: segments}, nil
	case withLength == 1 && last.Length != nil:
		length := *last.Length
		segments[len(segments)-1].Length = nil
		return model.RawSlidePath{
			Join:     model.JoinConstant,
			Segments: segments,
			Length:   length,
			Break:    last.Break,
		}, nil
	case withLength == 0:
		return model.RawSlidePath{}, errors.New("slide has no length")
	default:
		return model.RawSlidePath{}, errors.New("slide mixes constant and variable lengths")
	}
}
