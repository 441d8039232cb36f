package absyn

import (
	"github.com/kyubxy/simai-analyzer/model"
	"github.com/kyubxy/simai-analyzer/timing"
	"github.com/pkg/errors"
)

var slideShapes = map[string]model.SlideShape{
	"pp": model.PPShape,
	"qq": model.QQShape,
	"p":  model.PShape,
	"q":  model.QShape,
	"-":  model.Straight,
	"<":  model.CClockwise,
	">":  model.Clockwise,
	"^":  model.ShortArc,
	"v":  model.VShape,
	"s":  model.SShape,
	"z":  model.ZShape,
	"w":  model.Fan,
	"V":  model.GrandV,
}

func parseSlideShape(symbol string) (model.SlideShape, error) {
	shape, ok := slideShapes[symbol]
	if !ok {
		return 0, errors.Wrapf(model.ErrUnknownSlideShape, "unidentified slide type [%s]", symbol)
	}
	return shape, nil
}

func parseSlide(s model.RawSlide, st state) (model.Slide, error) {
	paths := make([]model.SlidePath, 0, len(s.Paths))
	for _, p := range s.Paths {
		path, err := parseSlidePath(s.Button, p, st)
		if err != nil {
			return model.Slide{}, err
		}
		paths = append(paths, path)
	}
	return model.Slide{
		Time:  st.time,
		Paths: paths,
		Tap:   model.NoNote,
	}, nil
}

func parseSlidePath(head int, p model.RawSlidePath, st state) (model.SlidePath, error) {
	if len(p.Segments) == 0 {
		return model.SlidePath{}, errors.Wrap(model.ErrVertexCount, "slide path has no segments")
	}
	last := p.Segments[len(p.Segments)-1]

	switch p.Join {
	case model.JoinConstant:
		delay, length, err := slideLength(p.Length, st)
		if err != nil {
			return model.SlidePath{}, err
		}
		segments, err := constantSegments(head, p.Segments, length)
		if err != nil {
			return model.SlidePath{}, err
		}
		return model.SlidePath{
			Delay:      delay,
			Segments:   segments,
			Decorators: model.NoteDecorator{Break: p.Break || last.Break},
		}, nil
	case model.JoinVariable:
		if p.Segments[0].Length == nil {
			return model.SlidePath{}, errors.Wrap(model.ErrDivision, "slide segment has no length")
		}
		delay, _, err := slideLength(*p.Segments[0].Length, st)
		if err != nil {
			return model.SlidePath{}, err
		}
		segments, err := variableSegments(head, p.Segments, st)
		if err != nil {
			return model.SlidePath{}, err
		}
		// break markers on inner segments are allowed but mean nothing
		return model.SlidePath{
			Delay:      delay,
			Segments:   segments,
			Decorators: model.NoteDecorator{Break: last.Break},
		}, nil
	default:
		return model.SlidePath{}, errors.Errorf("unknown slide join %d", p.Join)
	}
}

func tailVertex(seg model.RawSegment) int {
	return seg.Vertices[len(seg.Vertices)-1]
}

func segmentNoDuration(head int, seg model.RawSegment) (model.SlideSegment, error) {
	shape, err := parseSlideShape(seg.Shape)
	if err != nil {
		return model.SlideSegment{}, err
	}
	raw := append([]int{head}, seg.Vertices...)
	if len(raw) != shape.VertexCount() {
		return model.SlideSegment{}, errors.Wrapf(model.ErrVertexCount,
			"%s needs %d vertices, got %d", shape, shape.VertexCount(), len(raw))
	}
	verts := make([]model.Button, 0, len(raw))
	for _, v := range raw {
		b, err := parseButton(v)
		if err != nil {
			return model.SlideSegment{}, err
		}
		verts = append(verts, b)
	}
	return model.SlideSegment{Shape: shape, Vertices: verts}, nil
}

// constantSegments hands the whole remaining length to the head segment and
// divides it by the number of segments left before recursing, so the
// durations come out as L, L/N, L/(N(N-1)), ...
func constantSegments(head int, tail []model.RawSegment, duration float64) ([]model.SlideSegment, error) {
	if len(tail) == 0 {
		return nil, nil
	}
	seg, err := segmentNoDuration(head, tail[0])
	if err != nil {
		return nil, err
	}
	seg.Duration = duration
	rest, err := constantSegments(tailVertex(tail[0]), tail[1:], duration/float64(len(tail)))
	if err != nil {
		return nil, err
	}
	return append([]model.SlideSegment{seg}, rest...), nil
}

func variableSegments(head int, tail []model.RawSegment, st state) ([]model.SlideSegment, error) {
	if len(tail) == 0 {
		return nil, nil
	}
	seg, err := segmentNoDuration(head, tail[0])
	if err != nil {
		return nil, err
	}
	if tail[0].Length == nil {
		return nil, errors.Wrap(model.ErrDivision, "slide segment has no length")
	}
	_, seg.Duration, err = slideLength(*tail[0].Length, st)
	if err != nil {
		return nil, err
	}
	rest, err := variableSegments(tailVertex(tail[0]), tail[1:], st)
	if err != nil {
		return nil, err
	}
	return append([]model.SlideSegment{seg}, rest...), nil
}

// slideLength returns the wait between the star tap and the slide start, and
// the time the slide body takes.
func slideLength(l model.SlideLength, st state) (delay, length float64, err error) {
	switch l.Kind {
	case model.SlideRatio:
		bpm, err := st.tempo()
		if err != nil {
			return 0, 0, err
		}
		if delay, err = timing.Unquantise(4, 1, bpm); err != nil {
			return 0, 0, err
		}
		length, err = timing.Unquantise(l.Ratio.Div, l.Ratio.Num, bpm)
		return delay, length, err
	case model.SlideTempoRatio:
		// the override only moves the delay, the body follows the cell tempo
		bpm, err := st.tempo()
		if err != nil {
			return 0, 0, err
		}
		if delay, err = timing.Unquantise(4, 1, l.Tempo); err != nil {
			return 0, 0, err
		}
		length, err = timing.Unquantise(l.Ratio.Div, l.Ratio.Num, bpm)
		return delay, length, err
	case model.SlideTempoSeconds:
		delay, err = timing.Unquantise(4, 1, l.Tempo)
		return delay, l.Seconds, err
	case model.SlideDelaySeconds:
		return l.Delay, l.Seconds, nil
	case model.SlideDelayRatio:
		bpm, err := st.tempo()
		if err != nil {
			return 0, 0, err
		}
		length, err = timing.Unquantise(l.Ratio.Div, l.Ratio.Num, bpm)
		return l.Delay, length, err
	case model.SlideDelayTempoRatio:
		length, err = timing.Unquantise(l.Ratio.Div, l.Ratio.Num, l.Tempo)
		return l.Delay, length, err
	default:
		return 0, 0, errors.Errorf("unknown slide length %d", l.Kind)
	}
}
