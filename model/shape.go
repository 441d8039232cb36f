package model

import "github.com/pkg/errors"

type SlideShape int

const (
	Straight SlideShape = iota
	ShortArc
	VShape
	CClockwise
	Clockwise
	GrandV
	PShape
	QShape
	PPShape
	QQShape
	SShape
	ZShape
	Fan
)

var slideShapeNames = [...]string{
	Straight:   "straight",
	ShortArc:   "shortArc",
	VShape:     "vShape",
	CClockwise: "cClockwise",
	Clockwise:  "clockwise",
	GrandV:     "grandV",
	PShape:     "pShape",
	QShape:     "qShape",
	PPShape:    "ppShape",
	QQShape:    "qqShape",
	SShape:     "sShape",
	ZShape:     "zShape",
	Fan:        "fan",
}

func (s SlideShape) String() string {
	if s < 0 || int(s) >= len(slideShapeNames) {
		return "unknown"
	}
	return slideShapeNames[s]
}

func (s SlideShape) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *SlideShape) UnmarshalText(text []byte) error {
	for shape, name := range slideShapeNames {
		if name == string(text) {
			*s = SlideShape(shape)
			return nil
		}
	}
	return errors.Errorf("unknown slide shape [%s]", text)
}

// VertexCount is the number of buttons a segment of this shape touches,
// head included.
func (s SlideShape) VertexCount() int {
	if s == GrandV {
		return 3
	}
	return 2
}
