package model

import (
	"encoding/json"
	"math"

	"github.com/pkg/errors"
)

// Button is a zero based lane index, 0 through 7.
type Button int

type SensorRegion string

const (
	RegionA SensorRegion = "A"
	RegionB SensorRegion = "B"
	RegionC SensorRegion = "C"
	RegionD SensorRegion = "D"
	RegionE SensorRegion = "E"
)

type Sensor struct {
	Region SensorRegion `json:"area"`
	Index  int          `json:"index"`
}

type NoteDecorator struct {
	Ex    bool `json:"ex"`
	Break bool `json:"break"`
}

type TouchDecorator struct {
	Hanabi bool `json:"hanabi"`
}

type TapStyle int

const (
	Circle TapStyle = iota
	Star
	StationaryStar
)

var tapStyleNames = map[TapStyle]string{
	Circle:         "circle",
	Star:           "star",
	StationaryStar: "starStationary",
}

func (s TapStyle) String() string { return tapStyleNames[s] }

func (s TapStyle) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *TapStyle) UnmarshalText(text []byte) error {
	for style, name := range tapStyleNames {
		if name == string(text) {
			*s = style
			return nil
		}
	}
	return errors.Errorf("unknown tap style [%s]", text)
}

type NoteKind string

const (
	KindTap       NoteKind = "tap"
	KindHold      NoteKind = "hold"
	KindTouch     NoteKind = "touch"
	KindTouchHold NoteKind = "touchHold"
)

// NoLink marks an unset arena index.
const NoLink = -1

// Note is one of *Tap, *Hold, *Touch or *TouchHold.
//
// Parent is the index of the owning NoteCollection in Chart.NoteCollections.
type Note interface {
	Kind() NoteKind
	Parent() int
	SetParent(i int)
	isNote()
}

type Tap struct {
	Collection int           `json:"parent"`
	Location   Button        `json:"location"`
	Decorators NoteDecorator `json:"decorators"`
	Style      TapStyle      `json:"style"`
	// index into Chart.Slides, NoLink for plain taps
	Slide int `json:"slide"`
}

type Hold struct {
	Collection int           `json:"parent"`
	Location   Button        `json:"location"`
	Decorators NoteDecorator `json:"decorators"`
	Duration   float64       `json:"duration"`
}

type Touch struct {
	Collection int            `json:"parent"`
	Location   Sensor         `json:"location"`
	Decorators TouchDecorator `json:"decorators"`
}

type TouchHold struct {
	Collection int            `json:"parent"`
	Location   Sensor         `json:"location"`
	Decorators TouchDecorator `json:"decorators"`
	Duration   float64        `json:"duration"`
}

func (*Tap) Kind() NoteKind       { return KindTap }
func (*Hold) Kind() NoteKind      { return KindHold }
func (*Touch) Kind() NoteKind     { return KindTouch }
func (*TouchHold) Kind() NoteKind { return KindTouchHold }

func (n *Tap) Parent() int       { return n.Collection }
func (n *Hold) Parent() int      { return n.Collection }
func (n *Touch) Parent() int     { return n.Collection }
func (n *TouchHold) Parent() int { return n.Collection }

func (n *Tap) SetParent(i int)       { n.Collection = i }
func (n *Hold) SetParent(i int)      { n.Collection = i }
func (n *Touch) SetParent(i int)     { n.Collection = i }
func (n *TouchHold) SetParent(i int) { n.Collection = i }

func (*Tap) isNote()       {}
func (*Hold) isNote()      {}
func (*Touch) isNote()     {}
func (*TouchHold) isNote() {}

// The JSON form carries a "type" discriminator so clients can tell the
// variants apart.

func (n *Tap) MarshalJSON() ([]byte, error) {
	type tap Tap
	return json.Marshal(struct {
		Type NoteKind `json:"type"`
		*tap
	}{KindTap, (*tap)(n)})
}

func (n *Hold) MarshalJSON() ([]byte, error) {
	type hold Hold
	return json.Marshal(struct {
		Type NoteKind `json:"type"`
		*hold
	}{KindHold, (*hold)(n)})
}

func (n *Touch) MarshalJSON() ([]byte, error) {
	type touch Touch
	return json.Marshal(struct {
		Type NoteKind `json:"type"`
		*touch
	}{KindTouch, (*touch)(n)})
}

func (n *TouchHold) MarshalJSON() ([]byte, error) {
	type touchHold TouchHold
	return json.Marshal(struct {
		Type NoteKind `json:"type"`
		*touchHold
	}{KindTouchHold, (*touchHold)(n)})
}

// NoteCollection holds every note (slides excluded) that hits the judgement
// line at Time.
type NoteCollection struct {
	Time  float64 `json:"time"`
	Notes []Note  `json:"contents"`
}

// NoteRef addresses a note inside Chart.NoteCollections.
type NoteRef struct {
	Collection int `json:"collection"`
	Note       int `json:"note"`
}

var NoNote = NoteRef{Collection: NoLink, Note: NoLink}

func (r NoteRef) Valid() bool { return r.Collection >= 0 && r.Note >= 0 }

type Slide struct {
	Time  float64     `json:"time"`
	Paths []SlidePath `json:"paths"`
	Tap   NoteRef     `json:"tap"`
}

type SlidePath struct {
	Delay      float64        `json:"delay"`
	Segments   []SlideSegment `json:"slideSegments"`
	Decorators NoteDecorator  `json:"decorators"`
}

type SlideSegment struct {
	Shape    SlideShape `json:"type"`
	Duration float64    `json:"duration"`
	Vertices []Button   `json:"vertices"`
}

// TimingMarker sets the tempo from Time onwards.
type TimingMarker struct {
	Time  float64 `json:"time"`
	Tempo float64 `json:"bpm"`
}

type Chart struct {
	NoteCollections []NoteCollection `json:"noteCollections"`
	Slides          []Slide          `json:"slides"`
	Timing          []TimingMarker   `json:"timing"`
}

// IsEach reports whether the slide fans out into concurrent paths.
func IsEach(s *Slide) bool {
	return len(s.Paths) > 1
}

// VisibleDuration is the time from the slide's start to the end of its
// longest path, counting the path delay.
func VisibleDuration(s *Slide) float64 {
	var longest float64
	for _, path := range s.Paths {
		var seg float64
		for _, segment := range path.Segments {
			seg = math.Max(seg, segment.Duration)
		}
		longest = math.Max(longest, seg+path.Delay)
	}
	return longest
}

func (c *Chart) Parent(n Note) *NoteCollection {
	i := n.Parent()
	if i < 0 || i >= len(c.NoteCollections) {
		return nil
	}
	return &c.NoteCollections[i]
}

func (c *Chart) SlideOf(t *Tap) *Slide {
	if t.Slide < 0 || t.Slide >= len(c.Slides) {
		return nil
	}
	return &c.Slides[t.Slide]
}

func (c *Chart) SpawningTap(s *Slide) *Tap {
	if !s.Tap.Valid() || s.Tap.Collection >= len(c.NoteCollections) {
		return nil
	}
	notes := c.NoteCollections[s.Tap.Collection].Notes
	if s.Tap.Note >= len(notes) {
		return nil
	}
	tap, _ := notes[s.Tap.Note].(*Tap)
	return tap
}

// Length is the time at which the last note, hold or slide ends.
func (c *Chart) Length() float64 {
	var end float64
	for _, nc := range c.NoteCollections {
		end = math.Max(end, nc.Time)
		for _, n := range nc.Notes {
			switch n := n.(type) {
			case *Hold:
				end = math.Max(end, nc.Time+n.Duration)
			case *TouchHold:
				end = math.Max(end, nc.Time+n.Duration)
			}
		}
	}
	for i := range c.Slides {
		end = math.Max(end, c.Slides[i].Time+VisibleDuration(&c.Slides[i]))
	}
	return end
}

type ChartStats struct {
	Taps       int
	Holds      int
	Touches    int
	TouchHolds int
	Slides     int
	Breaks     int
}

func (s ChartStats) Notes() int {
	return s.Taps + s.Holds + s.Touches + s.TouchHolds
}

func (c *Chart) Stats() ChartStats {
	var s ChartStats
	for _, nc := range c.NoteCollections {
		for _, n := range nc.Notes {
			switch n := n.(type) {
			case *Tap:
				s.Taps++
				if n.Decorators.Break {
					s.Breaks++
				}
			case *Hold:
				s.Holds++
				if n.Decorators.Break {
					s.Breaks++
				}
			case *Touch:
				s.Touches++
			case *TouchHold:
				s.TouchHolds++
			}
		}
	}
	s.Slides = len(c.Slides)
	for _, slide := range c.Slides {
		for _, path := range slide.Paths {
			if path.Decorators.Break {
				s.Breaks++
			}
		}
	}
	return s
}
