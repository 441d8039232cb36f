package model

// Raw cells are what the notation grammar hands to the semantic analysis.
// Nothing in here has been validated: buttons are one-based and may be out
// of range, shapes are the literal symbols from the text.

type SubdivisionKind int

const (
	Divisions SubdivisionKind = iota
	Seconds
)

// Subdivision is the length of one cell, either {D} or {#sec}.
type Subdivision struct {
	Kind  SubdivisionKind
	Value float64
}

type RawCell struct {
	Tempo       *float64
	Subdivision *Subdivision
	// nil means the cell advances time without sounding anything
	Notes []RawNote
}

func (c RawCell) IsEmpty() bool {
	return c.Tempo == nil && c.Subdivision == nil && len(c.Notes) == 0
}

type RawNote interface {
	rawNote()
}

type Ratio struct {
	Div float64
	Num float64
}

type HoldLengthKind int

const (
	HoldRatio HoldLengthKind = iota
	HoldTempoRatio
	HoldSeconds
)

// HoldLength is [d:n], [bpm#d:n] or [#sec].
type HoldLength struct {
	Kind    HoldLengthKind
	Ratio   Ratio
	Tempo   float64
	Seconds float64
}

type SlideLengthKind int

const (
	SlideRatio SlideLengthKind = iota
	SlideTempoRatio
	SlideTempoSeconds
	SlideDelaySeconds
	SlideDelayRatio
	SlideDelayTempoRatio
)

// SlideLength covers every bracket form a slide body accepts:
// [d:n], [bpm#d:n], [bpm#sec], [delay##sec], [delay##d:n] and [delay##bpm#d:n].
type SlideLength struct {
	Kind    SlideLengthKind
	Ratio   Ratio
	Tempo   float64
	Delay   float64
	Seconds float64
}

type JoinKind int

const (
	// one length for the whole chain, written after the last segment
	JoinConstant JoinKind = iota
	// every segment carries its own length
	JoinVariable
)

type RawSegment struct {
	Shape string
	// tail vertices only, the head is the previous segment's tail
	Vertices []int
	Length   *SlideLength
	Break    bool
}

type RawSlidePath struct {
	Join     JoinKind
	Segments []RawSegment
	// only used by constant chains
	Length SlideLength
	Break  bool
}

type RawTap struct {
	Button     int
	Decorators string
}

type RawHold struct {
	Button     int
	Decorators string
	Length     HoldLength
}

type RawSlide struct {
	Button     int
	Decorators string
	Paths      []RawSlidePath
}

type RawTouch struct {
	Region     string
	Index      *int
	Decorators string
}

type RawTouchHold struct {
	Region     string
	Index      *int
	Decorators string
	Length     HoldLength
}

func (RawTap) rawNote()       {}
func (RawHold) rawNote()      {}
func (RawSlide) rawNote()     {}
func (RawTouch) rawNote()     {}
func (RawTouchHold) rawNote() {}
