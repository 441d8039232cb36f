package model

import "github.com/pkg/errors"

// Every fatal failure while generating a chart wraps one of these, so the
// kind survives errors.Is.
var (
	ErrMissingTempo      = errors.New("bpm was never set")
	ErrDivision          = errors.New("invalid division")
	ErrInvalidLane       = errors.New("invalid button")
	ErrInvalidSensor     = errors.New("invalid sensor")
	ErrUnknownSlideShape = errors.New("unidentified slide type")
	ErrVertexCount       = errors.New("wrong number of vertices")
	ErrLinking           = errors.New("could not link slide")
)
