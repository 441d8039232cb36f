package absyn

import (
	"strings"

	"github.com/kyubxy/simai-analyzer/constants"
	"github.com/kyubxy/simai-analyzer/model"
	"github.com/kyubxy/simai-analyzer/timing"
	"github.com/pkg/errors"
)

func parseNote(rn model.RawNote, st state) (model.Note, error) {
	switch n := rn.(type) {
	case model.RawTap:
		return parseTap(n.Button, n.Decorators, tapStyle(n.Decorators))
	case model.RawSlide:
		return parseTap(n.Button, n.Decorators, slideHeadStyle(n.Decorators))
	case model.RawHold:
		return parseHold(n, st)
	case model.RawTouch:
		return parseTouch(n)
	case model.RawTouchHold:
		return parseTouchHold(n, st)
	default:
		return nil, errors.Errorf("unknown note %T", rn)
	}
}

func parseButton(b int) (model.Button, error) {
	if b < 1 || b > constants.Lanes {
		return 0, errors.Wrapf(model.ErrInvalidLane, "invalid button [%d]", b)
	}
	return model.Button(b - 1), nil
}

func parseSensor(region string, index *int) (model.Sensor, error) {
	var pos int
	if index != nil {
		pos = *index
	} else if region == string(model.RegionC) {
		// nobody writes C1, it's just C
		pos = 1
	} else {
		return model.Sensor{}, errors.Wrapf(model.ErrInvalidSensor, "sensor [%s] needs an index", region)
	}

	limit, ok := constants.SensorIndices[model.SensorRegion(region)]
	if !ok {
		return model.Sensor{}, errors.Wrapf(model.ErrInvalidSensor, "invalid sensor area [%s] in [%s%d]", region, region, pos)
	}
	if pos < 1 || pos > limit {
		return model.Sensor{}, errors.Wrapf(model.ErrInvalidSensor, "invalid sensor [%s%d]", region, pos)
	}
	return model.Sensor{Region: model.SensorRegion(region), Index: pos - 1}, nil
}

func noteDecorators(d string) model.NoteDecorator {
	return model.NoteDecorator{
		Ex:    strings.ContainsRune(d, 'x'),
		Break: strings.ContainsRune(d, 'b'),
	}
}

func touchDecorators(d string) model.TouchDecorator {
	return model.TouchDecorator{Hanabi: strings.ContainsRune(d, 'f')}
}

func tapStyle(d string) model.TapStyle {
	switch strings.Count(d, "$") {
	case 0:
		return model.Circle
	case 1:
		return model.Star
	default:
		return model.StationaryStar
	}
}

// Slides always start on a star unless the head was asked to be a circle.
func slideHeadStyle(d string) model.TapStyle {
	if strings.ContainsRune(d, '@') {
		return model.Circle
	}
	if strings.Count(d, "$") >= 2 {
		return model.StationaryStar
	}
	return model.Star
}

func parseTap(button int, decorators string, style model.TapStyle) (*model.Tap, error) {
	loc, err := parseButton(button)
	if err != nil {
		return nil, err
	}
	return &model.Tap{
		Collection: model.NoLink,
		Location:   loc,
		Decorators: noteDecorators(decorators),
		Style:      style,
		Slide:      model.NoLink,
	}, nil
}

func parseHold(h model.RawHold, st state) (*model.Hold, error) {
	loc, err := parseButton(h.Button)
	if err != nil {
		return nil, err
	}
	dur, err := holdLength(h.Length, st)
	if err != nil {
		return nil, err
	}
	return &model.Hold{
		Collection: model.NoLink,
		Location:   loc,
		Decorators: noteDecorators(h.Decorators),
		Duration:   dur,
	}, nil
}

func parseTouch(t model.RawTouch) (*model.Touch, error) {
	loc, err := parseSensor(t.Region, t.Index)
	if err != nil {
		return nil, err
	}
	return &model.Touch{
		Collection: model.NoLink,
		Location:   loc,
		Decorators: touchDecorators(t.Decorators),
	}, nil
}

func parseTouchHold(t model.RawTouchHold, st state) (*model.TouchHold, error) {
	loc, err := parseSensor(t.Region, t.Index)
	if err != nil {
		return nil, err
	}
	dur, err := holdLength(t.Length, st)
	if err != nil {
		return nil, err
	}
	return &model.TouchHold{
		Collection: model.NoLink,
		Location:   loc,
		Decorators: touchDecorators(t.Decorators),
		Duration:   dur,
	}, nil
}

func holdLength(l model.HoldLength, st state) (float64, error) {
	switch l.Kind {
	case model.HoldRatio:
		bpm, err := st.tempo()
		if err != nil {
			return 0, err
		}
		return timing.Unquantise(l.Ratio.Div, l.Ratio.Num, bpm)
	case model.HoldTempoRatio:
		return timing.Unquantise(l.Ratio.Div, l.Ratio.Num, l.Tempo)
	case model.HoldSeconds:
		return l.Seconds, nil
	default:
		return 0, errors.Errorf("unknown hold length %d", l.Kind)
	}
}
