package midi

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"sort"

	"github.com/kyubxy/simai-analyzer/constants"
	"github.com/kyubxy/simai-analyzer/model"
	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// Exported files run at a fixed tempo so seconds map straight onto ticks.
const (
	Resolution     = 960
	Tempo          = 120.0
	TicksPerSecond = Resolution * Tempo / 60
)

const (
	laneChannel  uint8 = 0
	touchChannel uint8 = 1
	slideChannel uint8 = 2
)

// Lanes are keys 60-67, touch sensors start at 72.
const (
	laneKey  = 60
	touchKey = 72
)

// taps and touches have no length of their own
const tapLength = 0.1

var regionOrder = []model.SensorRegion{model.RegionA, model.RegionB, model.RegionC, model.RegionD, model.RegionE}

type event struct {
	tick uint32
	off  bool
	msg  []byte
}

func toTicks(seconds float64) uint32 {
	if seconds <= 0 {
		return 0
	}
	return uint32(math.Round(seconds * TicksPerSecond))
}

func touchKeyOf(s model.Sensor) uint8 {
	key := touchKey
	for _, r := range regionOrder {
		if r == s.Region {
			break
		}
		key += constants.SensorIndices[r]
	}
	return uint8(key + s.Index)
}

func velocity(d model.NoteDecorator) uint8 {
	if d.Break {
		return 127
	}
	return 100
}

func note(events []event, ch, key, vel uint8, start, length float64) []event {
	if length <= 0 {
		length = tapLength
	}
	return append(events,
		event{tick: toTicks(start), msg: midi.NoteOn(ch, key, vel)},
		event{tick: toTicks(start + length), off: true, msg: midi.NoteOff(ch, key)},
	)
}

func timeline(chart *model.Chart) []event {
	var events []event
	for _, m := range chart.Timing {
		events = append(events, event{tick: toTicks(m.Time), msg: smf.MetaMarker(fmt.Sprintf("bpm %g", m.Tempo))})
	}
	for _, nc := range chart.NoteCollections {
		for _, n := range nc.Notes {
			switch n := n.(type) {
			case *model.Tap:
				events = note(events, laneChannel, laneKey+uint8(n.Location), velocity(n.Decorators), nc.Time, 0)
			case *model.Hold:
				events = note(events, laneChannel, laneKey+uint8(n.Location), velocity(n.Decorators), nc.Time, n.Duration)
			case *model.Touch:
				events = note(events, touchChannel, touchKeyOf(n.Location), 100, nc.Time, 0)
			case *model.TouchHold:
				events = note(events, touchChannel, touchKeyOf(n.Location), 100, nc.Time, n.Duration)
			}
		}
	}
	for _, s := range chart.Slides {
		for _, path := range s.Paths {
			var length float64
			for _, seg := range path.Segments {
				length += seg.Duration
			}
			if len(path.Segments) == 0 {
				continue
			}
			last := path.Segments[len(path.Segments)-1]
			end := last.Vertices[len(last.Vertices)-1]
			events = note(events, slideChannel, laneKey+uint8(end), velocity(path.Decorators), s.Time+path.Delay, length)
		}
	}

	// note offs go first so touching notes on one key don't swallow each other
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].tick != events[j].tick {
			return events[i].tick < events[j].tick
		}
		return events[i].off && !events[j].off
	})
	return events
}

// Export writes the chart as a single track SMF. Lanes, touches and slides
// each get their own channel; slides sound on the lane they finish on.
func Export(chart *model.Chart, w io.Writer) error {
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(Resolution)

	var tr smf.Track
	tr.Add(0, smf.MetaTempo(Tempo))
	var prev uint32
	for _, ev := range timeline(chart) {
		tr.Add(ev.tick-prev, ev.msg)
		prev = ev.tick
	}
	tr.Close(0)

	if err := s.Add(tr); err != nil {
		return errors.Wrap(err, "could not add track")
	}
	if _, err := s.WriteTo(w); err != nil {
		return errors.Wrap(err, "could not write midi")
	}
	return nil
}

func WriteFile(chart *model.Chart, path string) error {
	buf := new(bytes.Buffer)
	if err := Export(chart, buf); err != nil {
		return err
	}
	return errors.Wrapf(os.WriteFile(path, buf.Bytes(), 0666), "could not write %s", path)
}

func ReadMidiFile(filepath string) (s *smf.SMF, e error) {
	// smf panics on some malformed files
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r, ok := recover().(string); ok {
			s, e = nil, errors.New(r)
		}
	}()

	dat, err := os.ReadFile(filepath)
	if err != nil {
		return nil, errors.Wrap(err, "error reading midi file")
	}
	res, err := smf.ReadFrom(bytes.NewReader(dat))
	if err != nil {
		return nil, errors.Wrap(err, "error parsing midi file")
	}
	return res, nil
}
