package notation

import (
	"strconv"
	"strings"

	"github.com/kyubxy/simai-analyzer/model"
	"github.com/pkg/errors"
)

func parseNumber(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.Errorf("invalid number [%s]", s)
	}
	return v, nil
}

func parseRatio(s string) (model.Ratio, error) {
	div, num, ok := strings.Cut(s, ":")
	if !ok {
		return model.Ratio{}, errors.Errorf("invalid ratio [%s]", s)
	}
	d, err := parseNumber(div)
	if err != nil {
		return model.Ratio{}, err
	}
	n, err := parseNumber(num)
	if err != nil {
		return model.Ratio{}, err
	}
	return model.Ratio{Div: d, Num: n}, nil
}

// holdLength reads [d:n], [bpm#d:n] or [#sec].
func holdLength(tokens []string) (model.HoldLength, error) {
	text := strings.Join(tokens, "")
	if strings.Contains(text, "##") {
		return model.HoldLength{}, errors.Errorf("holds take no delay [%s]", text)
	}
	if secs, ok := strings.CutPrefix(text, "#"); ok {
		v, err := parseNumber(secs)
		return model.HoldLength{Kind: model.HoldSeconds, Seconds: v}, err
	}
	if bpm, rest, ok := strings.Cut(text, "#"); ok {
		tempo, err := parseNumber(bpm)
		if err != nil {
			return model.HoldLength{}, err
		}
		ratio, err := parseRatio(rest)
		return model.HoldLength{Kind: model.HoldTempoRatio, Tempo: tempo, Ratio: ratio}, err
	}
	ratio, err := parseRatio(text)
	return model.HoldLength{Kind: model.HoldRatio, Ratio: ratio}, err
}

// slideLength reads every form a slide accepts:
// [d:n], [bpm#d:n], [bpm#sec], [delay##sec], [delay##d:n], [delay##bpm#d:n].
func slideLength(tokens []string) (model.SlideLength, error) {
	text := strings.Join(tokens, "")
	if delayText, rest, ok := strings.Cut(text, "##"); ok {
		delay, err := parseNumber(delayText)
		if err != nil {
			return model.SlideLength{}, err
		}
		if bpm, ratioText, ok := strings.Cut(rest, "#"); ok {
			tempo, err := parseNumber(bpm)
			if err != nil {
				return model.SlideLength{}, err
			}
			ratio, err := parseRatio(ratioText)
			return model.SlideLength{Kind: model.SlideDelayTempoRatio, Delay: delay, Tempo: tempo, Ratio: ratio}, err
		}
		if strings.Contains(rest, ":") {
			ratio, err := parseRatio(rest)
			return model.SlideLength{Kind: model.SlideDelayRatio, Delay: delay, Ratio: ratio}, err
		}
		secs, err := parseNumber(rest)
		return model.SlideLength{Kind: model.SlideDelaySeconds, Delay: delay, Seconds: secs}, err
	}

	if bpm, rest, ok := strings.Cut(text, "#"); ok {
		tempo, err := parseNumber(bpm)
		if err != nil {
			return model.SlideLength{}, err
		}
		if strings.Contains(rest, ":") {
			ratio, err := parseRatio(rest)
			return model.SlideLength{Kind: model.SlideTempoRatio, Tempo: tempo, Ratio: ratio}, err
		}
		secs, err := parseNumber(rest)
		return model.SlideLength{Kind: model.SlideTempoSeconds, Tempo: tempo, Seconds: secs}, err
	}

	ratio, err := parseRatio(text)
	return model.SlideLength{Kind: model.SlideRatio, Ratio: ratio}, err
}
