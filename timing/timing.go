package timing

import (
	"github.com/kyubxy/simai-analyzer/model"
	"github.com/pkg/errors"
)

// Unquantise converts num notes of a 1/divisions subdivision at bpm into
// seconds.
func Unquantise(divisions, num, bpm float64) (float64, error) {
	if divisions == 0 {
		return 0, errors.Wrap(model.ErrDivision, "division cannot be 0")
	}
	if bpm == 0 {
		return 0, errors.Wrap(model.ErrDivision, "bpm cannot be 0")
	}
	if divisions < 0 {
		return 0, errors.Wrapf(model.ErrDivision, "division must be greater than 0, got %v", divisions)
	}
	if bpm < 0 {
		return 0, errors.Wrapf(model.ErrDivision, "bpm must be greater than 0, got %v", bpm)
	}
	if num < 0 {
		return 0, errors.Wrapf(model.ErrDivision, "num must not be negative, got %v", num)
	}
	return (60 / bpm) * (4 / divisions) * num, nil
}

// ResolveBeat is the time one cell takes under the given subdivision.
func ResolveBeat(sub model.Subdivision, bpm float64) (float64, error) {
	if sub.Kind == model.Seconds {
		return sub.Value, nil
	}
	return Unquantise(sub.Value, 1, bpm)
}
