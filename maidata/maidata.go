package maidata

import (
	"bytes"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/kyubxy/simai-analyzer/model"
	"github.com/pkg/errors"
	"golang.org/x/text/encoding/japanese"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Parse splits a maidata.txt into its &key=value pairs. A value runs until
// the next line that starts with &, so values may span lines and contain
// both & and =.
func Parse(maidata string) model.RawMaidata {
	res := make(model.RawMaidata)
	text := strings.ReplaceAll(maidata, "\r\n", "\n")
	// anything before the first & is not a key
	parts := strings.Split("\n"+text, "\n&")[1:]
	for _, line := range parts {
		line = strings.TrimSpace(line)
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" || strings.HasPrefix(key, "&") {
			continue
		}
		res[key] = strings.TrimSpace(value)
	}
	return res
}

// Decode turns the raw bytes of a maidata.txt into text. Older charts are
// Shift-JIS, newer ones UTF-8 with or without a BOM.
func Decode(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return string(data), nil
	}
	decoded, err := japanese.ShiftJIS.NewDecoder().Bytes(data)
	if err != nil {
		return "", errors.Wrap(err, "maidata is neither UTF-8 nor Shift-JIS")
	}
	return string(decoded), nil
}

func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, "could not read %s", path)
	}
	return Decode(data)
}
