package file

import (
	"path/filepath"

	"github.com/kyubxy/simai-analyzer/model"
)

// CreateFileNumMap numbers the maidata files in the order given.
func CreateFileNumMap(paths []string) model.FileNumToMaidataPath {
	res := make(model.FileNumToMaidataPath)
	for i, v := range paths {
		res[uint32(i)] = v
	}
	return res
}

// SongName is the directory a maidata.txt lives in, which is how songs are
// named on disk.
func SongName(path string) string {
	return filepath.Base(filepath.Dir(path))
}
