package util

import (
	"bytes"
	"encoding/gob"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/kyubxy/simai-analyzer/constants"
	"github.com/kyubxy/simai-analyzer/log"
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

func RecreateOutputDir() {
	dir := constants.GetIndexDir()
	os.RemoveAll(dir)
	if err := os.MkdirAll(dir, 0777); err != nil {
		panic("Could not RecreateOutputDir: " + err.Error())
	}
}

func GetAllChartsPath() string {
	return filepath.Join(constants.GetIndexDir(), constants.AllChartsFilename)
}

func GetFileNumToNamePath() string {
	return filepath.Join(constants.GetIndexDir(), constants.FileNumToNameFilename)
}

// GatherAllMaidataPaths walks path for maidata.txt files, in lexical order.
// maxNum of 0 means no limit.
func GatherAllMaidataPaths(path string, maxNum int) []string {
	var res []string
	walk := func(s string, d fs.DirEntry, err error) error {
		if err != nil {
			panic("Error walking: " + err.Error())
		}
		if !d.IsDir() && d.Name() == constants.MaidataFilename {
			if maxNum == 0 || len(res) < maxNum {
				res = append(res, s)
			}
		}
		return nil
	}
	filepath.WalkDir(path, walk)
	return res
}

// GetKeys returns the keys of m sorted ascending.
func GetKeys[A constraints.Ordered, B any](m map[A]B) []A {
	keys := maps.Keys(m)
	slices.Sort(keys)
	return keys
}

func CreateBinary(filename string, data any) {
	log.FS.Info("Creating binary", "file", filename)
	buf := new(bytes.Buffer)
	encoder := gob.NewEncoder(buf)

	err := encoder.Encode(data)
	if err != nil {
		panic(err)
	}
	if err := os.WriteFile(filename, buf.Bytes(), 0666); err != nil {
		panic("Write failed for file: " + filename + ": " + err.Error())
	}
}

func OpenFileOrPanic(path string) *os.File {
	f, err := os.Open(path)
	if err != nil {
		panic("Couldn't read file: " + err.Error())
	}
	return f
}

func ReadBinaryOrPanic[A any](path string) A {
	f := OpenFileOrPanic(path)
	defer f.Close()

	var data A
	decoder := gob.NewDecoder(f)
	if err := decoder.Decode(&data); err != nil {
		panic("Could not decode binary file: " + err.Error())
	}
	return data
}

func Sum[A constraints.Integer](nums []A) uint64 {
	var total uint64
	for _, v := range nums {
		total += uint64(v)
	}
	return total
}
