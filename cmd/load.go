package cmd

import (
	"path/filepath"
	"strings"

	"github.com/kyubxy/simai-analyzer/maidata"
	"github.com/kyubxy/simai-analyzer/model"
	"github.com/kyubxy/simai-analyzer/simai"
)

// deserializeFile reads either a maidata.txt or a bare chart, going by the
// file name.
func deserializeFile(path string) (simai.Result[model.MaidataFile], error) {
	text, err := maidata.ReadFile(path)
	if err != nil {
		return simai.Result[model.MaidataFile]{}, err
	}
	if strings.EqualFold(filepath.Ext(path), ".txt") {
		return simai.DeserializeMaidata(text), nil
	}

	single := simai.DeserializeSingle(text)
	file := &model.MaidataFile{
		Title:  filepath.Base(path),
		Levels: make(map[string]model.Level),
		Raw:    model.RawMaidata{},
	}
	if single.Chart != nil {
		file.Levels[simai.Master] = model.Level{Chart: single.Chart}
	}
	return simai.Result[model.MaidataFile]{Chart: file, Errors: single.Errors}, nil
}
