package model

// RawMaidata is the untyped key value form of a maidata.txt file.
type RawMaidata = map[string]string

type Level struct {
	Chart *Chart `json:"chart,omitempty"`
	Level string `json:"level,omitempty"`
}

type MaidataFile struct {
	Title  string           `json:"title"`
	Artist string           `json:"artist"`
	Author string           `json:"author"`
	Offset float64          `json:"offset"`
	Levels map[string]Level `json:"levels"`
	Raw    RawMaidata       `json:"raw"`
}
