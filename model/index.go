package model

// ChartOverview describes one chart file written by the index command.
type ChartOverview struct {
	Filename   string  `json:"filename"`
	Source     string  `json:"source"`
	Difficulty string  `json:"difficulty"`
	Level      string  `json:"level"`
	Title      string  `json:"title"`
	Artist     string  `json:"artist"`
	Notes      int     `json:"notes"`
	Slides     int     `json:"slides"`
	Length     float64 `json:"length"`
}

type FileNum = uint32
type FileNumToMaidataPath = map[FileNum]string

// ChartMetadata is what the metadata table keeps per indexed chart.
type ChartMetadata struct {
	Filename   string `dynamodbav:"PK" json:"filename"`
	Title      string `json:"title"`
	Artist     string `json:"artist"`
	Author     string `json:"author"`
	Difficulty string `json:"difficulty"`
	Level      string `json:"level"`
}
