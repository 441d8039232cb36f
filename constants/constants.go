package constants

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/kyubxy/simai-analyzer/model"
)

// LoadEnv reads a .env file from the working directory if there is one.
// Variables already in the environment win.
func LoadEnv() bool {
	return godotenv.Load() == nil
}

func GetIndexDir() string {
	path := os.Getenv("INDEX_PATH")
	if path != "" {
		return path
	}
	return "./out"
}

func GetMediaDir() string {
	path := os.Getenv("MEDIA_PATH")
	if path != "" {
		return path
	}

	panic("MEDIA_PATH environment variable is not set!")
}

// GetDynamoEndpoint is empty when no metadata table should be written.
func GetDynamoEndpoint() string {
	return os.Getenv("DYNAMO_ENDPOINT")
}

func GetDynamoTable() string {
	table := os.Getenv("DYNAMO_TABLE")
	if table != "" {
		return table
	}
	return "simai-metadata"
}

func GetServeAddr() string {
	addr := os.Getenv("SERVE_ADDR")
	if addr != "" {
		return addr
	}
	return ":8080"
}

// every chart starts at {4} until told otherwise
const DefaultDivisions = 4.0

const Lanes = 8

var SensorIndices = map[model.SensorRegion]int{
	model.RegionA: 8,
	model.RegionB: 8,
	model.RegionC: 3,
	model.RegionD: 8,
	model.RegionE: 8,
}

// Terminator ends a chart. Anything after it is ignored.
const Terminator = "E"

const MaidataFilename = "maidata.txt"

const AllChartsFilename = "allCharts.dat"

const FileNumToNameFilename = "fileNumToName.dat"
