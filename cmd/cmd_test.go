package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/kyubxy/simai-analyzer/chartfile"
	"github.com/kyubxy/simai-analyzer/log"
	"github.com/kyubxy/simai-analyzer/model"
	"github.com/kyubxy/simai-analyzer/simai"
	"github.com/stretchr/testify/assert"
)

// notes only marshal one way, so responses are read back loosely
type chartJSON struct {
	NoteCollections []struct {
		Time     float64                  `json:"time"`
		Contents []map[string]interface{} `json:"contents"`
	} `json:"noteCollections"`
}

type deserializeJSON struct {
	Maidata *struct {
		Title  string `json:"title"`
		Levels map[string]struct {
			Chart *chartJSON `json:"chart"`
			Level string     `json:"level"`
		} `json:"levels"`
	} `json:"maidata"`
	Chart  *chartJSON `json:"chart"`
	Errors []string   `json:"errors"`
}

func post(t *testing.T, body any) (*http.Response, deserializeJSON) {
	data, err := json.Marshal(body)
	assert.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/deserialize", bytes.NewReader(data))
	w := httptest.NewRecorder()
	HandleDeserialize(w, req)

	var res deserializeJSON
	resp := w.Result()
	if resp.StatusCode == http.StatusOK {
		assert.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	}
	return resp, res
}

func TestDeserializeChart(t *testing.T) {
	resp, res := post(t, model.DeserializeRequestBody{Chart: "(120)1,BROKEN,2,", Offset: 1})

	assert := assert.New(t)
	assert.Equal(http.StatusOK, resp.StatusCode)
	assert.Len(res.Errors, 1)
	assert.Nil(res.Maidata)
	assert.Len(res.Chart.NoteCollections, 2)
	assert.Equal(2.0, res.Chart.NoteCollections[1].Time)
}

func TestDeserializeMaidata(t *testing.T) {
	resp, res := post(t, model.DeserializeRequestBody{Maidata: "&title=a\n&lv_4=9\n&inote_4=(120)1,\n"})

	assert := assert.New(t)
	assert.Equal(http.StatusOK, resp.StatusCode)
	assert.Empty(res.Errors)
	assert.NotNil(res.Errors)
	assert.Equal("a", res.Maidata.Title)
	assert.Equal("9", res.Maidata.Levels["expert"].Level)
}

func TestDeserializeBadRequests(t *testing.T) {
	assert := assert.New(t)

	resp, _ := post(t, model.DeserializeRequestBody{})
	assert.Equal(http.StatusBadRequest, resp.StatusCode)

	req := httptest.NewRequest(http.MethodPost, "/deserialize", strings.NewReader("{"))
	w := httptest.NewRecorder()
	HandleDeserialize(w, req)
	assert.Equal(http.StatusBadRequest, w.Code)
	var detail model.ErrorResponse
	assert.NoError(json.NewDecoder(w.Body).Decode(&detail))
	assert.Contains(detail.Error, "unmarshal")
}

func TestRouterUnknownChart(t *testing.T) {
	allCharts = map[string]model.ChartOverview{}
	req := httptest.NewRequest(http.MethodGet, "/charts/nope", nil)
	w := httptest.NewRecorder()
	NewRouter().ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFormatLength(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("2 minutes 5 seconds", formatLength(125))
	assert.Equal("1 second 500 milliseconds", formatLength(1.5))
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestWatchRechecksOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.sim")
	assert.NoError(t, os.WriteFile(path, []byte("1,"), 0666))

	out := new(syncBuffer)
	log.SetOutput(out)
	defer log.SetOutput(os.Stderr)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		watch(ctx, path, 5*time.Millisecond, 20*time.Millisecond)
		close(done)
	}()

	assert := assert.New(t)
	assert.Eventually(func() bool {
		return strings.Contains(out.String(), "bpm was never set")
	}, time.Second, 5*time.Millisecond)
	assert.NotContains(out.String(), "no errors")

	assert.NoError(os.WriteFile(path, []byte("(120)1,"), 0666))
	future := time.Now().Add(time.Hour)
	assert.NoError(os.Chtimes(path, future, future))
	assert.Eventually(func() bool {
		return strings.Contains(out.String(), "no errors")
	}, 2*time.Second, 5*time.Millisecond)

	cancel()
	<-done
}

type chartResponseJSON struct {
	Overview struct {
		Title string `json:"title"`
	} `json:"overview"`
	Chart    *chartJSON `json:"chart"`
	Metadata *struct {
		Title string `json:"title"`
		Level string `json:"level"`
	} `json:"metadata"`
}

func indexOne(t *testing.T, chart string) string {
	dir := t.TempDir()
	t.Setenv("INDEX_PATH", dir)
	filename, err := chartfile.Write(dir, simai.DeserializeSingle(chart).Chart)
	assert.NoError(t, err)
	id := strings.TrimSuffix(filename, ".dat")
	allCharts = map[string]model.ChartOverview{
		id: {Filename: filename, Difficulty: "master", Title: "Acceleration"},
	}
	return id
}

func getChart(t *testing.T, id string) chartResponseJSON {
	req := httptest.NewRequest(http.MethodGet, "/charts/"+id, nil)
	w := httptest.NewRecorder()
	NewRouter().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var res chartResponseJSON
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&res))
	return res
}

func TestGetChartWithoutMetadataTable(t *testing.T) {
	t.Setenv("DYNAMO_ENDPOINT", "")
	res := getChart(t, indexOne(t, "(120)1,2,"))

	assert := assert.New(t)
	assert.Equal("Acceleration", res.Overview.Title)
	assert.Len(res.Chart.NoteCollections, 2)
	assert.Nil(res.Metadata)
}

func TestGetChartAttachesMetadata(t *testing.T) {
	id := indexOne(t, "(120)1,")
	filename := id + ".dat"

	targets := make(chan string, 1)
	dynamo := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case targets <- r.Header.Get("X-Amz-Target"):
		default:
		}
		w.Header().Set("Content-Type", "application/x-amz-json-1.0")
		fmt.Fprintf(w, `{"Responses":{"simai-metadata":[{"PK":{"S":%q},"Title":{"S":"Acceleration"},"Level":{"S":"13+"}}]}}`, filename)
	}))
	defer dynamo.Close()
	t.Setenv("DYNAMO_ENDPOINT", dynamo.URL)
	t.Setenv("DYNAMO_TABLE", "")
	t.Setenv("AWS_ACCESS_KEY_ID", "local")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "local")

	res := getChart(t, id)

	assert := assert.New(t)
	assert.Equal("DynamoDB_20120810.BatchGetItem", <-targets)
	if assert.NotNil(res.Metadata) {
		assert.Equal("Acceleration", res.Metadata.Title)
		assert.Equal("13+", res.Metadata.Level)
	}
}

func TestWriteJSONLogsEncodeErrors(t *testing.T) {
	var out bytes.Buffer
	log.SetOutput(&out)
	defer log.SetOutput(os.Stderr)

	writeJSON(httptest.NewRecorder(), http.StatusOK, make(chan int))
	assert.Contains(t, out.String(), "Could not write response")
}

func TestExportReadsBack(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chart.sim")
	assert.NoError(t, os.WriteFile(path, []byte("(120)1,2h[4:1],"), 0666))
	out := filepath.Join(dir, "chart.mid")

	assert := assert.New(t)
	assert.NoError(export(path, "master", out))
	assert.FileExists(out)
	assert.Error(export(path, "expert", out))
}
