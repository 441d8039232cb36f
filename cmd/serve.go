package cmd

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gorilla/mux"
	"github.com/kyubxy/simai-analyzer/chartfile"
	"github.com/kyubxy/simai-analyzer/constants"
	"github.com/kyubxy/simai-analyzer/db"
	"github.com/kyubxy/simai-analyzer/log"
	"github.com/kyubxy/simai-analyzer/model"
	"github.com/kyubxy/simai-analyzer/simai"
	"github.com/kyubxy/simai-analyzer/util"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"
)

// requests per second, across all clients
const (
	requestRate  = 20
	requestBurst = 40
)

// deserialize bodies larger than this are refused
const maxBodyBytes = 4 << 20

var allCharts map[string]model.ChartOverview

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "serves",
	Long:  `Serves chart deserialization and indexed charts over HTTP.`,
	Run: func(cmd *cobra.Command, args []string) {
		serve()
	},
}

// LoadServeFiles reads the overview written by index. Without one only
// /deserialize is useful.
func LoadServeFiles() {
	allCharts = make(map[string]model.ChartOverview)
	path := util.GetAllChartsPath()
	if _, err := os.Stat(path); err != nil {
		log.HTTP.Printf("No index at %v, only serving /deserialize", path)
		return
	}
	for _, o := range util.ReadBinaryOrPanic[[]model.ChartOverview](path) {
		allCharts[strings.TrimSuffix(o.Filename, ".dat")] = o
	}
	log.HTTP.Printf("Loaded %v charts", len(allCharts))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.HTTP.Error("Could not write response", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, model.ErrorResponse{Error: detail})
}

func errorStrings(errs []error) []string {
	res := make([]string, 0, len(errs))
	for _, err := range errs {
		res = append(res, err.Error())
	}
	return res
}

func HandleDeserialize(w http.ResponseWriter, r *http.Request) {
	reqBody, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Could not read request body")
		return
	}

	var input model.DeserializeRequestBody
	if err := json.Unmarshal(reqBody, &input); err != nil {
		writeError(w, http.StatusBadRequest, "Could not unmarshal request body: "+err.Error())
		return
	}

	switch {
	case input.Maidata != "":
		res := simai.DeserializeMaidata(input.Maidata)
		writeJSON(w, http.StatusOK, model.DeserializeResponse{Maidata: res.Chart, Errors: errorStrings(res.Errors)})
	case input.Chart != "":
		res := simai.DeserializeSingleAt(input.Chart, input.Offset)
		writeJSON(w, http.StatusOK, model.DeserializeResponse{Chart: res.Chart, Errors: errorStrings(res.Errors)})
	default:
		writeError(w, http.StatusBadRequest, "Need one of maidata or chart")
	}
}

func HandleGetChart(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	overview, ok := allCharts[id]
	if !ok {
		writeError(w, http.StatusNotFound, "No chart with id "+id)
		return
	}

	chart, err := chartfile.Read(filepath.Join(constants.GetIndexDir(), overview.Filename))
	if err != nil {
		log.HTTP.Error("Could not read chart", "file", overview.Filename, "err", err)
		writeError(w, http.StatusInternalServerError, "Could not read chart")
		return
	}
	writeJSON(w, http.StatusOK, model.ChartResponse{
		Overview: overview,
		Chart:    chart,
		Metadata: lookupMetadata(overview.Filename),
	})
}

// lookupMetadata is nil when no table is configured or the lookup fails.
func lookupMetadata(filename string) *model.ChartMetadata {
	if !db.Enabled() {
		return nil
	}
	metadatas, err := db.GetChartMetadatas([]string{filename})
	if err != nil {
		log.HTTP.Warn("Could not look up metadata", "file", filename, "err", err)
		return nil
	}
	m, ok := metadatas[filename]
	if !ok {
		return nil
	}
	return &m
}

func limit(limiter *rate.Limiter) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				writeError(w, http.StatusTooManyRequests, "Too many requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.HTTP.Printf("%v %v", r.Method, r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

func NewRouter() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.Use(logRequests, limit(rate.NewLimiter(requestRate, requestBurst)))
	router.HandleFunc("/deserialize", HandleDeserialize).Methods("POST")
	router.HandleFunc("/charts/{id}", HandleGetChart).Methods("GET")

	return cors.New(cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(router)
}

func serve() {
	LoadServeFiles()

	addr := constants.GetServeAddr()
	log.HTTP.Printf("Listening on %v", addr)
	if err := http.ListenAndServe(addr, NewRouter()); err != nil {
		panic(err)
	}
}
