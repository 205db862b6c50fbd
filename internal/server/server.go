package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/MahendraD2/CashFlowManagement/internal/analysis"
	"github.com/MahendraD2/CashFlowManagement/internal/config"
	"github.com/MahendraD2/CashFlowManagement/internal/dataset"
	"github.com/MahendraD2/CashFlowManagement/internal/scenario"
	"github.com/MahendraD2/CashFlowManagement/internal/store"
	"github.com/MahendraD2/CashFlowManagement/pkg/constants"
	"github.com/MahendraD2/CashFlowManagement/pkg/output"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const defaultSavedLimit = 50

type handler struct {
	logger        *zap.Logger
	service       *analysis.Service
	maxUploadSize int64
	version       string
}

// NewHandler constructs the HTTP handler that serves the scenario API.
func NewHandler(logger *zap.Logger, service *analysis.Service, maxUploadSize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if service == nil {
		service = analysis.NewService(logger, analysis.NewSimulator(logger, config.SimulationConfig{}), nil, nil)
	}

	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, service: service, maxUploadSize: maxUploadSize, version: trimmedVersion}

	mux := http.NewServeMux()

	// Batch run of every active scenario in an uploaded YAML configuration
	mux.HandleFunc("/api/simulate", h.handleSimulateConfig)

	// Single scenario run against a JSON baseline
	mux.HandleFunc("/api/scenarios/simulate", h.handleSimulateScenario)

	// Predefined scenario catalog for a baseline
	mux.HandleFunc("/api/scenarios/predefined", h.handlePredefined)

	// Saved runs, newest first
	mux.HandleFunc("/api/scenarios/saved", h.handleSaved)
	mux.HandleFunc("/api/scenarios/saved/{id}", h.handleSavedRun)

	// Config serialization endpoint for downloads
	mux.HandleFunc("/api/config/export", h.handleConfigExport)

	mux.HandleFunc("/api/version", h.handleVersion)

	return mux
}

type simulateConfigResponse struct {
	Scenarios []string          `json:"scenarios"`
	Results   []analysis.Result `json:"results"`
	CSV       string            `json:"csv"`
	Warnings  []string          `json:"warnings,omitempty"`
	Duration  string            `json:"duration"`
}

type simulateScenarioRequest struct {
	Baseline  *dataset.Baseline  `json:"baseline"`
	Selection scenario.Selection `json:"selection"`
	Name      string             `json:"name,omitempty"`
}

type simulateScenarioResponse struct {
	Result   *analysis.Result `json:"result"`
	CSV      string           `json:"csv"`
	Cached   bool             `json:"cached"`
	Duration string           `json:"duration"`
}

type predefinedRequest struct {
	Baseline *dataset.Baseline `json:"baseline"`
}

type predefinedResponse struct {
	Scenarios []scenario.Predefined `json:"scenarios"`
}

type savedResponse struct {
	Runs []store.Record `json:"runs"`
}

func (h *handler) handleSimulateConfig(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleSimulateConfig"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize), op)
			return
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to parse upload: %v", err), op)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, "missing configuration file", op)
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.logger.Warn("failed to close uploaded file",
				zap.String("op", op),
				zap.Error(closeErr),
			)
		}
	}()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to read configuration: %v", err), op)
		return
	}

	cfg, err := config.LoadConfigurationFromReader(&buf)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	warnings := cfg.ValidateConfiguration()

	results, err := analysis.RunConfiguration(h.logger, cfg)
	if err != nil {
		h.respondErrorWithOp(w, statusFor(err), fmt.Sprintf("failed to simulate scenarios: %v", err), op)
		return
	}

	var csvBuf bytes.Buffer
	if err := output.WriteCSV(&csvBuf, results); err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to render CSV: %v", err), op)
		return
	}

	names := make([]string, 0, len(results))
	for _, result := range results {
		names = append(names, result.Name)
	}

	elapsed := time.Since(start)
	h.logger.Info("scenarios simulated",
		zap.String("op", op),
		zap.Int("scenarios", len(results)),
		zap.Int("warnings", len(warnings)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, simulateConfigResponse{
		Scenarios: names,
		Results:   results,
		CSV:       csvBuf.String(),
		Warnings:  warnings,
		Duration:  elapsed.String(),
	})
}

func (h *handler) handleSimulateScenario(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleSimulateScenario"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	var req simulateScenarioRequest
	if !h.decodeJSON(w, r, &req, op) {
		return
	}

	result, cached, err := h.service.Run(r.Context(), req.Baseline, req.Selection, req.Name)
	if err != nil {
		h.respondErrorWithOp(w, statusFor(err), err.Error(), op)
		return
	}

	csv, err := output.CsvString(*result)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to render CSV: %v", err), op)
		return
	}

	h.writeJSON(w, http.StatusOK, simulateScenarioResponse{
		Result:   result,
		CSV:      csv,
		Cached:   cached,
		Duration: time.Since(start).String(),
	})
}

func (h *handler) handlePredefined(w http.ResponseWriter, r *http.Request) {
	const op = "server.handlePredefined"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	var req predefinedRequest
	if !h.decodeJSON(w, r, &req, op) {
		return
	}

	h.writeJSON(w, http.StatusOK, predefinedResponse{Scenarios: scenario.PredefinedCatalog(req.Baseline)})
}

func (h *handler) handleSaved(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleSaved"
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	limit := defaultSavedLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("invalid limit %q", raw), op)
			return
		}
		limit = n
	}

	runs, err := h.service.Saved(r.Context(), limit)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to list saved runs: %v", err), op)
		return
	}
	if runs == nil {
		runs = []store.Record{}
	}

	h.writeJSON(w, http.StatusOK, savedResponse{Runs: runs})
}

func (h *handler) handleSavedRun(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleSavedRun"
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	raw := r.PathValue("id")
	id, err := uuid.Parse(raw)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("invalid run id %q", raw), op)
		return
	}

	record, err := h.service.SavedRun(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		h.respondErrorWithOp(w, http.StatusNotFound, fmt.Sprintf("run %s not found", id), op)
		return
	}
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to load saved run: %v", err), op)
		return
	}

	h.writeJSON(w, http.StatusOK, record)
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handleConfigExport(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleConfigExport"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	var payload map[string]interface{}
	if !h.decodeJSON(w, r, &payload, op) {
		return
	}
	if payload == nil {
		payload = make(map[string]interface{})
	}

	yamlBytes, err := marshalOrderedConfigYAML(payload)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to encode configuration: %v", err), op)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"configYaml": string(yamlBytes),
	})
}

// configKeyOrder is the order sections appear in exported configuration.
var configKeyOrder = []string{"logging", "output", "simulation", "cache", "store", "baseline", "scenarios"}

func marshalOrderedConfigYAML(payload map[string]interface{}) ([]byte, error) {
	items := make([]orderedItem, 0, len(payload))
	seen := make(map[string]struct{})

	for _, key := range configKeyOrder {
		if value, ok := payload[key]; ok {
			items = append(items, orderedItem{key: key, value: value})
			seen[key] = struct{}{}
		}
	}

	remainingKeys := make([]string, 0, len(payload))
	for key := range payload {
		if _, already := seen[key]; already {
			continue
		}
		remainingKeys = append(remainingKeys, key)
	}
	sort.Strings(remainingKeys)
	for _, key := range remainingKeys {
		items = append(items, orderedItem{key: key, value: payload[key]})
	}

	return yaml.Marshal(orderedConfig{items: items})
}

type orderedConfig struct {
	items []orderedItem
}

type orderedItem struct {
	key   string
	value interface{}
}

func (o orderedConfig) MarshalYAML() (interface{}, error) {
	mapNode := &yaml.Node{
		Kind: yaml.MappingNode,
		Tag:  "!!map",
	}

	for _, item := range o.items {
		keyNode := &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!str",
			Value: item.key,
		}
		valueNode := &yaml.Node{}
		if err := valueNode.Encode(item.value); err != nil {
			return nil, err
		}
		mapNode.Content = append(mapNode.Content, keyNode, valueNode)
	}

	return mapNode, nil
}

// statusFor maps engine errors the caller can fix to 400 and everything else
// to 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, dataset.ErrMissingBaseline),
		errors.Is(err, scenario.ErrMissingSelection),
		errors.Is(err, scenario.ErrInvalidParameter):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}, op string) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxUploadSize), op)
			return false
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
		return false
	}
	return true
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("scenario request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response",
			zap.String("op", "server.writeJSON"),
			zap.Error(err),
		)
	}
}
