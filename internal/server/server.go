// Package server exposes the design pipelines, the core catalog, and the
// export writers over HTTP.
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Denys/transformer-designer/internal/catalog"
	"github.com/Denys/transformer-designer/internal/config"
	"github.com/Denys/transformer-designer/internal/crossval"
	"github.com/Denys/transformer-designer/internal/design"
	"github.com/Denys/transformer-designer/internal/export"
)

type handler struct {
	logger    *zap.Logger
	cfg       *config.Configuration
	provider  catalog.Provider
	generator *design.Generator
	validator *crossval.Validator
	limiter   *ipRateLimiter
	version   string
}

// NewHandler constructs the HTTP handler that serves the design API. A nil
// configuration falls back to the built-in defaults and a nil provider to
// the embedded local catalog.
func NewHandler(logger *zap.Logger, cfg *config.Configuration, provider catalog.Provider, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg == nil {
		cfg = config.Default()
	}
	if provider == nil {
		provider = catalog.NewHybrid(logger, nil, nil, nil)
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:    logger,
		cfg:       cfg,
		provider:  provider,
		generator: design.NewGenerator(logger, provider),
		validator: crossval.NewValidator(logger),
		limiter:   newIPRateLimiter(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst),
		version:   trimmedVersion,
	}

	r := mux.NewRouter()

	// Design pipelines
	r.HandleFunc("/api/transformer/design", h.handleTransformerDesign).Methods(http.MethodPost)
	r.HandleFunc("/api/inductor/design", h.handleInductorDesign).Methods(http.MethodPost)

	// Catalog queries; part numbers such as ETD29/16/10 carry slashes, so
	// the variable must span path segments.
	r.HandleFunc("/api/cores", h.handleCores).Methods(http.MethodGet)
	r.HandleFunc("/api/cores/{part_number:.+}", h.handleCoreByPart).Methods(http.MethodGet)
	r.HandleFunc("/api/materials", h.handleMaterials).Methods(http.MethodGet)

	// Cross-validation of an externally supplied design summary
	r.HandleFunc("/api/validate", h.handleValidate).Methods(http.MethodPost)

	// Export artifacts
	r.HandleFunc("/api/export/formats", h.handleExportFormats).Methods(http.MethodGet)
	r.HandleFunc("/api/export/{format}", h.handleExport).Methods(http.MethodPost)

	r.HandleFunc("/healthz", h.handleHealth).Methods(http.MethodGet)

	r.Use(h.logRequests, h.rateLimit)

	return r
}

func (h *handler) handleTransformerDesign(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleTransformerDesign"
	start := time.Now()

	var req design.TransformerRequirements
	if !h.decodeBody(w, r, &req, op) {
		return
	}
	h.cfg.Defaults.ApplyTransformer(&req)

	result, noMatch, err := h.generator.DesignTransformer(r.Context(), req)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}
	if noMatch != nil {
		h.logger.Info("transformer design found no core",
			zap.String("op", op),
			zap.Float64("required_Ap_cm4", noMatch.RequiredApCM4),
			zap.Duration("duration", time.Since(start)),
		)
		h.writeJSON(w, http.StatusOK, noMatch)
		return
	}

	h.logger.Info("transformer design complete",
		zap.String("op", op),
		zap.String("method", result.DesignMethod),
		zap.String("core", result.Core.PartNumber),
		zap.Bool("viable", result.DesignViable),
		zap.Duration("duration", time.Since(start)),
	)
	h.writeJSON(w, http.StatusOK, result)
}

func (h *handler) handleInductorDesign(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleInductorDesign"
	start := time.Now()

	var req design.InductorRequirements
	if !h.decodeBody(w, r, &req, op) {
		return
	}
	h.cfg.Defaults.ApplyInductor(&req)

	result, noMatch, err := h.generator.DesignInductor(r.Context(), req)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}
	if noMatch != nil {
		h.logger.Info("inductor design found no core",
			zap.String("op", op),
			zap.Float64("required_Ap_cm4", noMatch.RequiredApCM4),
			zap.Duration("duration", time.Since(start)),
		)
		h.writeJSON(w, http.StatusOK, noMatch)
		return
	}

	h.logger.Info("inductor design complete",
		zap.String("op", op),
		zap.String("core", result.Core.PartNumber),
		zap.Bool("viable", result.DesignViable),
		zap.Duration("duration", time.Since(start)),
	)
	h.writeJSON(w, http.StatusOK, result)
}

type coresResponse struct {
	Cores []catalog.Core `json:"cores"`
	Count int            `json:"count"`
}

func (h *handler) handleCores(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCores"

	materialType := r.URL.Query().Get("material_type")
	geometry := r.URL.Query().Get("geometry")

	cores, err := h.provider.List(r.Context(), materialType, geometry)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to list cores: %v", err), op)
		return
	}
	if cores == nil {
		cores = []catalog.Core{}
	}

	h.writeJSON(w, http.StatusOK, coresResponse{Cores: cores, Count: len(cores)})
}

func (h *handler) handleCoreByPart(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCoreByPart"

	partNumber := mux.Vars(r)["part_number"]
	core, found, err := h.provider.CoreByPart(r.Context(), partNumber)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to look up core: %v", err), op)
		return
	}
	if !found {
		h.respondErrorWithOp(w, http.StatusNotFound, fmt.Sprintf("core %q not found", partNumber), op)
		return
	}

	h.writeJSON(w, http.StatusOK, core)
}

func (h *handler) handleMaterials(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleMaterials"

	materials, err := h.provider.Materials(r.Context())
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to load materials: %v", err), op)
		return
	}

	if materialType := r.URL.Query().Get("material_type"); materialType != "" {
		grades, found := materials[materialType]
		if !found {
			h.respondErrorWithOp(w, http.StatusNotFound, fmt.Sprintf("material type %q not found", materialType), op)
			return
		}
		h.writeJSON(w, http.StatusOK, map[string]map[string]catalog.MaterialProperties{materialType: grades})
		return
	}

	h.writeJSON(w, http.StatusOK, materials)
}

func (h *handler) handleValidate(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleValidate"

	var summary crossval.Summary
	if !h.decodeBody(w, r, &summary, op) {
		return
	}

	report := h.validator.Validate(summary)

	h.logger.Info("design summary validated",
		zap.String("op", op),
		zap.String("overall_status", report.OverallStatus),
		zap.Int("checks", len(report.Validations)),
	)
	h.writeJSON(w, http.StatusOK, report)
}

type exportFormatsResponse struct {
	Formats []export.Format `json:"formats"`
}

func (h *handler) handleExportFormats(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, exportFormatsResponse{Formats: export.Formats()})
}

func (h *handler) handleExport(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleExport"

	format := strings.ToLower(mux.Vars(r)["format"])
	mediaType := export.MediaType(format)
	if mediaType == "" {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("unknown export format %q", format), op)
		return
	}

	var req export.Request
	if !h.decodeBody(w, r, &req, op) {
		return
	}
	if req.DesignResult == nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, "design_result is required", op)
		return
	}

	// Build into a buffer first so a writer failure still yields a clean
	// JSON error instead of a truncated attachment.
	var buf bytes.Buffer
	if err := export.Write(format, &buf, req.DesignResult, req.Requirements); err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to build %s export: %v", format, err), op)
		return
	}

	filename := export.Filename(format, req.DesignResult.Core.PartNumber, req.Requirements.OutputPowerW)
	size := buf.Len()
	w.Header().Set("Content-Type", mediaType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Warn("failed to stream export",
			zap.String("op", op),
			zap.Error(err),
		)
		return
	}

	h.logger.Info("export generated",
		zap.String("op", op),
		zap.String("format", format),
		zap.String("filename", filename),
		zap.Int("bytes", size),
	)
}

type healthResponse struct {
	Status                   string `json:"status"`
	Version                  string `json:"version"`
	ExternalCatalogAvailable bool   `json:"external_catalog_available"`
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, healthResponse{
		Status:                   "ok",
		Version:                  h.version,
		ExternalCatalogAvailable: h.provider.ExternalAvailable(r.Context()),
	})
}

// decodeBody reads the request body, bounded by the configured limit, and
// decodes it into dst. YAML is selected by Content-Type; everything else
// decodes as JSON. On failure it writes the error response itself and
// reports false.
func (h *handler) decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}, op string) bool {
	if h.cfg.Server.MaxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.cfg.Server.MaxBodyBytes)
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request body exceeds limit of %d bytes", maxBytesErr.Limit), op)
			return false
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to read request body: %v", err), op)
		return false
	}
	if len(bytes.TrimSpace(body)) == 0 {
		h.respondErrorWithOp(w, http.StatusBadRequest, "empty request body", op)
		return false
	}

	if yamlContentType(r.Header.Get("Content-Type")) {
		err = yaml.Unmarshal(body, dst)
	} else {
		err = json.Unmarshal(body, dst)
	}
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
		return false
	}
	return true
}

func yamlContentType(contentType string) bool {
	ct := strings.ToLower(contentType)
	return strings.Contains(ct, "yaml") || strings.Contains(ct, "yml")
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg, "op": op})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
