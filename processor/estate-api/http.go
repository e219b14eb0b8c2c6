package estateapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/c360studio/faraid/catalog"
	"github.com/c360studio/faraid/engine"
	"github.com/c360studio/faraid/storage"
)

// maxRequestBodySize limits POST body sizes to prevent DoS.
const maxRequestBodySize = 1 << 20 // 1 MB

// RegisterHTTPHandlers registers all estate-api HTTP handlers under the given prefix.
// The prefix should be the path segment without a trailing slash (e.g. "api/estate").
// Handlers are registered as:
//
//	POST <prefix>/compute
//	GET  <prefix>/heir-types
//	GET  <prefix>/rules
//	GET  <prefix>/catalog
//	PUT  <prefix>/catalog
//	GET  <prefix>/rulings
//	GET  <prefix>/rulings/{id}
func (c *Component) RegisterHTTPHandlers(prefix string, mux *http.ServeMux) {
	// Normalise: ensure leading slash and trailing slash.
	if !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix = prefix + "/"
	}

	mux.HandleFunc(prefix+"compute", c.handleCompute)
	mux.HandleFunc(prefix+"heir-types", c.handleHeirTypes)
	mux.HandleFunc(prefix+"rules", c.handleRules)
	mux.HandleFunc(prefix+"catalog", c.handleCatalog)
	mux.HandleFunc(prefix+"rulings", c.handleRulings)
	mux.HandleFunc(prefix+"rulings/", c.handleRulingByID)
}

// ----------------------------------------------------------------------------
// POST /api/estate/compute
// ----------------------------------------------------------------------------

// ComputeResponse is the response body for POST /api/estate/compute.
type ComputeResponse struct {
	// RulingID identifies the persisted ruling. Empty when storage is
	// disabled.
	RulingID string `json:"ruling_id,omitempty"`

	// Report is the full distribution report.
	Report *engine.Report `json:"report"`
}

// errorResponse is the body of every non-2xx JSON response.
type errorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

// handleCompute runs one estate computation against the active catalog
// and persists the ruling when storage is enabled.
func (c *Component) handleCompute(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)

	var input engine.Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:  "invalid_request",
			Detail: err.Error(),
		})
		return
	}

	report, err := engine.Compute(input, c.snapshot(r.Context()))
	if err != nil {
		c.errorsCount.Add(1)
		c.writeComputeError(w, err)
		return
	}

	c.computations.Add(1)

	resp := ComputeResponse{Report: report}

	c.mu.RLock()
	store := c.store
	c.mu.RUnlock()

	if store != nil {
		ruling := &storage.Ruling{
			Input:     input,
			Report:    report,
			CreatedAt: time.Now(),
		}
		id, err := store.CreateRuling(r.Context(), ruling)
		if err != nil {
			// The computation itself succeeded, report it anyway.
			c.logger.Warn("Failed to persist ruling", "error", err)
		} else {
			resp.RulingID = id.ID
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// writeComputeError maps the engine's error taxonomy onto HTTP status
// codes. Malformed or unresolvable requests are the caller's fault;
// combinations the rule catalog cannot express are 422.
func (c *Component) writeComputeError(w http.ResponseWriter, err error) {
	var unknownType *engine.UnknownHeirTypeError
	var unsupported *engine.UnsupportedCombinationError

	switch {
	case errors.Is(err, engine.ErrInsolventEstate):
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:  "insolvent_estate",
			Detail: err.Error(),
		})
	case errors.Is(err, engine.ErrNoHeirs):
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:  "no_heirs",
			Detail: err.Error(),
		})
	case errors.As(err, &unknownType):
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:  "unknown_heir_type",
			Detail: err.Error(),
		})
	case errors.As(err, &unsupported):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:  "unsupported_combination",
			Detail: err.Error(),
		})
	default:
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:  "invalid_request",
			Detail: err.Error(),
		})
	}
}

// ----------------------------------------------------------------------------
// GET /api/estate/heir-types
// ----------------------------------------------------------------------------

// HeirTypeInfo describes one catalog heir type.
type HeirTypeInfo struct {
	Name           string `json:"name"`
	Classification string `json:"classification"`
	DefaultShare   string `json:"default_share,omitempty"`
}

// HeirTypesResponse is the response from GET /api/estate/heir-types.
type HeirTypesResponse struct {
	HeirTypes []HeirTypeInfo `json:"heir_types"`
}

// handleHeirTypes lists the heir types of the active catalog.
func (c *Component) handleHeirTypes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	snap := c.snapshot(r.Context())
	types := snap.HeirTypes()

	out := make([]HeirTypeInfo, 0, len(types))
	for _, t := range types {
		info := HeirTypeInfo{
			Name:           t.Name,
			Classification: string(t.Classification),
		}
		if t.DefaultShare != nil {
			info.DefaultShare = t.DefaultShare.String()
		}
		out = append(out, info)
	}

	writeJSON(w, http.StatusOK, HeirTypesResponse{HeirTypes: out})
}

// ----------------------------------------------------------------------------
// GET /api/estate/rules
// ----------------------------------------------------------------------------

// RuleInfo describes one catalog conditional rule.
type RuleInfo struct {
	Primary      string `json:"primary"`
	Condition    string `json:"condition"`
	Kind         string `json:"kind"`
	ReducedShare string `json:"reduced_share,omitempty"`
}

// RulesResponse is the response from GET /api/estate/rules.
type RulesResponse struct {
	Rules []RuleInfo `json:"rules"`
}

// handleRules lists the conditional rules of the active catalog in
// catalog order.
func (c *Component) handleRules(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	snap := c.snapshot(r.Context())
	rules := snap.Rules()

	out := make([]RuleInfo, 0, len(rules))
	for _, rule := range rules {
		info := RuleInfo{
			Primary:   rule.Primary,
			Condition: rule.Condition,
			Kind:      string(rule.Kind),
		}
		if rule.ReducedShare != nil {
			info.ReducedShare = rule.ReducedShare.String()
		}
		out = append(out, info)
	}

	writeJSON(w, http.StatusOK, RulesResponse{Rules: out})
}

// ----------------------------------------------------------------------------
// GET/PUT /api/estate/catalog
// ----------------------------------------------------------------------------

// handleCatalog serves the stored catalog document. GET returns the
// active document; PUT validates a YAML body and activates it for all
// subsequent computations.
func (c *Component) handleCatalog(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		store := c.requireStore(w)
		if store == nil {
			return
		}
		file, err := store.GetCatalog(r.Context())
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				writeJSON(w, http.StatusOK, catalog.DefaultFile())
				return
			}
			c.logger.Error("Failed to get catalog", "error", err)
			http.Error(w, "Failed to get catalog", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, file)

	case http.MethodPut:
		store := c.requireStore(w)
		if store == nil {
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		data, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request body", http.StatusBadRequest)
			return
		}

		file, err := catalog.ParseFile(data)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{
				Error:  "invalid_catalog",
				Detail: err.Error(),
			})
			return
		}

		if err := store.PutCatalog(r.Context(), file); err != nil {
			c.logger.Error("Failed to store catalog", "error", err)
			http.Error(w, "Failed to store catalog", http.StatusInternalServerError)
			return
		}

		c.logger.Info("Catalog updated",
			"heir_types", len(file.HeirTypes),
			"rules", len(file.Rules))
		writeJSON(w, http.StatusOK, file)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// ----------------------------------------------------------------------------
// GET /api/estate/rulings and /api/estate/rulings/{id}
// ----------------------------------------------------------------------------

// RulingsResponse is the response from GET /api/estate/rulings.
type RulingsResponse struct {
	Rulings []*storage.Ruling `json:"rulings"`
}

// handleRulings lists persisted rulings.
func (c *Component) handleRulings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	store := c.requireStore(w)
	if store == nil {
		return
	}

	rulings, err := store.ListRulings(r.Context())
	if err != nil {
		c.logger.Error("Failed to list rulings", "error", err)
		http.Error(w, "Failed to list rulings", http.StatusInternalServerError)
		return
	}
	if rulings == nil {
		rulings = []*storage.Ruling{}
	}

	writeJSON(w, http.StatusOK, RulingsResponse{Rulings: rulings})
}

// handleRulingByID returns one persisted ruling by its entity ID.
func (c *Component) handleRulingByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	store := c.requireStore(w)
	if store == nil {
		return
	}

	idx := strings.LastIndex(r.URL.Path, "/rulings/")
	if idx < 0 {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	raw := r.URL.Path[idx+len("/rulings/"):]
	if raw == "" {
		http.Error(w, "ruling ID is required", http.StatusBadRequest)
		return
	}

	id, err := storage.ParseEntityID(raw)
	if err != nil {
		// Bare UUIDs are accepted as a convenience.
		id = storage.EntityID{Type: storage.EntityTypeRuling, ID: raw}
	}

	ruling, err := store.GetRuling(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "ruling not found", http.StatusNotFound)
			return
		}
		c.logger.Error("Failed to get ruling", "id", raw, "error", err)
		http.Error(w, "Failed to get ruling", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, ruling)
}

// requireStore writes a 503 when storage is disabled and returns nil.
func (c *Component) requireStore(w http.ResponseWriter) *storage.Store {
	c.mu.RLock()
	store := c.store
	c.mu.RUnlock()

	if store == nil {
		http.Error(w, "ruling storage is not enabled", http.StatusServiceUnavailable)
		return nil
	}
	return store
}

// writeJSON marshals v as JSON and writes it to w with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Response is already partially written; nothing to recover.
		_ = err
	}
}
