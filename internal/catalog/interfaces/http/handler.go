package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"windasset-cloud/internal/audit"
	"windasset-cloud/internal/auth"
	catalogapp "windasset-cloud/internal/catalog/application"
	catalog "windasset-cloud/internal/catalog/domain"
	"windasset-cloud/internal/catalog/interfaces"
	"windasset-cloud/internal/observability/metrics"
)

// Handler serves catalog lookups, client/project creation, and the fleet
// register with its exports.
type Handler struct {
	service     *catalogapp.Service
	auditLogger audit.Logger
}

// NewHandler constructs a Handler.
func NewHandler(service *catalogapp.Service, auditLogger audit.Logger) (*Handler, error) {
	if service == nil {
		return nil, errors.New("catalog handler: nil service")
	}
	return &Handler{service: service, auditLogger: auditLogger}, nil
}

// Register wires the handler's routes onto a mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/v1/lookups/clients", h.handleClientsLookup)
	mux.HandleFunc("/api/v1/lookups/projects", h.handleProjectsLookup)
	mux.HandleFunc("/api/v1/lookups/asset-types", h.handleAssetTypes)
	mux.HandleFunc("/api/v1/lookups/base-senders", h.handleBaseSenders)
	mux.HandleFunc("/api/v1/clients", h.handleClients)
	mux.HandleFunc("/api/v1/projects", h.handleProjects)
	mux.HandleFunc("/api/v1/fleet", h.handleFleet)
	mux.HandleFunc("/api/v1/fleet/counts", h.handleFleetCounts)
	mux.HandleFunc("/api/v1/exports/fleet.xlsx", h.handleFleetXLSX)
	mux.HandleFunc("/api/v1/exports/fleet.pdf", h.handleFleetPDF)
}

func (h *Handler) handleClientsLookup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	clients, err := h.service.Clients(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, clients)
}

func (h *Handler) handleProjectsLookup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	clientID, err := strconv.ParseInt(r.URL.Query().Get("client_id"), 10, 64)
	if err != nil {
		http.Error(w, "client_id required", http.StatusBadRequest)
		return
	}
	projects, err := h.service.Projects(r.Context(), clientID)
	if err != nil {
		if errors.Is(err, catalog.ErrEmptyClientID) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, projects)
}

func (h *Handler) handleAssetTypes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	types, err := h.service.AssetTypes(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, types)
}

func (h *Handler) handleBaseSenders(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	senders, err := h.service.BaseSenders(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, senders)
}

func (h *Handler) handleClients(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	id, err := h.service.CreateClient(r.Context(), req.Name)
	if err != nil {
		if errors.Is(err, catalog.ErrEmptyClientName) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.logAudit(r, "client.created", "client", strconv.FormatInt(id, 10), map[string]any{"name": req.Name})
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]int64{"client_id": id})
}

func (h *Handler) handleProjects(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		ClientID int64  `json:"client_id"`
		Name     string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	id, err := h.service.CreateProject(r.Context(), req.ClientID, req.Name)
	if err != nil {
		if errors.Is(err, catalog.ErrEmptyClientID) || errors.Is(err, catalog.ErrEmptyProjectName) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.logAudit(r, "project.created", "project", strconv.FormatInt(id, 10), map[string]any{
		"client_id": req.ClientID,
		"name":      req.Name,
	})
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]int64{"project_id": id})
}

func (h *Handler) handleFleet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	rows, err := h.service.Fleet(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, rows)
}

func (h *Handler) handleFleetCounts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	counts, err := h.service.FleetCounts(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	perClient, err := h.service.ClientsWithProjectCounts(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]any{
		"totals":     counts,
		"per_client": perClient,
	})
}

func (h *Handler) handleFleetXLSX(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, "xlsx")
}

func (h *Handler) handleFleetPDF(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, "pdf")
}

func (h *Handler) export(w http.ResponseWriter, r *http.Request, format string) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	rows, err := h.service.Fleet(r.Context())
	if err != nil {
		metrics.FleetExport(format, metrics.ResultRepository)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	counts, err := h.service.FleetCounts(r.Context())
	if err != nil {
		metrics.FleetExport(format, metrics.ResultRepository)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	var payload []byte
	var contentType string
	switch format {
	case "xlsx":
		payload, err = interfaces.BuildFleetXLSX(counts, rows)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case "pdf":
		payload, err = interfaces.BuildFleetPDF(counts, rows)
		contentType = "application/pdf"
	default:
		http.Error(w, "unsupported format", http.StatusBadRequest)
		return
	}
	if err != nil {
		metrics.FleetExport(format, metrics.ResultRepository)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	metrics.FleetExport(format, metrics.ResultSuccess)
	filename := fmt.Sprintf("fleet-%s.%s", time.Now().UTC().Format("20060102"), format)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	_, _ = w.Write(payload)
}

func (h *Handler) logAudit(r *http.Request, action, resourceType, resourceID string, payload map[string]any) {
	if h.auditLogger == nil {
		return
	}
	meta, _ := json.Marshal(payload)
	_ = h.auditLogger.Log(r.Context(), audit.Entry{
		ID:            audit.NewID(),
		Actor:         auth.SubjectFromContext(r.Context()),
		Action:        action,
		ResourceType:  resourceType,
		ResourceID:    resourceID,
		Metadata:      meta,
		PayloadDigest: audit.DigestJSON(meta),
		CreatedAt:     time.Now().UTC(),
	})
}

func writeJSON(w http.ResponseWriter, value any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(value)
}
