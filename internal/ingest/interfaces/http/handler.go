package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	ingestapp "windasset-cloud/internal/ingest/application"
	ingest "windasset-cloud/internal/ingest/domain"
)

// Handler serves ingest config reads and file map maintenance.
type Handler struct {
	service *ingestapp.Service
}

// NewHandler constructs a Handler.
func NewHandler(service *ingestapp.Service) (*Handler, error) {
	if service == nil {
		return nil, errors.New("ingest handler: nil service")
	}
	return &Handler{service: service}, nil
}

// Register wires the handler's routes onto a mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/v1/ingest/configs", h.handleConfig)
	mux.HandleFunc("/api/v1/ingest/file-maps", h.handleFileMaps)
}

func (h *Handler) handleConfig(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	projectAssetID, err := strconv.ParseInt(r.URL.Query().Get("project_asset_id"), 10, 64)
	if err != nil {
		http.Error(w, "project_asset_id required", http.StatusBadRequest)
		return
	}
	config, err := h.service.Config(r.Context(), projectAssetID)
	if err != nil {
		if errors.Is(err, ingest.ErrConfigNotFound) {
			http.Error(w, "config not found", http.StatusNotFound)
			return
		}
		if errors.Is(err, ingest.ErrEmptyProjectAssetID) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(toConfigResponse(*config))
}

func (h *Handler) handleFileMaps(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.handleFileMapAdd(w, r)
	case http.MethodGet:
		h.handleFileMapList(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *Handler) handleFileMapAdd(w http.ResponseWriter, r *http.Request) {
	var req struct {
		MapKey         string `json:"map_key"`
		ProjectAssetID int64  `json:"project_asset_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if err := h.service.AddFileMapEntry(r.Context(), req.MapKey, req.ProjectAssetID); err != nil {
		if errors.Is(err, ingest.ErrEmptyMapKey) || errors.Is(err, ingest.ErrEmptyProjectAssetID) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) handleFileMapList(w http.ResponseWriter, r *http.Request) {
	projectAssetID, err := strconv.ParseInt(r.URL.Query().Get("project_asset_id"), 10, 64)
	if err != nil {
		http.Error(w, "project_asset_id required", http.StatusBadRequest)
		return
	}
	entries, err := h.service.FileMapEntries(r.Context(), projectAssetID)
	if err != nil {
		if errors.Is(err, ingest.ErrEmptyProjectAssetID) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	out := make([]fileMapResponse, 0, len(entries))
	for _, entry := range entries {
		out = append(out, fileMapResponse{MapKey: entry.MapKey, ProjectAssetID: entry.ProjectAssetID})
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(out)
}

type fileMapResponse struct {
	MapKey         string `json:"map_key"`
	ProjectAssetID int64  `json:"project_asset_id"`
}

type configResponse struct {
	ProjectAssetID     int64  `json:"project_asset_id"`
	Sender             string `json:"sender"`
	DropboxPath        string `json:"dropbox_path,omitempty"`
	AltospherePath     string `json:"altosphere_path,omitempty"`
	GmailFolderID      string `json:"gmail_folder_id,omitempty"`
	EmailText          string `json:"email_text,omitempty"`
	LoggerSiteNumber   string `json:"logger_site_number,omitempty"`
	ShowInLoggerViewer bool   `json:"show_in_logger_viewer"`
	ShowInEmail        bool   `json:"show_in_email"`
}

func toConfigResponse(config ingest.Config) configResponse {
	return configResponse{
		ProjectAssetID:     config.ProjectAssetID,
		Sender:             config.Sender,
		DropboxPath:        config.DropboxPath,
		AltospherePath:     config.AltospherePath,
		GmailFolderID:      config.GmailFolderID,
		EmailText:          config.EmailText,
		LoggerSiteNumber:   config.LoggerSiteNumber,
		ShowInLoggerViewer: config.ShowInLoggerViewer,
		ShowInEmail:        config.ShowInEmail,
	}
}
