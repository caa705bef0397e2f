package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	wizardapp "windasset-cloud/internal/wizard/application"
	wizard "windasset-cloud/internal/wizard/domain"
)

// Handler serves the asset-creation wizard endpoints.
type Handler struct {
	service *wizardapp.Service
}

// NewHandler constructs a Handler.
func NewHandler(service *wizardapp.Service) (*Handler, error) {
	if service == nil {
		return nil, errors.New("wizard handler: nil service")
	}
	return &Handler{service: service}, nil
}

// ServeHTTP routes wizard requests under /api/v1/wizard/sessions.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/api/v1/wizard/sessions" {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.handleStart(w, r)
		return
	}

	if !strings.HasPrefix(r.URL.Path, "/api/v1/wizard/sessions/") {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/wizard/sessions/")
	parts := strings.Split(path, "/")
	if len(parts) < 1 || parts[0] == "" {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	sessionID := parts[0]

	if len(parts) == 1 && r.Method == http.MethodGet {
		h.handleGet(w, r, sessionID)
		return
	}
	if len(parts) == 2 && parts[1] == "next" && r.Method == http.MethodPost {
		h.handleNext(w, r, sessionID)
		return
	}
	if len(parts) == 2 && parts[1] == "back" && r.Method == http.MethodPost {
		h.handleBack(w, r, sessionID)
		return
	}
	if len(parts) == 2 && parts[1] == "cancel" && r.Method == http.MethodPost {
		h.handleCancel(w, r, sessionID)
		return
	}

	w.WriteHeader(http.StatusNotFound)
}

func (h *Handler) handleStart(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.StartSession(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeSession(w, http.StatusCreated, session)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request, sessionID string) {
	_ = r
	session, err := h.service.Session(sessionID)
	if err != nil {
		respondWizardError(w, err)
		return
	}
	writeSession(w, http.StatusOK, session)
}

func (h *Handler) handleNext(w http.ResponseWriter, r *http.Request, sessionID string) {
	current, err := h.service.Session(sessionID)
	if err != nil {
		respondWizardError(w, err)
		return
	}

	input, err := decodeStepInput(r, current.Step)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	session, err := h.service.Next(r.Context(), sessionID, input)
	if err != nil {
		if wizard.IsRecoverable(err) {
			writeSessionError(w, http.StatusUnprocessableEntity, session, err)
			return
		}
		respondWizardError(w, err)
		return
	}
	writeSession(w, http.StatusOK, session)
}

func (h *Handler) handleBack(w http.ResponseWriter, r *http.Request, sessionID string) {
	session, err := h.service.Back(r.Context(), sessionID)
	if err != nil {
		respondWizardError(w, err)
		return
	}
	writeSession(w, http.StatusOK, session)
}

func (h *Handler) handleCancel(w http.ResponseWriter, r *http.Request, sessionID string) {
	session, err := h.service.Cancel(r.Context(), sessionID)
	if err != nil {
		respondWizardError(w, err)
		return
	}
	writeSession(w, http.StatusOK, session)
}

// decodeStepInput reads the form matching the session's current step. The
// client does not name the step; the session dictates what is expected.
func decodeStepInput(r *http.Request, step wizard.Step) (wizard.StepInput, error) {
	decoder := json.NewDecoder(r.Body)
	switch step {
	case wizard.StepIdentity:
		var form identityRequest
		if err := decoder.Decode(&form); err != nil {
			return nil, errors.New("invalid json")
		}
		return wizard.IdentityForm{
			ClientName:  form.ClientName,
			ProjectName: form.ProjectName,
			AssetTypeID: form.AssetTypeID,
			AssetName:   form.AssetName,
		}, nil
	case wizard.StepProjectLink:
		var form projectLinkRequest
		if err := decoder.Decode(&form); err != nil {
			return nil, errors.New("invalid json")
		}
		return wizard.ProjectLinkForm{
			ProjectName: form.ProjectName,
			Pairing:     form.Pairing,
		}, nil
	case wizard.StepLocation:
		var form locationRequest
		if err := decoder.Decode(&form); err != nil {
			return nil, errors.New("invalid json")
		}
		return wizard.LocationForm{
			Latitude:  form.Latitude,
			Longitude: form.Longitude,
			Elevation: form.Elevation,
		}, nil
	case wizard.StepIngest:
		var form ingestRequest
		if err := decoder.Decode(&form); err != nil {
			return nil, errors.New("invalid json")
		}
		return wizard.IngestForm{
			Sender:             form.Sender,
			DropboxPath:        form.DropboxPath,
			AltospherePath:     form.AltospherePath,
			GmailFolderID:      form.GmailFolderID,
			EmailText:          form.EmailText,
			LoggerSiteNumber:   form.LoggerSiteNumber,
			ShowInLoggerViewer: form.ShowInLoggerViewer,
			ShowInEmail:        form.ShowInEmail,
		}, nil
	default:
		return nil, errors.New("session is not accepting input")
	}
}

type identityRequest struct {
	ClientName  string `json:"client_name"`
	ProjectName string `json:"project_name"`
	AssetTypeID int    `json:"asset_type_id"`
	AssetName   string `json:"asset_name"`
}

type projectLinkRequest struct {
	ProjectName string `json:"project_name"`
	Pairing     string `json:"pairing"`
}

type locationRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Elevation *float64 `json:"elevation"`
}

type ingestRequest struct {
	Sender             string `json:"sender"`
	DropboxPath        string `json:"dropbox_path"`
	AltospherePath     string `json:"altosphere_path"`
	GmailFolderID      string `json:"gmail_folder_id"`
	EmailText          string `json:"email_text"`
	LoggerSiteNumber   string `json:"logger_site_number"`
	ShowInLoggerViewer bool   `json:"show_in_logger_viewer"`
	ShowInEmail        bool   `json:"show_in_email"`
}

type sessionResponse struct {
	ID        string           `json:"id"`
	Step      string           `json:"step"`
	Cancelled bool             `json:"cancelled"`
	LastError string           `json:"last_error,omitempty"`
	Error     string           `json:"error,omitempty"`
	Identity  *identityPayload `json:"identity,omitempty"`
	Link      *linkPayload     `json:"link,omitempty"`
	Location  *locationPayload `json:"location,omitempty"`
	Ingest    *ingestPayload   `json:"ingest,omitempty"`
}

type identityPayload struct {
	ClientName  string `json:"client_name"`
	ProjectName string `json:"project_name"`
	ProjectID   int64  `json:"project_id"`
	AssetTypeID int    `json:"asset_type_id"`
	AssetName   string `json:"asset_name"`
	AssetID     int64  `json:"asset_id"`
}

type linkPayload struct {
	ProjectID      int64  `json:"project_id"`
	ProjectName    string `json:"project_name"`
	PairedWith     *int64 `json:"paired_with,omitempty"`
	ProjectAssetID int64  `json:"project_asset_id"`
}

type locationPayload struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Elevation float64 `json:"elevation"`
}

type ingestPayload struct {
	Sender        string `json:"sender"`
	GmailFolderID string `json:"gmail_folder_id,omitempty"`
}

func toSessionResponse(session wizard.Session) sessionResponse {
	resp := sessionResponse{
		ID:        session.ID,
		Step:      session.Step.String(),
		Cancelled: session.Cancelled,
		LastError: session.LastError,
	}
	if session.Identity != nil {
		resp.Identity = &identityPayload{
			ClientName:  session.Identity.ClientName,
			ProjectName: session.Identity.ProjectName,
			ProjectID:   session.Identity.ProjectID,
			AssetTypeID: session.Identity.AssetTypeID,
			AssetName:   session.Identity.AssetName,
			AssetID:     session.Identity.AssetID,
		}
	}
	if session.Link != nil {
		resp.Link = &linkPayload{
			ProjectID:      session.Link.ProjectID,
			ProjectName:    session.Link.ProjectName,
			PairedWith:     session.Link.PairedWith,
			ProjectAssetID: session.Link.ProjectAssetID,
		}
	}
	if session.Location != nil {
		resp.Location = &locationPayload{
			Latitude:  session.Location.Latitude,
			Longitude: session.Location.Longitude,
			Elevation: session.Location.Elevation,
		}
	}
	if session.Ingest != nil {
		resp.Ingest = &ingestPayload{
			Sender:        session.Ingest.Sender,
			GmailFolderID: session.Ingest.GmailFolderID,
		}
	}
	return resp
}

func writeSession(w http.ResponseWriter, status int, session wizard.Session) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(toSessionResponse(session))
}

func writeSessionError(w http.ResponseWriter, status int, session wizard.Session, err error) {
	resp := toSessionResponse(session)
	resp.Error = err.Error()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

func respondWizardError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, wizard.ErrSessionNotFound):
		http.Error(w, "session not found", http.StatusNotFound)
	case errors.Is(err, wizard.ErrSessionClosed):
		http.Error(w, "session closed", http.StatusConflict)
	case errors.Is(err, wizard.ErrStepOutOfOrder), errors.Is(err, wizard.ErrMissingPriorStep):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, wizard.ErrUnexpectedInput):
		http.Error(w, "payload does not match current step", http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
