package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"sync"
)

// fakeGmailServer serves the labels endpoint the ingest wizard resolves
// against. Labels load from a JSON file or fall back to a small built-in
// set.
type fakeGmailServer struct {
	token string

	mu     sync.Mutex
	labels []label
	calls  int64
}

type label struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func main() {
	addr := getenvDefault("FAKE_GMAIL_ADDR", ":18090")
	token := getenvDefault("FAKE_GMAIL_TOKEN", "")
	labelsFile := getenvDefault("FAKE_GMAIL_LABELS_FILE", "")

	srv := &fakeGmailServer{token: token, labels: defaultLabels()}
	if labelsFile != "" {
		loaded, err := loadLabels(labelsFile)
		if err != nil {
			log.Fatalf("load labels: %v", err)
		}
		srv.labels = loaded
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", srv.handleHealth)
	mux.HandleFunc("/gmail/v1/users/me/labels", srv.handleLabels)

	log.Printf("fake gmail listening on %s (%d labels)", addr, len(srv.labels))
	log.Fatal(http.ListenAndServe(addr, mux))
}

func (s *fakeGmailServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	calls := s.calls
	s.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"status":"ok","label_calls":%d}`, calls)
}

func (s *fakeGmailServer) handleLabels(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if s.token != "" {
		header := r.Header.Get("Authorization")
		if !strings.EqualFold(header, "Bearer "+s.token) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
	}

	s.mu.Lock()
	s.calls++
	labels := make([]label, len(s.labels))
	copy(labels, s.labels)
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string][]label{"labels": labels})
}

func loadLabels(path string) ([]label, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var labels []label
	if err := json.Unmarshal(data, &labels); err != nil {
		return nil, err
	}
	return labels, nil
}

func defaultLabels() []label {
	return []label{
		{ID: "Label_101", Name: "Acme Wind"},
		{ID: "Label_204", Name: "Acme Wind/MM42"},
		{ID: "Label_207", Name: "Acme Wind/ZX300-0042"},
		{ID: "Label_310", Name: "Borealis Energy"},
		{ID: "Label_412", Name: "Borealis Energy/Sodar-7"},
	}
}

func getenvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
