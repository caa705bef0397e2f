package maillabel

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestListLabelsSortsByIDSuffixDescending(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/gmail/v1/users/me/labels" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"labels":[
			{"id":"Label_12","name":"Old"},
			{"id":"INBOX","name":"Inbox"},
			{"id":"Label_340","name":"Newest"},
			{"id":"Label_97","name":"Newer"}
		]}`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "")
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}

	labels, err := client.ListLabels(context.Background())
	if err != nil {
		t.Fatalf("ListLabels error: %v", err)
	}

	got := make([]string, len(labels))
	for i, label := range labels {
		got[i] = label.ID
	}
	want := []string{"Label_340", "Label_97", "Label_12", "INBOX"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d: expected %s, got %s (all: %v)", i, want[i], got[i], got)
		}
	}
}

func TestListLabelsSendsBearerToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer secret-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"labels":[]}`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "secret-token")
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}
	if _, err := client.ListLabels(context.Background()); err != nil {
		t.Fatalf("ListLabels error: %v", err)
	}
}

func TestListLabelsNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "backend down", http.StatusBadGateway)
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "")
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}
	if _, err := client.ListLabels(context.Background()); err == nil {
		t.Fatal("expected error on non-200 status")
	}
}
