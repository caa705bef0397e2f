package maillabel

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Label is a mailbox organizational label.
type Label struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Client is a minimal Gmail labels REST client.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewClient constructs a labels client.
func NewClient(baseURL, token string) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("maillabel: empty base url")
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  &http.Client{Timeout: 10 * time.Second},
	}, nil
}

type labelListResponse struct {
	Labels []Label `json:"labels"`
}

// ListLabels fetches all labels for the authenticated mailbox, ordered by
// the numeric suffix of the label id, newest first. The order decides which
// prefix match wins during resolution.
func (c *Client) ListLabels(ctx context.Context) ([]Label, error) {
	if c == nil {
		return nil, errors.New("maillabel: nil client")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/gmail/v1/users/me/labels", nil)
	if err != nil {
		return nil, err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("maillabel: list labels: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("maillabel: list labels: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload labelListResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("maillabel: decode labels: %w", err)
	}

	labels := payload.Labels
	sortLabelsByIDSuffix(labels)
	return labels, nil
}

// sortLabelsByIDSuffix orders labels by the trailing number of their id,
// descending; labels without one keep their relative order at the end.
func sortLabelsByIDSuffix(labels []Label) {
	keyed := make(map[string]float64, len(labels))
	for _, label := range labels {
		keyed[label.ID] = idSuffix(label.ID)
	}
	// insertion sort keeps ties stable
	for i := 1; i < len(labels); i++ {
		for j := i; j > 0 && keyed[labels[j].ID] > keyed[labels[j-1].ID]; j-- {
			labels[j], labels[j-1] = labels[j-1], labels[j]
		}
	}
}

func idSuffix(id string) float64 {
	parts := strings.Split(id, "_")
	if len(parts) < 2 {
		return -1
	}
	n, err := strconv.ParseFloat(parts[len(parts)-1], 64)
	if err != nil {
		return -1
	}
	return n
}
