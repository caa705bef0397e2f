package maillabel

import (
	"context"
	"errors"
	"strings"
)

// ErrInvalidDisplayText is returned when the display text does not contain
// both a client name and an asset identifier.
var ErrInvalidDisplayText = errors.New("maillabel: display text needs client name and asset identifier")

// LabelLister lists mailbox labels.
type LabelLister interface {
	ListLabels(ctx context.Context) ([]Label, error)
}

// Match is a resolved mailbox label.
type Match struct {
	LabelID   string
	LabelName string
}

// Resolver maps a display string "{Client} {AssetIdentifier}" to a mailbox
// label. Resolution is heuristic and best-effort: callers must treat a miss
// or an error as non-fatal.
type Resolver struct {
	lister LabelLister
}

// NewResolver constructs a resolver.
func NewResolver(lister LabelLister) (*Resolver, error) {
	if lister == nil {
		return nil, errors.New("maillabel: nil lister")
	}
	return &Resolver{lister: lister}, nil
}

// Resolve finds the best matching label for the display text. The last
// whitespace-separated field is the asset identifier, everything before it
// the client name. Priority: exact "{Client}/{Asset}", exact "{Client}",
// case-insensitive variants of both, then the first label whose name starts
// with the client name. Returns found=false on a clean miss.
func (r *Resolver) Resolve(ctx context.Context, displayText string) (Match, bool, error) {
	if r == nil || r.lister == nil {
		return Match{}, false, errors.New("maillabel: nil resolver")
	}

	fields := strings.Fields(displayText)
	if len(fields) < 2 {
		return Match{}, false, ErrInvalidDisplayText
	}
	clientName := strings.Join(fields[:len(fields)-1], " ")
	assetID := fields[len(fields)-1]

	candidates := []string{
		clientName + "/" + assetID,
		clientName,
	}

	labels, err := r.lister.ListLabels(ctx)
	if err != nil {
		return Match{}, false, err
	}

	for _, candidate := range candidates {
		for _, label := range labels {
			if label.Name == candidate {
				return Match{LabelID: label.ID, LabelName: label.Name}, true, nil
			}
		}
	}

	for _, candidate := range candidates {
		for _, label := range labels {
			if strings.EqualFold(label.Name, candidate) {
				return Match{LabelID: label.ID, LabelName: label.Name}, true, nil
			}
		}
	}

	for _, label := range labels {
		if strings.HasPrefix(label.Name, clientName) {
			return Match{LabelID: label.ID, LabelName: label.Name}, true, nil
		}
	}

	return Match{}, false, nil
}
