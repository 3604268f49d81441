package persist

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"serverlister/core/reconcile"
)

// DocumentVersion is the current document format version.
const DocumentVersion = 1

// Document is the on-disk representation of a server list.
type Document struct {
	Version   int                      `json:"version"`
	Game      string                   `json:"game"`
	UpdatedAt time.Time                `json:"updatedAt"`
	Servers   []reconcile.ServerRecord `json:"servers"`
}

// FileName returns the conventional document name for a game.
func FileName(game string) string {
	return game + "-servers.json"
}

// Encode writes records as an indented document. Records are sorted by
// address.
func Encode(w io.Writer, game string, records []reconcile.ServerRecord, updatedAt time.Time) error {
	servers := make([]reconcile.ServerRecord, len(records))
	copy(servers, records)
	sort.Slice(servers, func(i, j int) bool {
		return servers[i].Address < servers[j].Address
	})

	doc := Document{
		Version:   DocumentVersion,
		Game:      game,
		UpdatedAt: updatedAt.UTC(),
		Servers:   servers,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode server list: %w", err)
	}
	return nil
}

// Decode reads a document or a bare array of records.
func Decode(r io.Reader) ([]reconcile.ServerRecord, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read server list: %w", err)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}

	if trimmed[0] == '[' {
		var records []reconcile.ServerRecord
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, fmt.Errorf("failed to decode server list: %w", err)
		}
		return records, nil
	}

	var doc Document
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode server list: %w", err)
	}
	if doc.Version > DocumentVersion {
		return nil, fmt.Errorf("unsupported server list version %d", doc.Version)
	}
	return doc.Servers, nil
}
