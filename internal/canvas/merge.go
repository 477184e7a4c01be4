package canvas

import (
	"bytes"
	"encoding/json"

	"stickies/internal/domain"
)

// ImportPlan summarizes what merging an imported snapshot would do.
type ImportPlan struct {
	Total    int `json:"total"`    // ids in the import
	Existing int `json:"existing"` // ids that will overwrite live cards
	New      int `json:"new"`      // ids that will be added
}

// ParseSnapshot decodes an import payload. It must be a JSON object mapping
// non-empty ids to card objects; anything else is a *domain.FormatError.
func ParseSnapshot(data []byte) (domain.Snapshot, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, &domain.FormatError{Reason: "empty payload"}
	}
	if trimmed[0] != '{' {
		return nil, &domain.FormatError{Reason: "top level is not an object"}
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, &domain.FormatError{Reason: "invalid json", Err: err}
	}

	snap := make(domain.Snapshot, len(raw))
	for id, msg := range raw {
		if id == "" {
			return nil, &domain.FormatError{Reason: "empty card id"}
		}
		v := bytes.TrimSpace(msg)
		if len(v) == 0 || v[0] != '{' {
			return nil, &domain.FormatError{Reason: "card " + id + " is not an object"}
		}
		var c domain.Card
		if err := json.Unmarshal(v, &c); err != nil {
			return nil, &domain.FormatError{Reason: "card " + id, Err: err}
		}
		snap[id] = c
	}
	return snap, nil
}

// PlanImport counts how imported relates to live.
func PlanImport(live, imported domain.Snapshot) ImportPlan {
	plan := ImportPlan{Total: len(imported)}
	for id := range imported {
		if _, ok := live[id]; ok {
			plan.Existing++
		}
	}
	plan.New = plan.Total - plan.Existing
	return plan
}

// Merge overrides live key by key: an imported record replaces the live one
// whole, live-only ids are kept and import-only ids are added. Neither input
// is modified.
func Merge(live, imported domain.Snapshot) domain.Snapshot {
	out := live.Clone()
	for id, c := range imported {
		out[id] = c
	}
	return out
}
