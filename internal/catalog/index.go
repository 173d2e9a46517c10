package catalog

import "strings"

// DefaultSearchLimit caps search results when the caller passes no limit.
const DefaultSearchLimit = 50

// Index is an immutable, flattened view over an ICD-10 dataset. Build it
// once at startup and share it; lookups are read-only.
type Index struct {
	entries []Entry
}

// NewIndex flattens the hierarchical dataset into a searchable index.
func NewIndex(nodes []Node) *Index {
	return &Index{entries: Flatten(nodes)}
}

// Len returns the number of searchable entries.
func (ix *Index) Len() int {
	return len(ix.entries)
}

// Search returns up to limit entries matching the query as a
// case-insensitive substring of the code, description or full path.
// An empty or whitespace query returns the first limit entries in catalog
// traversal order. Matches keep traversal order; there is no relevance
// ranking.
func (ix *Index) Search(query string, limit int) []Entry {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	term := strings.ToLower(strings.TrimSpace(query))
	if term == "" {
		if limit > len(ix.entries) {
			limit = len(ix.entries)
		}

		return append([]Entry(nil), ix.entries[:limit]...)
	}

	var results []Entry

	for _, e := range ix.entries {
		if !e.matches(term) {
			continue
		}

		results = append(results, e)
		if len(results) == limit {
			break
		}
	}

	return results
}

// CommonCode is a quick-access shortlist entry.
type CommonCode struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// Common returns the hand-curated shortlist of orthopaedic codes offered
// for quick selection. It is independent of the loaded dataset.
func Common() []CommonCode {
	return []CommonCode{
		{Code: "S72.0", Description: "Fracture of neck of femur"},
		{Code: "S78.1", Description: "Traumatic amputation at level between knee and ankle"},
		{Code: "S88.1", Description: "Traumatic amputation at level between knee and ankle"},
		{Code: "S58.1", Description: "Traumatic amputation at level between elbow and wrist"},
		{Code: "S68.1", Description: "Traumatic amputation of other single finger"},
		{Code: "M79.3", Description: "Panniculitis, unspecified"},
		{Code: "Z89.5", Description: "Acquired absence of leg at or below knee"},
		{Code: "Z89.6", Description: "Acquired absence of leg above knee"},
		{Code: "Z89.2", Description: "Acquired absence of upper limb above elbow"},
		{Code: "Z97.1", Description: "Presence of artificial limb (complete) (partial)"},
	}
}

// SAOPACode is a treatment code from the SAOPA tariff shortlist.
type SAOPACode struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// CommonSAOPACodes returns the treatment codes offered in the line-item
// form.
func CommonSAOPACodes() []SAOPACode {
	return []SAOPACode{
		{Code: "10502", Description: "Prosthetic fitting: TransTibial Endoskeletal"},
		{Code: "10556", Description: "Additional prosthesis fitting - test socket"},
		{Code: "10501", Description: "Prosthetic fitting: TransFemoral Endoskeletal"},
		{Code: "10503", Description: "Prosthetic fitting: Partial Foot"},
		{Code: "10504", Description: "Prosthetic fitting: Hip Disarticulation"},
		{Code: "20001", Description: "Spinal Orthosis - TLSO"},
		{Code: "20002", Description: "Spinal Orthosis - LSO"},
	}
}
