// Package types provides type definitions for structured data used throughout the resume-matcher system.
package types

// SkillID is the canonical identifier of a skill in the taxonomy (e.g. "python", "machine_learning").
type SkillID string

// Confidence describes how an alias was resolved to a SkillID.
type Confidence string

const (
	// ConfidenceExact means the surface form matched a taxonomy alias exactly after normalization.
	ConfidenceExact Confidence = "exact"
	// ConfidenceFuzzy means the surface form was accepted by the similarity layer.
	ConfidenceFuzzy Confidence = "fuzzy"
)

// ExtractedSkill records where and how a skill was found in a document.
type ExtractedSkill struct {
	ID         SkillID    `json:"id"`
	Alias      string     `json:"alias"`   // taxonomy alias that matched
	Surface    string     `json:"surface"` // normalized text window that produced the match
	Start      int        `json:"start"`   // byte offset into the raw text
	End        int        `json:"end"`
	Confidence Confidence `json:"confidence"`
}

// SkillSet is an insertion-ordered set of skills with provenance.
// The zero value is not usable; create one with NewSkillSet.
type SkillSet struct {
	order      []SkillID
	provenance map[SkillID][]ExtractedSkill
}

// NewSkillSet creates an empty SkillSet.
func NewSkillSet() *SkillSet {
	return &SkillSet{provenance: make(map[SkillID][]ExtractedSkill)}
}

// SkillSetOf builds a SkillSet from IDs without provenance. Duplicates are dropped.
func SkillSetOf(ids ...SkillID) *SkillSet {
	s := NewSkillSet()
	for _, id := range ids {
		s.Add(ExtractedSkill{ID: id, Confidence: ConfidenceExact})
	}
	return s
}

// Add records an occurrence. It returns true when the skill was not yet in the set.
func (s *SkillSet) Add(occ ExtractedSkill) bool {
	existing, ok := s.provenance[occ.ID]
	s.provenance[occ.ID] = append(existing, occ)
	if ok {
		return false
	}
	s.order = append(s.order, occ.ID)
	return true
}

// Contains reports whether the skill is in the set.
func (s *SkillSet) Contains(id SkillID) bool {
	if s == nil {
		return false
	}
	_, ok := s.provenance[id]
	return ok
}

// Len returns the number of distinct skills.
func (s *SkillSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

// IDs returns the skills in first-occurrence order.
func (s *SkillSet) IDs() []SkillID {
	if s == nil {
		return []SkillID{}
	}
	out := make([]SkillID, len(s.order))
	copy(out, s.order)
	return out
}

// Strings returns the skill IDs as plain strings in first-occurrence order.
func (s *SkillSet) Strings() []string {
	ids := s.IDs()
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}

// First returns the first occurrence of a skill.
func (s *SkillSet) First(id SkillID) (ExtractedSkill, bool) {
	if s == nil {
		return ExtractedSkill{}, false
	}
	occ, ok := s.provenance[id]
	if !ok || len(occ) == 0 {
		return ExtractedSkill{}, false
	}
	return occ[0], true
}

// Provenance returns every recorded occurrence of a skill, in text order.
func (s *SkillSet) Provenance(id SkillID) []ExtractedSkill {
	if s == nil {
		return nil
	}
	occ := s.provenance[id]
	out := make([]ExtractedSkill, len(occ))
	copy(out, occ)
	return out
}
