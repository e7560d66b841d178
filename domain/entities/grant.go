package entities

// GrantRule grants a set of capabilities to every origin matching one of the
// origin patterns. Patterns use doublestar glob syntax and are evaluated by
// the policy engine, not here; entities stay free of matching logic.
type GrantRule struct {
	Capabilities []Capability `json:"capabilities" yaml:"capabilities" jsonschema:"required"`
	Origins      []string     `json:"origins" yaml:"origins" jsonschema:"required"`
}

// GrantSet is the persistent collection of capability grants for hosted
// applications.
type GrantSet struct {
	Rules []GrantRule `json:"rules,omitempty" yaml:"rules,omitempty"`
}

// IsEmpty returns true if no grant rules are present.
func (g *GrantSet) IsEmpty() bool {
	return g == nil || len(g.Rules) == 0
}

// Merge appends the rules of other. Duplicate rules are tolerated; grant
// evaluation is first-match so duplicates only cost a comparison.
func (g *GrantSet) Merge(other *GrantSet) {
	if other == nil {
		return
	}
	g.Rules = append(g.Rules, other.Rules...)
}

// Add records a grant of the given capabilities to exactly the given origin.
func (g *GrantSet) Add(origin string, caps ...Capability) {
	if origin == "" || len(caps) == 0 {
		return
	}
	g.Rules = append(g.Rules, GrantRule{
		Capabilities: append([]Capability(nil), caps...),
		Origins:      []string{origin},
	})
}

// Clone returns a deep copy of the GrantSet.
func (g *GrantSet) Clone() *GrantSet {
	if g == nil {
		return nil
	}
	clone := &GrantSet{Rules: make([]GrantRule, len(g.Rules))}
	for i, rule := range g.Rules {
		clone.Rules[i] = GrantRule{
			Capabilities: append([]Capability(nil), rule.Capabilities...),
			Origins:      append([]string(nil), rule.Origins...),
		}
	}
	return clone
}
