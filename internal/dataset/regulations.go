package dataset

import "strings"

// Legality buckets how friendly a market's STR rules are to a new operator.
type Legality string

const (
	LegalityLegal      Legality = "legal"
	LegalityRestricted Legality = "restricted"
	LegalityBanned     Legality = "banned"
	LegalityUnknown    Legality = "unknown"
)

// Regulation describes the known short-term-rental rules for one market.
type Regulation struct {
	Legality         Legality `yaml:"legality" json:"legality"`
	PermitRequired   bool     `yaml:"permit_required,omitempty" json:"permit_required,omitempty"`
	PermitDifficulty string   `yaml:"permit_difficulty,omitempty" json:"permit_difficulty,omitempty"`
	Summary          string   `yaml:"summary,omitempty" json:"summary,omitempty"`
	SourceURL        string   `yaml:"source_url,omitempty" json:"source_url,omitempty"`
}

// defaultRegulation is reported for markets with no curated entry. Most small
// markets have no STR ordinance at all, so the neutral assumption is legal
// with moderate friction rather than unknown-and-scary.
var defaultRegulation = Regulation{
	Legality:         LegalityLegal,
	PermitDifficulty: "moderate",
	Summary:          "No specific short-term rental ordinance on record; verify with the county before purchasing.",
}

// Regulation returns the curated regulation for a city id, or the neutral
// default when none is on record.
func (d *Dataset) Regulation(cityID string) Regulation {
	if r, ok := d.Regulations[strings.ToLower(cityID)]; ok {
		if r.Legality == "" {
			r.Legality = LegalityUnknown
		}
		return r
	}
	return defaultRegulation
}
