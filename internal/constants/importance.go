package constants

import "strings"

type Importance string

const (
	ImportanceLess Importance = "less important"
	ImportanceMid  Importance = "important"
	ImportanceHigh Importance = "very important"
)

var importanceRanks = map[Importance]int{
	ImportanceLess: 0,
	ImportanceMid:  1,
	ImportanceHigh: 2,
}

// ParseImportance accepts the canonical names as well as hyphen and
// underscore spellings ("very-important", "VERY_IMPORTANT").
func ParseImportance(raw string) (Importance, bool) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	normalized = strings.NewReplacer("-", " ", "_", " ").Replace(normalized)
	normalized = strings.Join(strings.Fields(normalized), " ")

	imp := Importance(normalized)
	if !imp.Valid() {
		return "", false
	}
	return imp, true
}

func (i Importance) Rank() int {
	return importanceRanks[i]
}

func (i Importance) Valid() bool {
	_, ok := importanceRanks[i]
	return ok
}

// ImportancesByRank lists the values lowest rank first.
func ImportancesByRank() []Importance {
	return []Importance{ImportanceLess, ImportanceMid, ImportanceHigh}
}
