package existsPolicy

import (
	"beacon/api/models/constants"
	"strings"
)

const (
	// the flag is overwritten by every examined record; the last one wins
	LastRecord constants.ExistsPolicy = "last-record"
	// the flag is the logical OR of every examined record
	Any constants.ExistsPolicy = "any"
)

func CastToExistsPolicy(text string) constants.ExistsPolicy {
	switch strings.ToLower(text) {
	case "any", "or":
		return Any
	default:
		return LastRecord
	}
}
