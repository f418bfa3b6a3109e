package chromosome

import (
	"strings"
)

const chrPrefix = "chr"

// Normalize strips a leading "chr" from a reference name; upstream variant
// sets index chromosomes without it.
func Normalize(referenceName string) string {
	if strings.HasPrefix(referenceName, chrPrefix) {
		return strings.TrimPrefix(referenceName, chrPrefix)
	}
	return referenceName
}
