package assemblyId

import (
	"strings"

	"beacon/api/models/constants"
)

const (
	Unknown constants.AssemblyId = "Unknown"

	GRCh38 constants.AssemblyId = "GRCh38"
	GRCh37 constants.AssemblyId = "GRCh37"
	NCBI36 constants.AssemblyId = "NCBI36"
	NCBI35 constants.AssemblyId = "NCBI35"
	NCBI34 constants.AssemblyId = "NCBI34"
	Other  constants.AssemblyId = "Other"
)

func CastToAssemblyId(text string) constants.AssemblyId {
	switch strings.ToLower(text) {
	case "grch38", "hg38":
		return GRCh38
	case "grch37", "hg19", "ncbi37":
		return GRCh37
	case "ncbi36", "hg18":
		return NCBI36
	case "ncbi35", "hg17":
		return NCBI35
	case "ncbi34", "hg16":
		return NCBI34
	case "other":
		return Other
	default:
		return Unknown
	}
}

// Matches reports whether a requested assembly names the same build as the
// one advertised upstream. Unknown names fall back to a case-insensitive
// comparison of the raw text.
func Matches(requested string, advertised string) bool {
	if requested == "" || advertised == "" {
		return false
	}
	r, a := CastToAssemblyId(requested), CastToAssemblyId(advertised)
	if r != Unknown && a != Unknown {
		return r == a
	}
	return strings.EqualFold(strings.TrimSpace(requested), strings.TrimSpace(advertised))
}
