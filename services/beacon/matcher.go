package beaconService

import (
	"strings"

	"beacon/api/repositories/store"
)

const symbolicAllelePrefix = "<"

/*
Match reports whether the requested allele is carried by one of the variant's
alternates and, if so, the index of the first alternate that carries it.

start is 0-based, in the same convention as v.Start. A single-base allele is
compared against the alternate's base at offset start - v.Start; a multi-base
allele only matches an alternate in full. Symbolic alternates are skipped.
When nothing matches the returned index is len(v.AlternateBases).
*/
func Match(allele string, v *store.Variant, start int64) (bool, int) {
	offset := start - v.Start

	for i, alt := range v.AlternateBases {
		if strings.HasPrefix(alt, symbolicAllelePrefix) {
			continue
		}

		if len(allele) > 1 {
			if alt == allele {
				return true, i
			}
			continue
		}

		if offset >= 0 && int64(len(alt)) > offset && alt[offset:offset+1] == allele {
			return true, i
		}
	}

	return false, len(v.AlternateBases)
}
