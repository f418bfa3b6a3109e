package assemblyId

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatches(t *testing.T) {
	assert.True(t, Matches("hg19", "GRCh37"))
	assert.True(t, Matches("NCBI37", "grch37"))
	assert.True(t, Matches("CHM13", "chm13"))
	assert.False(t, Matches("GRCh38", "GRCh37"))
	assert.False(t, Matches("", "GRCh37"))
	assert.False(t, Matches("GRCh37", ""))
}
