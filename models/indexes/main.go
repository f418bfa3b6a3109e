package indexes

import (
	"time"
)

// Variant is one per-sample variant document of a Gohan-style `variants-*` index.
type Variant struct {
	Chrom  string   `json:"chrom"`
	Pos    int      `json:"pos"` // 1-based VCF position
	Id     string   `json:"id"`
	Ref    []string `json:"ref"`
	Alt    []string `json:"alt"`
	Format []string `json:"format"`
	Qual   int      `json:"qual"`
	Filter string   `json:"filter"`
	Info   []Info   `json:"info"`

	Sample Sample `json:"sample"`

	FileId      string    `json:"fileId"`
	Dataset     string    `json:"dataset"`
	AssemblyId  string    `json:"assemblyId"`
	CreatedTime time.Time `json:"createdTime"`
}

type Info struct {
	Id    string `json:"id"`
	Value string `json:"value"`
}

type Sample struct {
	Id        string    `json:"id"`
	Variation Variation `json:"variation"`
}

type Variation struct {
	Genotype             Genotype   `json:"genotype"`
	GenotypeProbability  []float64  `json:"genotypeProbability"`  // -1 = no call (equivalent to a '.')
	PhredScaleLikelyhood []float64  `json:"phredScaleLikelyhood"` // -1 = no call (equivalent to a '.')
	Alleles              AllelePair `json:"alleles"`
}
type AllelePair struct {
	Left  string `json:"left"`
	Right string `json:"right"` // empty for haploid calls
}

type Genotype struct {
	Phased   bool `json:"phased"`
	Zygosity int  `json:"zygosity"`
}

// Fields of the variant index the store filters, aggregates and sorts on.
const (
	FieldChrom      = "chrom.keyword"
	FieldPos        = "pos"
	FieldFileId     = "fileId.keyword"
	FieldDataset    = "dataset.keyword"
	FieldAssemblyId = "assemblyId.keyword"
	FieldSampleId   = "sample.id.keyword"
	FieldDocId      = "_id"
)
