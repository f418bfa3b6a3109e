package dtos

import (
	"beacon/api/models"
)

type BeaconError struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type DatasetAlleleResponse struct {
	DatasetId    string       `json:"datasetId"`
	Exists       bool         `json:"exists"`
	Error        *BeaconError `json:"error"`
	Frequency    *float64     `json:"frequency"` // nil when the variant carries no allele frequency
	VariantCount int          `json:"variantCount"`
	CallCount    int          `json:"callCount"`
	SampleCount  int          `json:"sampleCount"`
	Note         string       `json:"note"` // space-prefixed names of the samples carrying the allele
	ExternalUrl  string       `json:"externalUrl,omitempty"`
	Info         string       `json:"info"`
}

type BeaconAlleleResponse struct {
	BeaconId               string                   `json:"beaconId"`
	Exists                 bool                     `json:"exists"`
	Error                  *BeaconError             `json:"error"`
	AlleleRequest          *models.AlleleQuery      `json:"alleleRequest"`
	DatasetAlleleResponses []*DatasetAlleleResponse `json:"datasetAlleleResponses"`
}

// NewBeaconAlleleResponse allocates the response for exactly one query.
func NewBeaconAlleleResponse(beaconId string, query *models.AlleleQuery) *BeaconAlleleResponse {
	return &BeaconAlleleResponse{
		BeaconId:               beaconId,
		AlleleRequest:          query,
		DatasetAlleleResponses: []*DatasetAlleleResponse{},
	}
}

// -- envelopes

type BeaconQueryResponseDto struct {
	Response *BeaconAlleleResponse `json:"response"`
	Beacon   string                `json:"beacon"`
}

type BeaconErrorResponseDto struct {
	Beacon string                 `json:"beacon"`
	Query  map[string]interface{} `json:"query"`
	Error  BeaconError            `json:"error"`
}
