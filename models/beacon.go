package models

import (
	"encoding/json"

	"beacon/api/models/constants"
)

// AlleleQuery is the request-scoped form of a Beacon allele request.
// Start is 0-based; the gateway converts the 1-based HTTP `start` exactly once.
type AlleleQuery struct {
	ReferenceName           string               `json:"referenceName"`
	Start                   int64                `json:"-"`
	ReferenceBases          string               `json:"referenceBases"`
	AlternateBases          string               `json:"alternateBases"`
	AssemblyId              constants.AssemblyId `json:"assemblyId"`
	DatasetIds              []string             `json:"datasetIds"`
	IncludeDatasetResponses bool                 `json:"includeDatasetResponses"`
}

// Position is the 1-based position the client asked for.
func (q AlleleQuery) Position() int64 {
	return q.Start + 1
}

// MarshalJSON echoes the request back in the client's 1-based convention.
func (q AlleleQuery) MarshalJSON() ([]byte, error) {
	type noMethod AlleleQuery
	return json.Marshal(struct {
		noMethod
		Start int64 `json:"start"`
	}{noMethod(q), q.Position()})
}

type BeaconOrganization struct {
	Id          string                 `json:"id"`
	Name        string                 `json:"name"`
	Description string                 `json:"description,omitempty"`
	Address     string                 `json:"address,omitempty"`
	WelcomeUrl  string                 `json:"welcomeUrl,omitempty"`
	ContactUrl  string                 `json:"contactUrl,omitempty"`
	LogoUrl     string                 `json:"logoUrl,omitempty"`
	Info        map[string]interface{} `json:"info"`
}

type BeaconDataset struct {
	Id             string                 `json:"id"`
	Name           string                 `json:"name"`
	Description    string                 `json:"description,omitempty"`
	AssemblyId     string                 `json:"assemblyId"`
	CreateDateTime string                 `json:"createDateTime"`
	UpdateDateTime string                 `json:"updateDateTime"`
	Version        string                 `json:"version,omitempty"`
	VariantCount   *int                   `json:"variantCount,omitempty"`
	CallCount      *int                   `json:"callCount,omitempty"`
	SampleCount    *int                   `json:"sampleCount,omitempty"`
	ExternalUrl    string                 `json:"externalUrl,omitempty"`
	Info           map[string]interface{} `json:"info"`
}

// SampleAlleleRequest is an example query advertised by /info; Start is 1-based.
type SampleAlleleRequest struct {
	ReferenceName           string   `json:"referenceName"`
	Start                   int64    `json:"start"`
	ReferenceBases          string   `json:"referenceBases"`
	AlternateBases          string   `json:"alternateBases"`
	AssemblyId              string   `json:"assemblyId"`
	DatasetIds              []string `json:"datasetIds"`
	IncludeDatasetResponses bool     `json:"includeDatasetResponses"`
}

type Beacon struct {
	Id                   string                 `json:"id"`
	Name                 string                 `json:"name"`
	ApiVersion           string                 `json:"apiVersion"`
	Organization         BeaconOrganization     `json:"organization"`
	Description          string                 `json:"description,omitempty"`
	Version              string                 `json:"version,omitempty"`
	WelcomeUrl           string                 `json:"welcomeUrl,omitempty"`
	AlternativeUrl       string                 `json:"alternativeUrl,omitempty"`
	CreateDateTime       string                 `json:"createDateTime,omitempty"`
	UpdateDateTime       string                 `json:"updateDateTime,omitempty"`
	Datasets             []BeaconDataset        `json:"datasets"`
	SampleAlleleRequests []SampleAlleleRequest  `json:"sampleAlleleRequests"`
	Info                 map[string]interface{} `json:"info"`
}
