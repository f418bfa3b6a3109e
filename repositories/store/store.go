// Package store describes the variant store the Beacon relays queries to.
//
// Listings are streamed through callbacks so that callers can stop early
// without forcing the whole result set to be fetched; returning Stop from a
// callback ends the iteration and the Search* method returns nil.
package store

import (
	"context"
	"errors"
)

// Stop ends an iteration early. It is never returned to the caller.
var Stop = errors.New("stop iteration")

type Dataset struct {
	Id          string `json:"id" mapstructure:"id"`
	Name        string `json:"name" mapstructure:"name"`
	Description string `json:"description" mapstructure:"description"`
}

type ReferenceSet struct {
	Id          string `json:"id" mapstructure:"id"`
	Name        string `json:"name" mapstructure:"name"`
	AssemblyId  string `json:"assemblyId" mapstructure:"assemblyId"`
	Description string `json:"description" mapstructure:"description"`
}

type VariantSet struct {
	Id             string `json:"id" mapstructure:"id"`
	Name           string `json:"name" mapstructure:"name"`
	DatasetId      string `json:"datasetId" mapstructure:"datasetId"`
	ReferenceSetId string `json:"referenceSetId" mapstructure:"referenceSetId"`
}

// Variant is one site of a variant set. Start is 0-based, End exclusive.
// AlternateBases are addressed positionally: genotype value k refers to
// AlternateBases[k-1], 0 to the reference.
type Variant struct {
	Id             string                   `json:"id" mapstructure:"id"`
	VariantSetId   string                   `json:"variantSetId" mapstructure:"variantSetId"`
	ReferenceName  string                   `json:"referenceName" mapstructure:"referenceName"`
	Start          int64                    `json:"start" mapstructure:"start"`
	End            int64                    `json:"end" mapstructure:"end"`
	ReferenceBases string                   `json:"referenceBases" mapstructure:"referenceBases"`
	AlternateBases []string                 `json:"alternateBases" mapstructure:"alternateBases"`
	Names          []string                 `json:"names" mapstructure:"names"`
	Calls          []Call                   `json:"calls" mapstructure:"calls"`
	Info           map[string][]interface{} `json:"info" mapstructure:"info"`
}

type Call struct {
	CallSetId   string `json:"callSetId" mapstructure:"callSetId"`
	CallSetName string `json:"callSetName" mapstructure:"callSetName"`
	Genotype    []int  `json:"genotype" mapstructure:"genotype"` // -1 = no call
}

// HasAllele reports whether either genotype slot carries the given allele index.
func (c Call) HasAllele(index int) bool {
	for _, g := range c.Genotype {
		if g == index {
			return true
		}
	}
	return false
}

// SearchVariantsRequest selects the variants of one variant set overlapping
// the half-open, 0-based interval [Start, End) of ReferenceName.
type SearchVariantsRequest struct {
	VariantSetId  string
	ReferenceName string
	Start         int64
	End           int64
}

type VariantStore interface {
	SearchDatasets(ctx context.Context, fn func(*Dataset) error) error
	SearchReferenceSets(ctx context.Context, fn func(*ReferenceSet) error) error
	SearchVariantSets(ctx context.Context, datasetId string, fn func(*VariantSet) error) error
	SearchVariants(ctx context.Context, req SearchVariantsRequest, fn func(*Variant) error) error
}

// Visit interprets the error returned by a callback: Stop becomes a clean
// end of iteration (stopped == true, nil error), anything else is passed on.
func Visit(err error) (bool, error) {
	if errors.Is(err, Stop) {
		return true, nil
	}
	return false, err
}
