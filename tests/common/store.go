package common

import (
	"context"
	"sync"

	"beacon/api/repositories/store"
)

// FakeStore is an in-memory store.VariantStore. Variants are keyed by variant
// set id and returned when they overlap the requested interval.
type FakeStore struct {
	Datasets      []store.Dataset
	ReferenceSets []store.ReferenceSet
	VariantSets   []store.VariantSet
	Variants      map[string][]store.Variant

	// returned by every Search* call when set
	Err error

	mu       sync.Mutex
	Searches []store.SearchVariantsRequest
}

func NewFakeStore() *FakeStore {
	return &FakeStore{
		Datasets:      []store.Dataset{{Id: "ds1", Name: "1kgenomes", Description: "1000 Genomes phase 3"}},
		ReferenceSets: []store.ReferenceSet{{Id: "rs1", Name: "NCBI37", AssemblyId: "GRCh37"}},
		Variants:      map[string][]store.Variant{},
	}
}

// AddVariants registers a variant set of dataset datasetId holding variants.
func (f *FakeStore) AddVariants(variantSetId string, datasetId string, variants ...store.Variant) {
	f.VariantSets = append(f.VariantSets, store.VariantSet{Id: variantSetId, Name: variantSetId, DatasetId: datasetId})
	f.Variants[variantSetId] = append(f.Variants[variantSetId], variants...)
}

// SearchCount is the number of variant searches issued so far.
func (f *FakeStore) SearchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Searches)
}

func (f *FakeStore) SearchDatasets(ctx context.Context, fn func(*store.Dataset) error) error {
	if f.Err != nil {
		return f.Err
	}
	for i := range f.Datasets {
		d := f.Datasets[i]
		if stopped, err := store.Visit(fn(&d)); stopped || err != nil {
			return err
		}
	}
	return nil
}

func (f *FakeStore) SearchReferenceSets(ctx context.Context, fn func(*store.ReferenceSet) error) error {
	if f.Err != nil {
		return f.Err
	}
	for i := range f.ReferenceSets {
		rs := f.ReferenceSets[i]
		if stopped, err := store.Visit(fn(&rs)); stopped || err != nil {
			return err
		}
	}
	return nil
}

func (f *FakeStore) SearchVariantSets(ctx context.Context, datasetId string, fn func(*store.VariantSet) error) error {
	if f.Err != nil {
		return f.Err
	}
	for i := range f.VariantSets {
		vs := f.VariantSets[i]
		if vs.DatasetId != datasetId {
			continue
		}
		if stopped, err := store.Visit(fn(&vs)); stopped || err != nil {
			return err
		}
	}
	return nil
}

func (f *FakeStore) SearchVariants(ctx context.Context, req store.SearchVariantsRequest, fn func(*store.Variant) error) error {
	f.mu.Lock()
	f.Searches = append(f.Searches, req)
	f.mu.Unlock()

	if f.Err != nil {
		return f.Err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	for i := range f.Variants[req.VariantSetId] {
		v := f.Variants[req.VariantSetId][i]
		if v.ReferenceName != req.ReferenceName || v.Start >= req.End || variantEnd(v) <= req.Start {
			continue
		}
		if stopped, err := store.Visit(fn(&v)); stopped || err != nil {
			return err
		}
	}
	return nil
}

func variantEnd(v store.Variant) int64 {
	if v.End > v.Start {
		return v.End
	}
	return v.Start + int64(len(v.ReferenceBases))
}
