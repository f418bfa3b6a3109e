package elasticsearch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"beacon/api/models"
	"beacon/api/models/indexes"
	"beacon/api/repositories/store"

	"github.com/Jeffail/gabs"
	"github.com/elastic/go-elasticsearch/v7"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const defaultPageSize = 1000

type (
	// VariantStore serves datasets, assemblies, files (as variant sets) and
	// variant sites out of a Gohan variant index.
	VariantStore struct {
		Config    *models.Config
		Es7Client *elasticsearch.Client

		index    string
		pageSize int
		logger   *zap.Logger
	}
)

func NewVariantStore(es *elasticsearch.Client, cfg *models.Config) *VariantStore {
	vs := &VariantStore{
		Config:    cfg,
		Es7Client: es,
		index:     cfg.Elasticsearch.Index,
		pageSize:  cfg.Elasticsearch.PageSize,
		logger:    zap.NewNop(),
	}
	if vs.index == "" {
		vs.index = wildcardVariantsIndex
	}
	if vs.pageSize <= 0 {
		vs.pageSize = defaultPageSize
	}
	return vs
}

// SetLogger sets the logger used for query tracing.
func (vs *VariantStore) SetLogger(l *zap.Logger) {
	vs.logger = l
}

func (vs *VariantStore) SearchDatasets(ctx context.Context, fn func(*store.Dataset) error) error {
	keys, err := getBucketKeysByKeyword(ctx, vs.Config, vs.Es7Client, vs.logger, vs.index, indexes.FieldDataset, nil)
	if err != nil {
		return err
	}
	for _, key := range keys {
		if stopped, err := store.Visit(fn(&store.Dataset{Id: key, Name: key})); stopped || err != nil {
			return err
		}
	}
	return nil
}

func (vs *VariantStore) SearchReferenceSets(ctx context.Context, fn func(*store.ReferenceSet) error) error {
	keys, err := getBucketKeysByKeyword(ctx, vs.Config, vs.Es7Client, vs.logger, vs.index, indexes.FieldAssemblyId, nil)
	if err != nil {
		return err
	}
	for _, key := range keys {
		if stopped, err := store.Visit(fn(&store.ReferenceSet{Id: key, Name: key, AssemblyId: key})); stopped || err != nil {
			return err
		}
	}
	return nil
}

// SearchVariantSets lists the ingested files of a dataset; each file is a variant set.
func (vs *VariantStore) SearchVariantSets(ctx context.Context, datasetId string, fn func(*store.VariantSet) error) error {
	filters := []map[string]interface{}{termFilter(indexes.FieldDataset, datasetId)}
	keys, err := getBucketKeysByKeyword(ctx, vs.Config, vs.Es7Client, vs.logger, vs.index, indexes.FieldFileId, filters)
	if err != nil {
		return err
	}
	for _, key := range keys {
		variantSet := &store.VariantSet{Id: key, Name: key, DatasetId: datasetId}
		if stopped, err := store.Visit(fn(variantSet)); stopped || err != nil {
			return err
		}
	}
	return nil
}

// SearchVariants pages through the per-sample documents whose position falls
// inside [req.Start, req.End) and folds them into one store.Variant per site.
// Documents are sorted by position, so a site is complete (and handed to fn)
// as soon as a document at a later position shows up.
//
// Pages follow each other with search_after on (pos, sample, _id): every
// document of a site shares pos, and from/size paging is neither stable on
// ties nor allowed past the index result window.
func (vs *VariantStore) SearchVariants(ctx context.Context, req store.SearchVariantsRequest, fn func(*store.Variant) error) error {
	sites := newSiteGrouper()

	var searchAfter []interface{}
	for {
		query := map[string]interface{}{
			"query": map[string]interface{}{
				"bool": map[string]interface{}{
					"filter": []map[string]interface{}{
						termFilter(indexes.FieldChrom, req.ReferenceName),
						termFilter(indexes.FieldFileId, req.VariantSetId),
						{
							"range": map[string]interface{}{
								indexes.FieldPos: map[string]interface{}{
									// VCF positions are 1-based
									"gte": req.Start + 1,
									"lte": req.End,
								},
							},
						},
					},
				},
			},
			"sort": []map[string]interface{}{
				{indexes.FieldPos: "asc"},
				{indexes.FieldSampleId: "asc"},
				{indexes.FieldDocId: "asc"},
			},
			"size": vs.pageSize,
		}
		if searchAfter != nil {
			query["search_after"] = searchAfter
		}

		result, err := performSearch(ctx, vs.Config, vs.Es7Client, vs.logger, vs.index, query)
		if err != nil {
			return errors.Wrapf(err, "searching variants of %s", req.VariantSetId)
		}

		hits, _ := result.Path("hits.hits").Children()
		for _, hit := range hits {
			doc, err := decodeVariantDocument(hit)
			if err != nil {
				return err
			}
			if stopped, err := store.Visit(sites.add(doc, fn)); stopped || err != nil {
				return err
			}
		}

		if len(hits) < vs.pageSize {
			break
		}

		last := hits[len(hits)-1]
		sortValues, ok := last.S("sort").Data().([]interface{})
		if !ok || len(sortValues) == 0 {
			return errors.Errorf("variant hit %v carries no sort values", last.S("_id").Data())
		}
		searchAfter = sortValues
	}

	_, err := store.Visit(sites.flush(fn))
	return err
}

func decodeVariantDocument(hit *gabs.Container) (*indexes.Variant, error) {
	var doc indexes.Variant
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToTimeHookFunc(time.RFC3339),
		Result:           &doc,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(hit.S("_source").Data()); err != nil {
		return nil, errors.Wrapf(err, "decoding variant document %v", hit.S("_id").Data())
	}
	return &doc, nil
}

// siteGrouper folds per-sample documents of the same position into sites,
// keeping the order in which sites were first seen.
type siteGrouper struct {
	pos   int
	order []string
	sites map[string]*store.Variant
}

func newSiteGrouper() *siteGrouper {
	return &siteGrouper{sites: map[string]*store.Variant{}}
}

func (g *siteGrouper) add(doc *indexes.Variant, fn func(*store.Variant) error) error {
	if doc.Pos != g.pos {
		if err := g.flush(fn); err != nil {
			return err
		}
		g.pos = doc.Pos
	}

	ref := firstOrEmpty(doc.Ref)
	key := fmt.Sprintf("%s|%s", ref, strings.Join(doc.Alt, ","))
	site, ok := g.sites[key]
	if !ok {
		site = documentToVariant(doc)
		g.sites[key] = site
		g.order = append(g.order, key)
	}
	site.Calls = append(site.Calls, documentToCall(doc, site))
	return nil
}

func (g *siteGrouper) flush(fn func(*store.Variant) error) error {
	order := g.order
	sites := g.sites
	g.order = nil
	g.sites = map[string]*store.Variant{}

	for _, key := range order {
		if err := fn(sites[key]); err != nil {
			return err
		}
	}
	return nil
}

func documentToVariant(doc *indexes.Variant) *store.Variant {
	ref := firstOrEmpty(doc.Ref)
	start := int64(doc.Pos - 1)

	v := &store.Variant{
		Id:             fmt.Sprintf("%s:%s:%d:%s", doc.FileId, doc.Chrom, doc.Pos, ref),
		VariantSetId:   doc.FileId,
		ReferenceName:  doc.Chrom,
		Start:          start,
		End:            start + int64(len(ref)),
		ReferenceBases: ref,
		AlternateBases: append([]string{}, doc.Alt...),
		Names:          []string{},
		Calls:          []store.Call{},
		Info:           map[string][]interface{}{},
	}
	if doc.Id != "" && doc.Id != "." {
		v.Names = strings.Split(doc.Id, ";")
	}
	for _, info := range doc.Info {
		for _, value := range strings.Split(info.Value, ",") {
			v.Info[info.Id] = append(v.Info[info.Id], value)
		}
	}
	return v
}

func documentToCall(doc *indexes.Variant, site *store.Variant) store.Call {
	alleles := doc.Sample.Variation.Alleles
	genotype := []int{alleleIndex(alleles.Left, site)}
	if alleles.Right != "" {
		genotype = append(genotype, alleleIndex(alleles.Right, site))
	}
	return store.Call{
		CallSetId:   doc.Sample.Id,
		CallSetName: doc.Sample.Id,
		Genotype:    genotype,
	}
}

// alleleIndex maps an allele string onto its genotype index: 0 for the
// reference, k for the k-th alternate, -1 for no call.
func alleleIndex(allele string, site *store.Variant) int {
	if allele == "" || allele == "." {
		return -1
	}
	if allele == site.ReferenceBases {
		return 0
	}
	for i, alt := range site.AlternateBases {
		if allele == alt {
			return i + 1
		}
	}
	return -1
}

func firstOrEmpty(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
