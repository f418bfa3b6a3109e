package beaconService

import (
	"context"

	"beacon/api/models"
	"beacon/api/models/constants"
	"beacon/api/models/constants/chromosome"
	existsPolicy "beacon/api/models/constants/exists-policy"
	"beacon/api/models/dtos"
	"beacon/api/repositories/store"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const alleleFrequencyKey = "AF"

type (
	// Scanner looks for a queried allele inside one variant set.
	Scanner struct {
		Store  store.VariantStore
		Policy constants.ExistsPolicy

		logger *zap.Logger
	}
)

func NewScanner(vs store.VariantStore, policy constants.ExistsPolicy) *Scanner {
	return &Scanner{
		Store:  vs,
		Policy: policy,
		logger: zap.NewNop(),
	}
}

// SetLogger sets the logger used to trace examined variants.
func (s *Scanner) SetLogger(l *zap.Logger) {
	s.logger = l
}

/*
Scan streams the variants of vs found at the queried position and records
the outcome into resp.

Every examined variant updates resp.Exists. Without dataset responses the
scan stops at the first match; otherwise each matching variant appends one
DatasetAlleleResponse and increments running, which is returned.
*/
func (s *Scanner) Scan(ctx context.Context, vs *store.VariantSet, q *models.AlleleQuery,
	resp *dtos.BeaconAlleleResponse, running int) (int, error) {

	req := store.SearchVariantsRequest{
		VariantSetId:  vs.Id,
		ReferenceName: chromosome.Normalize(q.ReferenceName),
		Start:         q.Start,
		End:           q.Start + 1,
	}

	err := s.Store.SearchVariants(ctx, req, func(v *store.Variant) error {
		s.logger.Debug("examining variant",
			zap.String("variantSetId", vs.Id),
			zap.Strings("names", v.Names),
			zap.Int64("start", v.Start),
			zap.Int64("end", v.End),
			zap.String("referenceBases", v.ReferenceBases),
			zap.Strings("alternateBases", v.AlternateBases))

		found, alt := Match(q.AlternateBases, v, q.Start)
		if s.Policy == existsPolicy.Any {
			resp.Exists = resp.Exists || found
		} else {
			resp.Exists = found
		}

		if !found {
			return nil
		}
		if !q.IncludeDatasetResponses {
			return store.Stop
		}

		resp.DatasetAlleleResponses = append(resp.DatasetAlleleResponses, datasetAlleleResponse(vs, v, alt))
		running++
		return nil
	})
	if err != nil {
		return running, &UpstreamError{
			Op:  "variant search",
			Err: errors.Wrapf(err, "variant set %s", vs.Id),
		}
	}

	return running, nil
}

func datasetAlleleResponse(vs *store.VariantSet, v *store.Variant, alt int) *dtos.DatasetAlleleResponse {
	detail := &dtos.DatasetAlleleResponse{
		DatasetId:   vs.DatasetId,
		Exists:      true,
		CallCount:   len(v.Calls),
		SampleCount: len(v.Calls),
		Frequency:   alleleFrequency(v, alt),
		Info:        variantName(v, alt),
	}

	// genotype 0 is the reference, so alternate i is genotype i+1
	for _, call := range v.Calls {
		if call.HasAllele(alt + 1) {
			detail.Note += " " + call.CallSetName
			detail.VariantCount++
		}
	}

	return detail
}

// alleleFrequency reads the AF info value of the alt-th alternate, nil when
// absent or not a number.
func alleleFrequency(v *store.Variant, alt int) *float64 {
	values := v.Info[alleleFrequencyKey]
	if alt >= len(values) {
		return nil
	}
	switch values[alt] {
	case nil, "", ".":
		return nil
	}

	var af float64
	if err := mapstructure.WeakDecode(values[alt], &af); err != nil {
		return nil
	}
	return &af
}

func variantName(v *store.Variant, alt int) string {
	switch {
	case alt < len(v.Names):
		return v.Names[alt]
	case len(v.Names) > 0:
		return v.Names[0]
	default:
		return ""
	}
}
