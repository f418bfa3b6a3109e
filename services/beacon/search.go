// Package beaconService answers allele queries against a variant store.
package beaconService

import (
	"context"
	"fmt"

	"beacon/api/models"
	assid "beacon/api/models/constants/assembly-id"
	existsPolicy "beacon/api/models/constants/exists-policy"
	"beacon/api/models/dtos"
	"beacon/api/repositories/store"
	"beacon/api/utils"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type (
	BeaconService struct {
		Config  *models.Config
		Store   store.VariantStore
		Scanner *Scanner

		logger *zap.Logger
	}
)

func NewBeaconService(vs store.VariantStore, cfg *models.Config) *BeaconService {
	return &BeaconService{
		Config:  cfg,
		Store:   vs,
		Scanner: NewScanner(vs, existsPolicy.CastToExistsPolicy(cfg.Beacon.ExistsPolicy)),
		logger:  zap.NewNop(),
	}
}

func (bs *BeaconService) SetLogger(l *zap.Logger) {
	bs.logger = l
	bs.Scanner.SetLogger(l)
}

/*
Search answers one allele query. The response is allocated here and owned by
the caller; nothing of it outlives the query.

The requested assembly is checked against the store before anything is
scanned. The variant sets of the target dataset are then scanned in listing
order. Without dataset responses the search ends with the first variant set
in which the allele exists.
*/
func (bs *BeaconService) Search(ctx context.Context, q *models.AlleleQuery) (*dtos.BeaconAlleleResponse, error) {
	if err := bs.CheckReferenceSet(ctx, string(q.AssemblyId)); err != nil {
		return nil, err
	}

	dataset, err := bs.TargetDataset(ctx)
	if err != nil {
		return nil, err
	}
	if len(q.DatasetIds) > 0 && !utils.StringInSlice(dataset.Id, q.DatasetIds) {
		return nil, &QueryValidationError{
			Name:        UnknownDataset,
			Description: fmt.Sprintf("this beacon only serves dataset %s", dataset.Id),
		}
	}

	resp := dtos.NewBeaconAlleleResponse(bs.Config.Beacon.Id, q)
	running := 0

	err = bs.Store.SearchVariantSets(ctx, dataset.Id, func(vs *store.VariantSet) error {
		variantSet := *vs
		if variantSet.DatasetId == "" {
			variantSet.DatasetId = dataset.Id
		}

		var scanErr error
		running, scanErr = bs.Scanner.Scan(ctx, &variantSet, q, resp, running)
		if scanErr != nil {
			return scanErr
		}

		if resp.Exists && !q.IncludeDatasetResponses {
			return store.Stop
		}
		return nil
	})
	if err != nil {
		var upstreamErr *UpstreamError
		if errors.As(err, &upstreamErr) {
			return nil, upstreamErr
		}
		return nil, &UpstreamError{Op: "variant set listing", Err: err}
	}

	bs.logger.Debug("allele query answered",
		zap.String("referenceName", q.ReferenceName),
		zap.Int64("start", q.Position()),
		zap.String("alternateBases", q.AlternateBases),
		zap.Bool("exists", resp.Exists),
		zap.Int("datasetAlleleResponses", running))

	return resp, nil
}

// CheckReferenceSet fails with an AssemblyMismatch unless the first reference
// set advertised by the store is the requested assembly.
func (bs *BeaconService) CheckReferenceSet(ctx context.Context, assemblyId string) error {
	referenceSet, err := bs.FirstReferenceSet(ctx)
	if err != nil {
		return err
	}

	if assid.Matches(assemblyId, referenceSet.AssemblyId) || assid.Matches(assemblyId, referenceSet.Name) {
		return nil
	}

	bs.logger.Warn("assembly mismatch",
		zap.String("requested", assemblyId),
		zap.String("referenceSet", referenceSet.Name))

	return &QueryValidationError{
		Name:        AssemblyMismatch,
		Description: fmt.Sprintf("requested assembly %q does not match the reference set %q of this beacon", assemblyId, referenceSet.Name),
	}
}

// FirstReferenceSet returns the reference set the store advertises first.
func (bs *BeaconService) FirstReferenceSet(ctx context.Context) (*store.ReferenceSet, error) {
	var first *store.ReferenceSet
	err := bs.Store.SearchReferenceSets(ctx, func(rs *store.ReferenceSet) error {
		first = rs
		return store.Stop
	})
	if err != nil {
		return nil, &UpstreamError{Op: "reference set listing", Err: err}
	}
	if first == nil {
		return nil, &UpstreamError{Op: "reference set listing", Err: errors.New("no reference set advertised")}
	}
	return first, nil
}

// TargetDataset returns the configured dataset, or the first one listed when
// none is configured.
func (bs *BeaconService) TargetDataset(ctx context.Context) (*store.Dataset, error) {
	configured := bs.Config.Store.DatasetId

	var target *store.Dataset
	err := bs.Store.SearchDatasets(ctx, func(d *store.Dataset) error {
		if configured == "" || d.Id == configured {
			target = d
			return store.Stop
		}
		return nil
	})
	if err != nil {
		return nil, &UpstreamError{Op: "dataset listing", Err: err}
	}

	if target == nil {
		if configured != "" {
			return nil, &QueryValidationError{
				Name:        UnknownDataset,
				Description: fmt.Sprintf("dataset %s is not served by the variant store", configured),
			}
		}
		return nil, &UpstreamError{Op: "dataset listing", Err: errors.New("no dataset advertised")}
	}
	return target, nil
}
