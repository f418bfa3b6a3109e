// Package descriptorService builds and caches the Beacon descriptor served
// on /info.
package descriptorService

import (
	"context"
	"sync"
	"time"

	"beacon/api/models"
	serviceInfo "beacon/api/models/constants/service-info"
	"beacon/api/repositories/store"
	beaconService "beacon/api/services/beacon"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type (
	DescriptorService struct {
		Initialized bool
		Config      *models.Config
		Beacon      *beaconService.BeaconService

		mu        sync.RWMutex
		cached    *models.Beacon
		scheduler *gocron.Scheduler
		logger    *zap.Logger
	}
)

func NewDescriptorService(bs *beaconService.BeaconService, cfg *models.Config) *DescriptorService {
	return &DescriptorService{
		Config: cfg,
		Beacon: bs,
		logger: zap.NewNop(),
	}
}

func (ds *DescriptorService) SetLogger(l *zap.Logger) {
	ds.logger = l
}

/*
Init builds the descriptor once and schedules its periodic refresh.
A failed first build is logged, not fatal: Get keeps retrying until the
store answers.
*/
func (ds *DescriptorService) Init() {
	if ds.Initialized {
		return
	}
	ds.Initialized = true

	if _, err := ds.Refresh(context.Background()); err != nil {
		ds.logger.Warn("initial beacon descriptor build failed", zap.Error(err))
	}

	minutes := ds.Config.Beacon.DescriptorRefreshMinutes
	if minutes <= 0 {
		return
	}

	if err := ds.scheduleRefresh(minutes); err != nil {
		ds.logger.Error("scheduling beacon descriptor refresh failed",
			zap.Int("minutes", minutes),
			zap.Error(err))
	}
}

func (ds *DescriptorService) scheduleRefresh(minutes int) error {
	scheduler := gocron.NewScheduler(time.UTC)
	_, err := scheduler.Every(minutes).Minutes().Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		if _, err := ds.Refresh(ctx); err != nil {
			ds.logger.Warn("beacon descriptor refresh failed", zap.Error(err))
		}
	})
	if err != nil {
		return err
	}

	ds.scheduler = scheduler
	ds.scheduler.StartAsync()
	return nil
}

// Stop halts the refresh schedule.
func (ds *DescriptorService) Stop() {
	if ds.scheduler != nil {
		ds.scheduler.Stop()
	}
}

// Get returns the cached descriptor, building it first if there is none yet.
func (ds *DescriptorService) Get(ctx context.Context) (*models.Beacon, error) {
	ds.mu.RLock()
	cached := ds.cached
	ds.mu.RUnlock()

	if cached != nil {
		return cached, nil
	}
	return ds.Refresh(ctx)
}

// BeaconId is the id reported in query responses. It is the configured id,
// or else the id of the descriptor served on /info, so both always agree.
func (ds *DescriptorService) BeaconId(ctx context.Context) string {
	if ds.Config.Beacon.Id != "" {
		return ds.Config.Beacon.Id
	}
	beacon, err := ds.Get(ctx)
	if err != nil {
		ds.logger.Debug("resolving beacon id failed", zap.Error(err))
		return ""
	}
	return beacon.Id
}

// Refresh rebuilds the descriptor from the store and caches it.
func (ds *DescriptorService) Refresh(ctx context.Context) (*models.Beacon, error) {
	var (
		target       *store.Dataset
		referenceSet *store.ReferenceSet
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		target, err = ds.Beacon.TargetDataset(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		referenceSet, err = ds.Beacon.FirstReferenceSet(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	beacon := ds.build(target, referenceSet, time.Now().UTC())

	ds.mu.Lock()
	if ds.cached != nil {
		beacon.CreateDateTime = ds.cached.CreateDateTime
	}
	ds.cached = beacon
	ds.mu.Unlock()

	ds.logger.Debug("beacon descriptor refreshed",
		zap.String("id", beacon.Id),
		zap.Int("datasets", len(beacon.Datasets)))

	return beacon, nil
}

// build fills the descriptor of the single dataset this Beacon serves.
func (ds *DescriptorService) build(target *store.Dataset, referenceSet *store.ReferenceSet, now time.Time) *models.Beacon {
	cfg := ds.Config
	stamp := now.Format(time.RFC3339)

	assemblyId := referenceSet.AssemblyId
	if assemblyId == "" {
		assemblyId = referenceSet.Name
	}

	beacon := &models.Beacon{
		Id:          firstNonEmpty(cfg.Beacon.Id, target.Name, target.Id),
		Name:        firstNonEmpty(cfg.Beacon.Name, target.Name, string(serviceInfo.SERVICE_NAME)),
		ApiVersion:  string(serviceInfo.SERVICE_API_VERSION),
		Description: firstNonEmpty(cfg.Beacon.Description, target.Description, string(serviceInfo.SERVICE_DESCRIPTION)),
		Version:     firstNonEmpty(cfg.Beacon.Version, string(serviceInfo.SERVICE_VERSION)),
		Organization: models.BeaconOrganization{
			Id:          firstNonEmpty(cfg.Organization.Id, target.Name),
			Name:        firstNonEmpty(cfg.Organization.Name, target.Name),
			Description: cfg.Organization.Description,
			Address:     cfg.Organization.Address,
			WelcomeUrl:  cfg.Organization.WelcomeUrl,
			ContactUrl:  cfg.Organization.ContactUrl,
			LogoUrl:     cfg.Organization.LogoUrl,
			Info:        map[string]interface{}{},
		},
		WelcomeUrl:     cfg.Beacon.WelcomeUrl,
		AlternativeUrl: cfg.Beacon.AlternativeUrl,
		CreateDateTime: stamp,
		UpdateDateTime: stamp,
		Datasets: []models.BeaconDataset{
			{
				Id:             target.Id,
				Name:           target.Name,
				Description:    target.Description,
				AssemblyId:     assemblyId,
				CreateDateTime: stamp,
				UpdateDateTime: stamp,
				Info:           map[string]interface{}{},
			},
		},
		SampleAlleleRequests: []models.SampleAlleleRequest{
			{
				ReferenceName:  "1",
				Start:          35098007,
				ReferenceBases: "T",
				AlternateBases: "A",
				AssemblyId:     assemblyId,
				DatasetIds:     []string{target.Id},
			},
			{
				ReferenceName:           "1",
				Start:                   35098007,
				ReferenceBases:          "T",
				AlternateBases:          "C",
				AssemblyId:              assemblyId,
				DatasetIds:              []string{target.Id},
				IncludeDatasetResponses: true,
			},
		},
		Info: map[string]interface{}{
			"backend": cfg.Store.Backend,
		},
	}
	return beacon
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
