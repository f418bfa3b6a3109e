package descriptorService

import (
	"context"
	"errors"
	"testing"

	serviceInfo "beacon/api/models/constants/service-info"
	"beacon/api/repositories/store"
	beaconService "beacon/api/services/beacon"
	"beacon/api/tests/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDescriptorService(fs *common.FakeStore) *DescriptorService {
	cfg := common.InitConfig()
	cfg.Beacon.DescriptorRefreshMinutes = 0
	return NewDescriptorService(beaconService.NewBeaconService(fs, cfg), cfg)
}

func TestRefreshBuildsDescriptor(t *testing.T) {
	fs := common.NewPopulatedStore()
	fs.Datasets = append(fs.Datasets, store.Dataset{Id: "ds2", Name: "other"})
	ds := newDescriptorService(fs)

	beacon, err := ds.Refresh(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "ca.c3g.beacon.test", beacon.Id)
	assert.Equal(t, "Test Beacon", beacon.Name)
	assert.Equal(t, string(serviceInfo.SERVICE_API_VERSION), beacon.ApiVersion)
	assert.Equal(t, "Test Organization", beacon.Organization.Name)

	require.Len(t, beacon.Datasets, 1)
	assert.Equal(t, "ds1", beacon.Datasets[0].Id)
	assert.Equal(t, "GRCh37", beacon.Datasets[0].AssemblyId)
	assert.NotEmpty(t, beacon.Datasets[0].CreateDateTime)

	require.Len(t, beacon.SampleAlleleRequests, 2)
	assert.Equal(t, []string{"ds1"}, beacon.SampleAlleleRequests[0].DatasetIds)
	assert.Equal(t, "GRCh37", beacon.SampleAlleleRequests[0].AssemblyId)
}

func TestRefreshFallsBackToDatasetNames(t *testing.T) {
	fs := common.NewPopulatedStore()
	ds := newDescriptorService(fs)
	ds.Config.Beacon.Id = ""
	ds.Config.Beacon.Name = ""
	ds.Config.Organization.Name = ""

	beacon, err := ds.Refresh(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "1kgenomes", beacon.Id)
	assert.Equal(t, "1kgenomes", beacon.Name)
	assert.Equal(t, "1kgenomes", beacon.Organization.Name)
}

func TestGetCachesDescriptor(t *testing.T) {
	fs := common.NewPopulatedStore()
	ds := newDescriptorService(fs)

	first, err := ds.Get(context.Background())
	require.NoError(t, err)

	// later failures do not affect the cached copy
	fs.Err = errors.New("down")
	second, err := ds.Get(context.Background())
	require.NoError(t, err)
	assert.Same(t, first, second)

	_, err = ds.Refresh(context.Background())
	assert.Error(t, err)
}

func TestRefreshKeepsCreateDateTime(t *testing.T) {
	fs := common.NewPopulatedStore()
	ds := newDescriptorService(fs)

	first, err := ds.Refresh(context.Background())
	require.NoError(t, err)
	first.CreateDateTime = "2020-01-01T00:00:00Z"

	second, err := ds.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2020-01-01T00:00:00Z", second.CreateDateTime)
}

func TestInitWithoutScheduleToleratesStoreFailure(t *testing.T) {
	fs := common.NewPopulatedStore()
	fs.Err = errors.New("down")
	ds := newDescriptorService(fs)

	ds.Init()
	defer ds.Stop()

	assert.True(t, ds.Initialized)
	_, err := ds.Get(context.Background())
	assert.Error(t, err)
}

func TestInitSchedulesRefresh(t *testing.T) {
	fs := common.NewPopulatedStore()
	ds := newDescriptorService(fs)
	ds.Config.Beacon.DescriptorRefreshMinutes = 30

	ds.Init()
	defer ds.Stop()

	require.NotNil(t, ds.scheduler)
	assert.Len(t, ds.scheduler.Jobs(), 1)
}

func TestScheduleRefreshReportsInvalidInterval(t *testing.T) {
	ds := newDescriptorService(common.NewPopulatedStore())

	assert.Error(t, ds.scheduleRefresh(-1))
	assert.Nil(t, ds.scheduler)
}

func TestRefreshListsOnlyTheServedDataset(t *testing.T) {
	fs := common.NewPopulatedStore()
	fs.Datasets = append(fs.Datasets, store.Dataset{Id: "ds2", Name: "other"})
	ds := newDescriptorService(fs)
	ds.Config.Store.DatasetId = "ds2"

	beacon, err := ds.Refresh(context.Background())
	require.NoError(t, err)

	require.Len(t, beacon.Datasets, 1)
	assert.Equal(t, "ds2", beacon.Datasets[0].Id)
	assert.Equal(t, "other", beacon.Datasets[0].Name)
	assert.Equal(t, []string{"ds2"}, beacon.SampleAlleleRequests[1].DatasetIds)
}

func TestBeaconIdFollowsDescriptor(t *testing.T) {
	fs := common.NewPopulatedStore()
	ds := newDescriptorService(fs)
	assert.Equal(t, "ca.c3g.beacon.test", ds.BeaconId(context.Background()))

	ds.Config.Beacon.Id = ""
	assert.Equal(t, "1kgenomes", ds.BeaconId(context.Background()))

	// nothing cached and the store is down
	failing := common.NewPopulatedStore()
	failing.Err = errors.New("down")
	ds = newDescriptorService(failing)
	ds.Config.Beacon.Id = ""
	assert.Equal(t, "", ds.BeaconId(context.Background()))
}
