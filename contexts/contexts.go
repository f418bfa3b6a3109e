package contexts

import (
	"beacon/api/models"
	beaconService "beacon/api/services/beacon"
	descriptorService "beacon/api/services/descriptor"

	"github.com/labstack/echo"
	"go.uber.org/zap"
)

type (
	// "Helper" Context to pass into routes that need
	//  the beacon services and other variables
	BeaconContext struct {
		echo.Context
		Config            *models.Config
		ZapLogger         *zap.Logger
		BeaconService     *beaconService.BeaconService
		DescriptorService *descriptorService.DescriptorService

		// set by middleware
		RequestId  string
		Start      int64 // 0-based
		DatasetIds []string
	}
)

var _ echo.Context = (*BeaconContext)(nil)
