package info

import (
	"net/http"

	"beacon/api/contexts"
	serviceInfo "beacon/api/models/constants/service-info"
	"beacon/api/models/dtos/errors"

	"github.com/labstack/echo"
	"go.uber.org/zap"
)

func GetWelcome(c echo.Context) error {
	return c.JSON(http.StatusOK, serviceInfo.SERVICE_WELCOME)
}

// GetBeacon serves the Beacon descriptor.
func GetBeacon(c echo.Context) error {
	gc := c.(*contexts.BeaconContext)

	beacon, err := gc.DescriptorService.Get(c.Request().Context())
	if err != nil {
		gc.ZapLogger.Error("building beacon descriptor failed",
			zap.String("requestId", gc.RequestId),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, errors.CreateUpstreamFault(gc.Config.Beacon.Id, map[string]interface{}{}, err.Error()))
	}

	return c.JSON(http.StatusOK, beacon)
}

// See https://github.com/ga4gh-discovery/ga4gh-service-info
func GetServiceInfo(c echo.Context) error {
	cfg := c.(*contexts.BeaconContext).Config

	version := cfg.Beacon.Version
	if version == "" {
		version = string(serviceInfo.SERVICE_VERSION)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"type": map[string]interface{}{
			"artifact": serviceInfo.SERVICE_ARTIFACT,
			"group":    "org.ga4gh",
			"version":  serviceInfo.SERVICE_API_VERSION,
		},
		"id":          serviceInfo.SERVICE_ID,
		"name":        serviceInfo.SERVICE_NAME,
		"description": serviceInfo.SERVICE_DESCRIPTION,
		"organization": map[string]string{
			"name": cfg.Organization.Name,
			"url":  cfg.Organization.WelcomeUrl,
		},
		"contactUrl": cfg.Organization.ContactUrl,
		"version":    version,
	})
}
