package main

import (
	"fmt"
	"net/http"
	"os"

	"beacon/api/contexts"
	gam "beacon/api/middleware"
	serviceInfo "beacon/api/models/constants/service-info"
	"beacon/api/mvc/info"
	"beacon/api/mvc/query"
	beaconService "beacon/api/services/beacon"
	descriptorService "beacon/api/services/descriptor"
	"beacon/api/utils"

	"github.com/labstack/echo"
	"github.com/labstack/echo/middleware"
	"go.uber.org/zap"
)

const notFoundMessage = "Page not found (Bad URL)"

func main() {
	// Gather configuration
	cfg, err := utils.LoadConfig()
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	logger, err := utils.NewLogger(cfg)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	defer logger.Sync()

	logger.Info("using configuration",
		zap.Bool("debug", cfg.Debug),
		zap.String("logLevel", cfg.LogLevel),
		zap.String("beaconId", cfg.Beacon.Id),
		zap.String("existsPolicy", cfg.Beacon.ExistsPolicy),
		zap.String("storeBackend", cfg.Store.Backend),
		zap.String("datasetId", cfg.Store.DatasetId),
		zap.String("ga4ghUrl", cfg.Ga4gh.Url),
		zap.String("elasticsearchUrl", cfg.Elasticsearch.Url),
		zap.String("elasticsearchUsername", cfg.Elasticsearch.Username),
		zap.Int("queryTimeoutSeconds", cfg.Api.QueryTimeoutSeconds),
		zap.String("port", cfg.Api.Port))

	// Service Connections:
	// -- Variant store
	vs, err := utils.CreateVariantStore(cfg, logger)
	if err != nil {
		logger.Fatal("connecting to the variant store", zap.Error(err))
	}

	// Service Singletons
	bs := beaconService.NewBeaconService(vs, cfg)
	bs.SetLogger(logger.Named("beacon"))

	ds := descriptorService.NewDescriptorService(bs, cfg)
	ds.SetLogger(logger.Named("descriptor"))
	ds.Init()
	defer ds.Stop()

	// Instantiate Server
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = notFoundAsPlainText(e)

	// Configure Server
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{echo.GET},
	}))

	// -- Override handlers with "custom Beacon" context
	//		to be able to provide variables and global singletons
	e.Use(func(h echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cc := &contexts.BeaconContext{
				Context:           c,
				Config:            cfg,
				ZapLogger:         logger,
				BeaconService:     bs,
				DescriptorService: ds,
			}
			return h(cc)
		}
	})

	// Global Middleware
	e.Use(gam.AssignRequestId)

	RegisterRoutes(e)

	// Run
	e.Logger.Fatal(e.Start(":" + cfg.Api.Port))
}

// RegisterRoutes mounts the Beacon routes, at the root and under the legacy
// prefix.
func RegisterRoutes(e *echo.Echo) {
	queryMiddleware := []echo.MiddlewareFunc{
		gam.MandateReferenceNameAttribute,
		gam.MandateStartAttribute,
		gam.MandateAlternateBasesAttribute,
		gam.MandateAssemblyIdAttribute,
		gam.ValidateOptionalDatasetIdsAttribute,
	}

	// Begin MVC Routes
	// -- Root
	e.GET("/", info.GetWelcome)

	// -- Service Info
	e.GET("/service-info", info.GetServiceInfo)

	// -- Beacon
	e.GET("/info", info.GetBeacon)
	e.GET("/query", query.Query, queryMiddleware...)

	// -- Legacy
	legacy := e.Group(serviceInfo.LEGACY_PREFIX)
	legacy.GET("/", info.GetBeacon)
	legacy.GET("/query", query.Query, queryMiddleware...)
}

func notFoundAsPlainText(e *echo.Echo) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if he, ok := err.(*echo.HTTPError); ok && he.Code == http.StatusNotFound {
			if !c.Response().Committed {
				c.String(http.StatusNotFound, notFoundMessage)
			}
			return
		}
		e.DefaultHTTPErrorHandler(err, c)
	}
}
