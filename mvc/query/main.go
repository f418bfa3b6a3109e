package query

import (
	"context"
	"net/http"
	"time"

	"beacon/api/contexts"
	"beacon/api/models"
	"beacon/api/models/dtos"
	"beacon/api/models/dtos/errors"
	"beacon/api/mvc"
	beaconService "beacon/api/services/beacon"
	"beacon/api/utils"

	"github.com/labstack/echo"
	pkgErrors "github.com/pkg/errors"
	"go.uber.org/zap"
)

/*
Query answers `GET /query`: does the requested allele exist in the dataset
served by this Beacon.
*/
func Query(c echo.Context) error {
	gc := c.(*contexts.BeaconContext)
	cfg := gc.Config

	q := mvc.RetrieveAlleleQuery(c)

	ctx := c.Request().Context()
	if cfg.Api.QueryTimeoutSeconds > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(cfg.Api.QueryTimeoutSeconds)*time.Second)
		defer cancel()
	}

	response, err := gc.BeaconService.Search(ctx, q)
	if err != nil {
		return respondWithError(gc, q, err)
	}
	response.BeaconId = gc.DescriptorService.BeaconId(ctx)

	gc.ZapLogger.Info("allele query",
		zap.String("requestId", gc.RequestId),
		zap.String("referenceName", q.ReferenceName),
		zap.Int64("start", q.Position()),
		zap.String("alternateBases", q.AlternateBases),
		zap.Bool("exists", response.Exists))

	return c.JSON(http.StatusOK, dtos.BeaconQueryResponseDto{
		Response: response,
		Beacon:   response.BeaconId,
	})
}

// respondWithError maps a failed search onto its HTTP status and Beacon error body.
func respondWithError(gc *contexts.BeaconContext, q *models.AlleleQuery, err error) error {
	beaconId := gc.DescriptorService.BeaconId(gc.Request().Context())
	query := utils.QueryParamsToMap(gc.QueryParams())

	fields := []zap.Field{
		zap.String("requestId", gc.RequestId),
		zap.String("referenceName", q.ReferenceName),
		zap.Int64("start", q.Position()),
		zap.String("alternateBases", q.AlternateBases),
		zap.String("assemblyId", string(q.AssemblyId)),
		zap.Error(err),
	}

	var validationErr *beaconService.QueryValidationError
	switch {
	case pkgErrors.Is(err, context.DeadlineExceeded):
		gc.ZapLogger.Warn("allele query timed out", fields...)
		return gc.JSON(http.StatusGatewayTimeout, errors.CreateTimeout(beaconId, query))

	case pkgErrors.As(err, &validationErr):
		gc.ZapLogger.Info("allele query rejected", fields...)
		return gc.JSON(http.StatusBadRequest, errors.CreateQueryValidationError(beaconId, query, validationErr.Name, validationErr.Description))

	default:
		gc.ZapLogger.Error("allele query failed", fields...)
		return gc.JSON(http.StatusInternalServerError, errors.CreateUpstreamFault(beaconId, query, err.Error()))
	}
}
