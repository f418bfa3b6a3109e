package middleware

import (
	"net/http"

	"beacon/api/contexts"
	"beacon/api/models/dtos/errors"
	"beacon/api/utils"

	"github.com/labstack/echo"
)

// rejectQuery answers a malformed query with a Beacon error body.
func rejectQuery(c echo.Context, name string, description string) error {
	gc := c.(*contexts.BeaconContext)
	return c.JSON(http.StatusBadRequest, errors.CreateQueryValidationError(
		gc.DescriptorService.BeaconId(c.Request().Context()),
		utils.QueryParamsToMap(c.QueryParams()),
		name,
		description))
}
