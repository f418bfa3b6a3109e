package middleware

import (
	"beacon/api/contexts"
	"beacon/api/utils"

	"github.com/labstack/echo"
)

/*
Echo middleware collecting the optional `datasetIds` HTTP query parameter,
either repeated or comma separated
*/
func ValidateOptionalDatasetIdsAttribute(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		// forward a type-safe value down the pipeline
		gc := c.(*contexts.BeaconContext)
		gc.DatasetIds = utils.SplitCommaSeparated(c.QueryParams()["datasetIds"])

		return next(gc)
	}
}
