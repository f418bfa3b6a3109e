package mvc

import (
	"strconv"

	"beacon/api/contexts"
	"beacon/api/models"
	"beacon/api/models/constants"

	"github.com/labstack/echo"
)

// RetrieveAlleleQuery builds the query of the current request. The mandatory
// parameters have been checked by middleware; Start is already 0-based.
func RetrieveAlleleQuery(c echo.Context) *models.AlleleQuery {
	gc := c.(*contexts.BeaconContext)

	return &models.AlleleQuery{
		ReferenceName:           c.QueryParam("referenceName"),
		Start:                   gc.Start,
		ReferenceBases:          c.QueryParam("referenceBases"),
		AlternateBases:          c.QueryParam("alternateBases"),
		AssemblyId:              constants.AssemblyId(c.QueryParam("assemblyId")),
		DatasetIds:              gc.DatasetIds,
		IncludeDatasetResponses: ParseFlag(c.QueryParam("includeDatasetResponses")),
	}
}

// ParseFlag treats any non-empty value as true, except an explicit false
// ("false", "0", "f").
func ParseFlag(value string) bool {
	if value == "" {
		return false
	}
	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}
	return true
}
