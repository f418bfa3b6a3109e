package middleware

import (
	"beacon/api/models/dtos/errors"

	"github.com/labstack/echo"
)

/*
Echo middleware to ensure an `assemblyId` HTTP query parameter was provided.
Whether it matches the store's reference set is decided by the search itself.
*/
func MandateAssemblyIdAttribute(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		// check for assemblyId query parameter
		assemblyId := c.QueryParam("assemblyId")
		if len(assemblyId) == 0 {
			// if no id was provided return an error
			return rejectQuery(c, errors.MissingParameter, "missing 'assemblyId' query parameter")
		}

		return next(c)
	}
}
