package middleware

import (
	"strconv"

	"beacon/api/contexts"
	"beacon/api/models/dtos/errors"

	"github.com/labstack/echo"
)

/*
Echo middleware to ensure a valid 1-based `start` HTTP query parameter was
provided. The position is handed down 0-based.
*/
func MandateStartAttribute(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		gc := c.(*contexts.BeaconContext)

		startQP := c.QueryParam("start")
		if len(startQP) == 0 {
			return rejectQuery(c, errors.MissingParameter, "missing 'start' query parameter")
		}

		// verify:
		start, conversionErr := strconv.ParseInt(startQP, 10, 64)
		if conversionErr != nil {
			return rejectQuery(c, errors.InvalidParameter, "'start' must be an integer")
		}
		if start < 1 {
			return rejectQuery(c, errors.InvalidParameter, "'start' is 1-based and must be at least 1")
		}

		gc.Start = start - 1
		return next(gc)
	}
}
