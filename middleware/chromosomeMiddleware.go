package middleware

import (
	"beacon/api/models/dtos/errors"

	"github.com/labstack/echo"
)

/*
Echo middleware to ensure a `referenceName` HTTP query parameter was provided
*/
func MandateReferenceNameAttribute(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		// check for referenceName query parameter
		referenceName := c.QueryParam("referenceName")
		if len(referenceName) == 0 {
			return rejectQuery(c, errors.MissingParameter, "missing 'referenceName' query parameter")
		}

		return next(c)
	}
}
