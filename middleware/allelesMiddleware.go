package middleware

import (
	"beacon/api/models/dtos/errors"

	"github.com/labstack/echo"
)

/*
Echo middleware to ensure an `alternateBases` HTTP query parameter was provided
*/
func MandateAlternateBasesAttribute(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		alternateBases := c.QueryParam("alternateBases")
		if len(alternateBases) == 0 {
			return rejectQuery(c, errors.MissingParameter, "missing 'alternateBases' query parameter")
		}

		return next(c)
	}
}
