package middleware

import (
	"beacon/api/contexts"

	"github.com/google/uuid"
	"github.com/labstack/echo"
)

const RequestIdHeader = "X-Request-Id"

/*
Echo middleware tagging every request with an id, echoed back in the
X-Request-Id response header. A well formed incoming id is kept.
*/
func AssignRequestId(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		gc := c.(*contexts.BeaconContext)

		requestId := c.Request().Header.Get(RequestIdHeader)
		if _, err := uuid.Parse(requestId); err != nil {
			requestId = uuid.NewString()
		}

		gc.RequestId = requestId
		c.Response().Header().Set(RequestIdHeader, requestId)

		return next(gc)
	}
}
