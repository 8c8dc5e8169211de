package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/labstack/echo/v4"

	"github.com/taxiconnect/backend/internal/pkg/logger"
	"github.com/taxiconnect/backend/internal/utils"
)

// PanicRecoveryMiddleware recovers from handler panics, logs the stack
// trace and returns a generic 500 to the client.
func PanicRecoveryMiddleware(zapLogger *logger.ZapLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			defer func() {
				if r := recover(); r != nil {
					err, ok := r.(error)
					if !ok {
						err = fmt.Errorf("%v", r)
					}

					zapLogger.Error("Panic recovered",
						logger.Err(err),
						logger.String("method", c.Request().Method),
						logger.String("path", c.Request().URL.Path),
						logger.String("client_ip", c.RealIP()),
						logger.String("stacktrace", string(debug.Stack())),
					)

					_ = utils.InternalServerErrorResponse(c, "")
				}
			}()

			return next(c)
		}
	}
}
