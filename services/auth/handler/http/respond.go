package http

import (
	"github.com/labstack/echo/v4"

	"github.com/taxiconnect/backend/internal/pkg/apperrors"
	"github.com/taxiconnect/backend/internal/pkg/logger"
	"github.com/taxiconnect/backend/internal/utils"
)

// respondError maps a usecase error to its HTTP status and outward
// message. Internal errors are logged with their cause and surface
// only as a generic 500.
func respondError(c echo.Context, err error, endpoint string) error {
	if apperrors.KindOf(err) == apperrors.KindInternal {
		logger.Error("Request failed",
			logger.String("endpoint", endpoint),
			logger.Err(err),
		)
	}
	return utils.ErrorResponseHandler(c, apperrors.StatusOf(err), apperrors.MessageOf(err))
}
