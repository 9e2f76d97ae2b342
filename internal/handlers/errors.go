package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"storefront/internal/domain"
)

func mapErrorToHttpStatus(err error) (int, string) {
	var validationErr *domain.ValidationError
	var apiErr *domain.APIError
	var transportErr *domain.TransportError

	switch {
	case errors.As(err, &validationErr):
		return http.StatusUnprocessableEntity, validationErr.Message
	case errors.As(err, &apiErr):
		return http.StatusBadGateway, apiErr.Message
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "Request timed out"
	case errors.As(err, &transportErr):
		return http.StatusServiceUnavailable, "Marketplace temporarily unavailable"
	case errors.Is(err, domain.ErrSubmitInProgress),
		errors.Is(err, domain.ErrFormClosed):
		return http.StatusConflict, err.Error()
	case errors.Is(err, domain.ErrUnknownField),
		errors.Is(err, domain.ErrUnknownCategory),
		errors.Is(err, domain.ErrUnknownStatus),
		errors.Is(err, domain.ErrInvalidPrice):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, "An unexpected error occurred"
	}
}

func respondWithError(c *gin.Context, logger logrus.FieldLogger, err error, view interface{}) {
	httpStatus, clientMessage := mapErrorToHttpStatus(err)
	if httpStatus >= http.StatusInternalServerError {
		logger.Errorf("Handler Error: %v mapped to HTTP Status %d", err, httpStatus)
	} else {
		logger.Warnf("Handler Error: %v mapped to HTTP Status %d", err, httpStatus)
	}
	ErrorResponse(c, httpStatus, clientMessage, view)
}
