package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/HassaanMujtaba/auth-service/internal/api/respond"
	"github.com/HassaanMujtaba/auth-service/internal/core/domain"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Classifies failures in a fixed order, first match wins.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Always renders the uniform {message, data?} envelope.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, message, data := classify(err, log, c)
		_ = respond.Write(c, respond.Options{Message: message, Data: data, Status: status})
	}
}

// classify maps an error to a status, a client-facing message, and optional
// data. Ordering mirrors the recovery boundary's contract: validation,
// duplicates, tokens, malformed input, store connectivity, malformed
// identifiers, explicit statuses, then the generic fallback.
func classify(err error, log zerolog.Logger, c echo.Context) (int, string, any) {
	var de *domain.Error
	if errors.As(err, &de) {
		switch de.Kind {
		case domain.KindValidation:
			return http.StatusBadRequest, de.Message, de.Data
		case domain.KindConflict:
			// The registration sentinel keeps the original uniform 400;
			// any other conflict is a plain duplicate-key 409.
			if errors.Is(err, domain.ErrUserExists) {
				return http.StatusBadRequest, de.Message, nil
			}
			return http.StatusConflict, "Duplicate entry error", nil
		case domain.KindTokenInvalid:
			return http.StatusUnauthorized, "Invalid token", nil
		case domain.KindTokenExpired:
			return http.StatusUnauthorized, "Token expired", nil
		case domain.KindMalformedRequest:
			return http.StatusBadRequest, "Syntax error in request", nil
		case domain.KindStoreUnavailable:
			return http.StatusServiceUnavailable, "Service unavailable, connection refused", nil
		case domain.KindMalformedIdentifier:
			return http.StatusBadRequest, "Invalid data format", nil
		case domain.KindInvalidCredentials,
			domain.KindUnsupportedOperation,
			domain.KindInvalidOperationInput:
			return http.StatusBadRequest, de.Message, nil
		case domain.KindNotFound:
			return http.StatusNotFound, de.Message, nil
		case domain.KindForbidden:
			return http.StatusForbidden, "Forbidden", nil
		case domain.KindHashingFailure,
			domain.KindVerificationFailure,
			domain.KindTokenIssuanceFailure,
			domain.KindInvalidResponseContent:
			log.Error().Err(err).Str("path", c.Path()).Msg("internal failure")
			return http.StatusInternalServerError, "An internal server error occurred", nil
		}
	}

	// Raw store errors that escaped the repository layer.
	if mongo.IsDuplicateKeyError(err) {
		return http.StatusConflict, "Duplicate entry error", nil
	}
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) || errors.Is(err, mongo.ErrClientDisconnected) {
		log.Error().Err(err).Str("path", c.Path()).Msg("store unreachable")
		return http.StatusServiceUnavailable, "Network error, please try again", nil
	}

	// Echo's own errors (bind failures, 404 from the router, etc.) keep
	// their annotated status.
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message), nil
	}

	// Unclassified: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "An internal server error occurred", nil
}
