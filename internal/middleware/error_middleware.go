package middleware

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/coursehub/internal/app/models/dto"
	"github.com/yigit/coursehub/internal/pkg/apperrors"
	"github.com/yigit/coursehub/internal/pkg/logger"
	"github.com/yigit/coursehub/internal/pkg/validation"
)

// HandleAPIError maps service errors onto HTTP responses
func HandleAPIError(c *gin.Context, err error) {
	var verr *apperrors.ValidationError

	switch {
	case errors.As(err, &verr):
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed").
			WithDetails(verr.Fields)
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
	case errors.Is(err, apperrors.ErrValidationFailed), errors.Is(err, apperrors.ErrBadRequest):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed")))
	case errors.Is(err, apperrors.ErrResourceNotFound):
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Not found.").WithSeverity(dto.ErrorSeverityWarning)))
	case errors.Is(err, apperrors.ErrResourceAlreadyExists):
		c.JSON(http.StatusConflict, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Resource already exists")))
	default:
		logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("Unhandled API error")
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")))
	}
	_ = c.Error(err)
}

// HandleBindError reports a malformed request body as a 400
func HandleBindError(c *gin.Context, err error) {
	verr := apperrors.NewValidationError()

	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	switch {
	case errors.As(err, &typeErr) && typeErr.Field != "":
		verr.Add(typeErr.Field, "Incorrect type. Expected "+typeErr.Type.String()+".")
	case errors.As(err, &syntaxErr):
		verr.Add(validation.NonFieldKey, "JSON parse error: "+syntaxErr.Error())
	default:
		verr.Add(validation.NonFieldKey, err.Error())
	}
	HandleAPIError(c, verr)
}
