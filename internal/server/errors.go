package server

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"
	goa "goa.design/goa/v3/pkg"

	apperrors "mangaart/pkg/errors"
)

// errorBody is the JSON body of every error response
type errorBody struct {
	Code      apperrors.ErrorCode    `json:"code"`
	Message   string                 `json:"message"`
	Fields    []apperrors.FieldError `json:"fields,omitempty"`
	RequestID string                 `json:"request_id,omitempty"`
}

// statusOf maps an error code to its HTTP status
func statusOf(code apperrors.ErrorCode) int {
	switch code {
	case apperrors.ErrCodeValidation, apperrors.ErrCodeBadRequest:
		return http.StatusBadRequest
	case apperrors.ErrCodeStorageFailed, apperrors.ErrCodeStorageUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// toErrorBody converts err to its client-facing form. Internal causes are
// never exposed.
func toErrorBody(err error) errorBody {
	var svcErr *goa.ServiceError
	if errors.As(err, &svcErr) {
		return errorBody{Code: apperrors.ErrCodeBadRequest, Message: svcErr.Message}
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		return errorBody{Code: apperrors.ErrCodeInternalError, Message: "internal server error"}
	}

	switch {
	case apperrors.IsValidation(err):
		return errorBody{Code: appErr.Code, Message: appErr.Message, Fields: appErr.Fields}
	case apperrors.IsStorage(err):
		return errorBody{Code: appErr.Code, Message: "inquiry could not be saved, please try again later"}
	case appErr.Code == apperrors.ErrCodeBadRequest:
		return errorBody{Code: appErr.Code, Message: appErr.Message}
	default:
		return errorBody{Code: apperrors.ErrCodeInternalError, Message: "internal server error"}
	}
}

func (s *Server) writeError(ctx context.Context, w http.ResponseWriter, r *http.Request, err error) {
	body := toErrorBody(err)
	body.RequestID = requestID(r)
	status := statusOf(body.Code)

	if status >= http.StatusInternalServerError {
		s.log.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	}
	s.encode(ctx, w, status, body)
}
