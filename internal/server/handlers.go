package server

import (
	"context"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"
	goahttp "goa.design/goa/v3/http"
	goa "goa.design/goa/v3/pkg"

	"mangaart/internal/domain"
)

// submitInquiryBody is the JSON body of POST /api/v1/inquiries
type submitInquiryBody struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Country string `json:"country"`
	Message string `json:"message"`
}

func (s *Server) submitInquiry(w http.ResponseWriter, r *http.Request) {
	ctx := withAcceptType(r)
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var body submitInquiryBody
	if err := goahttp.RequestDecoder(r).Decode(&body); err != nil {
		s.writeError(ctx, w, r, decodeError(err))
		return
	}

	inquiry, err := s.inquiries.Submit(ctx, domain.Candidate{
		Name:    body.Name,
		Email:   body.Email,
		Phone:   body.Phone,
		Country: body.Country,
		Message: body.Message,
	})
	if err != nil {
		s.writeError(ctx, w, r, err)
		return
	}

	s.encode(ctx, w, http.StatusCreated, inquiry)
}

func (s *Server) checkHealth(w http.ResponseWriter, r *http.Request) {
	ctx := withAcceptType(r)

	result, err := s.health.Check(ctx)
	status := http.StatusOK
	if err != nil {
		s.log.Warn("health check failed", zap.Error(err))
		status = http.StatusServiceUnavailable
	}
	s.encode(ctx, w, status, result)
}

func decodeError(err error) error {
	if errors.Is(err, io.EOF) {
		return goa.MissingPayloadError()
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return goa.DecodePayloadError("request body too large")
	}
	return goa.DecodePayloadError(err.Error())
}

func withAcceptType(r *http.Request) context.Context {
	return context.WithValue(r.Context(), goahttp.AcceptTypeKey, r.Header.Get("Accept"))
}

// encode writes v with the negotiated encoder. The encoder must be created
// before WriteHeader so it can set Content-Type.
func (s *Server) encode(ctx context.Context, w http.ResponseWriter, status int, v any) {
	enc := goahttp.ResponseEncoder(ctx, w)
	w.WriteHeader(status)
	if err := enc.Encode(v); err != nil {
		s.log.Error("failed to encode response", zap.Error(err))
	}
}
