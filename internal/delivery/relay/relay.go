// Package relay turns one HTTP-like request into one HTTP-like response.
// The gin server and the Lambda entry point both translate into Request and
// back out of Response, so the CORS, method and body rules live only here.
package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"contact-relay/internal/delivery/response"
	"contact-relay/internal/domain"
	"contact-relay/pkg/apperror"
	"contact-relay/pkg/cors"
	"contact-relay/pkg/logger"
	"contact-relay/pkg/security"
)

// Request is the transport-neutral view of an incoming call.
type Request struct {
	Method    string
	Origin    string
	Body      []byte
	RequestID string
	ClientIP  string
	UserAgent string
}

// Response is what the transport writes back.
type Response struct {
	StatusCode int
	Headers    map[string]string
	Body       []byte
}

// OriginPolicy decides origin access and builds CORS headers.
type OriginPolicy interface {
	IsOriginAllowed(origin string) bool
	HeadersFor(origin string) map[string]string
	PreflightHeadersFor(origin string) map[string]string
}

var _ OriginPolicy = (*cors.Policy)(nil)

type Handler struct {
	policy    OriginPolicy
	contactUC domain.ContactUsecase
	secLog    *security.SecurityLogger
}

func NewHandler(policy OriginPolicy, contactUC domain.ContactUsecase, secLog *security.SecurityLogger) *Handler {
	return &Handler{
		policy:    policy,
		contactUC: contactUC,
		secLog:    secLog,
	}
}

// Handle runs preflight, origin, method and body checks, then hands the
// inquiry to the usecase. An allowed origin gets CORS headers on every
// response, errors included; a disallowed origin never gets any.
func (h *Handler) Handle(ctx context.Context, req Request) Response {
	method := strings.ToUpper(req.Method)
	if method == "" {
		method = http.MethodGet
	}

	if method == http.MethodOptions {
		headers := h.policy.PreflightHeadersFor(req.Origin)
		if headers == nil {
			h.logForbidden(ctx, req, method)
			return Response{StatusCode: http.StatusForbidden, Headers: map[string]string{}}
		}
		return Response{StatusCode: http.StatusNoContent, Headers: headers}
	}

	if !h.policy.IsOriginAllowed(req.Origin) {
		h.logForbidden(ctx, req, method)
		return h.errorResponse(nil, apperror.Forbidden(apperror.MsgForbiddenOrigin))
	}
	corsHeaders := h.policy.HeadersFor(req.Origin)

	if method != http.MethodPost {
		return h.errorResponse(corsHeaders, apperror.MethodNotAllowed())
	}

	var inquiry domain.InquiryRequest
	if err := decodeBody(req.Body, &inquiry); err != nil {
		logger.Log.DebugContext(ctx, "Rejecting body", "request_id", req.RequestID, "error", err)
		return h.errorResponse(corsHeaders, apperror.BadRequest(apperror.MsgInvalidJSON))
	}

	meta := domain.RequestMeta{
		RequestID: req.RequestID,
		ClientIP:  req.ClientIP,
		UserAgent: req.UserAgent,
		Origin:    req.Origin,
	}
	if err := h.contactUC.SubmitInquiry(ctx, &inquiry, meta); err != nil {
		var appErr *apperror.AppError
		if !errors.As(err, &appErr) {
			// never expose internal error details to callers
			logger.Log.ErrorContext(ctx, "Internal Server Error", "request_id", req.RequestID, "error", err)
			appErr = apperror.Internal(err)
		}
		return h.errorResponse(corsHeaders, appErr)
	}

	return jsonResponse(http.StatusOK, corsHeaders, response.OK())
}

func (h *Handler) errorResponse(corsHeaders map[string]string, appErr *apperror.AppError) Response {
	return jsonResponse(appErr.Code, corsHeaders, response.ErrorBody(appErr.Message))
}

func (h *Handler) logForbidden(ctx context.Context, req Request, method string) {
	h.secLog.LogForbiddenOrigin(ctx, req.Origin, method, req.ClientIP, req.UserAgent, req.RequestID)
}

func jsonResponse(status int, corsHeaders map[string]string, body []byte) Response {
	headers := make(map[string]string, len(corsHeaders)+1)
	for k, v := range corsHeaders {
		headers[k] = v
	}
	headers["Content-Type"] = response.ContentTypeJSON
	return Response{StatusCode: status, Headers: headers, Body: body}
}

// decodeBody parses a JSON object with exact, case-sensitive keys. An empty
// body counts as {} so that it fails field validation rather than parsing.
// A truthy honeypot wins over everything else in the object, so a bot that
// sends a non-string website value still gets the success answer.
func decodeBody(body []byte, v *domain.InquiryRequest) error {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil
	}
	if trimmed[0] != '{' {
		return errors.New("body is not a JSON object")
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return err
	}

	if honeypot, ok := raw["website"]; ok && isTruthy(honeypot) {
		v.Website = honeypotValue(honeypot)
		return nil
	}

	fields := map[string]*string{
		"name":      &v.Name,
		"email":     &v.Email,
		"phone":     &v.Phone,
		"city":      &v.City,
		"service":   &v.Service,
		"message":   &v.Message,
		"page":      &v.Page,
		"userAgent": &v.UserAgent,
	}
	for key, dst := range fields {
		value, ok := raw[key]
		if !ok {
			continue
		}
		// null leaves the field empty
		if err := json.Unmarshal(value, dst); err != nil {
			return fmt.Errorf("field %q: %w", key, err)
		}
	}
	return nil
}

// isTruthy follows JavaScript truthiness: null, false, 0 and "" are falsy,
// every other value (objects and arrays included) is truthy.
func isTruthy(raw json.RawMessage) bool {
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return false
	}
	switch t := value.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t != ""
	default:
		return true
	}
}

func honeypotValue(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
