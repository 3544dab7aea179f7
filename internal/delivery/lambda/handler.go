// Package lambda exposes the relay as an AWS Lambda function behind API
// Gateway. Both the HTTP API (payload 2.0) and REST API (payload 1.0)
// event shapes are accepted.
package lambda

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"contact-relay/internal/delivery/relay"
	"contact-relay/pkg/logger"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"
)

type Handler struct {
	relay *relay.Handler
}

func NewHandler(relayHandler *relay.Handler) *Handler {
	return &Handler{relay: relayHandler}
}

// eventProbe holds just enough of either payload version to tell them apart.
type eventProbe struct {
	Version        string `json:"version"`
	RequestContext struct {
		HTTP struct {
			Method string `json:"method"`
		} `json:"http"`
	} `json:"requestContext"`
}

// Handle is the function registered with lambda.Start.
func (h *Handler) Handle(ctx context.Context, payload json.RawMessage) (any, error) {
	var probe eventProbe
	if err := json.Unmarshal(payload, &probe); err != nil {
		return nil, fmt.Errorf("decode event: %w", err)
	}

	if probe.Version == "2.0" || probe.RequestContext.HTTP.Method != "" {
		var ev events.APIGatewayV2HTTPRequest
		if err := json.Unmarshal(payload, &ev); err != nil {
			return nil, fmt.Errorf("decode http api event: %w", err)
		}
		return h.HandleV2(ctx, ev), nil
	}

	var ev events.APIGatewayProxyRequest
	if err := json.Unmarshal(payload, &ev); err != nil {
		return nil, fmt.Errorf("decode rest api event: %w", err)
	}
	return h.HandleV1(ctx, ev), nil
}

func (h *Handler) HandleV2(ctx context.Context, ev events.APIGatewayV2HTTPRequest) events.APIGatewayV2HTTPResponse {
	userAgent := ev.RequestContext.HTTP.UserAgent
	if userAgent == "" {
		userAgent = header(ev.Headers, "User-Agent")
	}

	res := h.relay.Handle(ctx, relay.Request{
		Method:    ev.RequestContext.HTTP.Method,
		Origin:    header(ev.Headers, "Origin"),
		Body:      decodeEventBody(ctx, ev.Body, ev.IsBase64Encoded),
		RequestID: requestID(ev.Headers, ev.RequestContext.RequestID),
		ClientIP:  ev.RequestContext.HTTP.SourceIP,
		UserAgent: userAgent,
	})

	return events.APIGatewayV2HTTPResponse{
		StatusCode: res.StatusCode,
		Headers:    res.Headers,
		Body:       string(res.Body),
	}
}

func (h *Handler) HandleV1(ctx context.Context, ev events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	userAgent := ev.RequestContext.Identity.UserAgent
	if userAgent == "" {
		userAgent = header(ev.Headers, "User-Agent")
	}

	res := h.relay.Handle(ctx, relay.Request{
		Method:    ev.HTTPMethod,
		Origin:    header(ev.Headers, "Origin"),
		Body:      decodeEventBody(ctx, ev.Body, ev.IsBase64Encoded),
		RequestID: requestID(ev.Headers, ev.RequestContext.RequestID),
		ClientIP:  ev.RequestContext.Identity.SourceIP,
		UserAgent: userAgent,
	})

	return events.APIGatewayProxyResponse{
		StatusCode: res.StatusCode,
		Headers:    res.Headers,
		Body:       string(res.Body),
	}
}

// header looks a name up case-insensitively; API Gateway lower-cases
// header names for HTTP APIs but not for REST APIs.
func header(headers map[string]string, name string) string {
	if v, ok := headers[name]; ok {
		return v
	}
	for k, v := range headers {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return ""
}

func requestID(headers map[string]string, fallback string) string {
	if id := header(headers, "X-Request-ID"); id != "" {
		if _, err := uuid.Parse(id); err == nil {
			return id
		}
	}
	if fallback != "" {
		return fallback
	}
	return uuid.NewString()
}

func decodeEventBody(ctx context.Context, body string, isBase64 bool) []byte {
	if !isBase64 {
		return []byte(body)
	}
	decoded, err := base64.StdEncoding.DecodeString(body)
	if err != nil {
		logger.Log.WarnContext(ctx, "Undecodable base64 body", "error", err)
		// an undecodable body must still fail as Invalid JSON
		return []byte("{")
	}
	return decoded
}
