// Package submitter is the client side of the contact form: it checks the
// visitor's input, posts it to the relay once and drives the form's
// alerts and submit control through a View.
package submitter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"

	"contact-relay/internal/domain"
	"contact-relay/pkg/logger"
)

// PendingLabel replaces the submit label while a request is in flight.
const PendingLabel = "Sending…"

var (
	ErrBusy          = errors.New("submission already in progress")
	ErrMissingFields = errors.New("missing required fields")
)

// StatusError reports a non-2xx answer from the relay.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("relay responded %d: %s", e.StatusCode, e.Body)
}

// Form holds the raw values typed by the visitor.
type Form struct {
	Name    string
	Email   string
	Phone   string
	City    string
	Service string
	Message string
	Website string
}

// View is the part of the page the submitter manipulates.
type View interface {
	HideAlerts()
	ShowSuccess()
	ShowError()
	SetSubmitting(disabled bool, label string)
	SubmitLabel() string
	Reset()
}

type Config struct {
	Endpoint  string
	Origin    string
	Page      string
	UserAgent string
}

type Submitter struct {
	cfg        Config
	httpClient *http.Client
	busy       atomic.Bool
}

// New builds a Submitter. A nil client gets a fresh one with no cookie jar,
// so no credentials ever travel with the request.
func New(cfg Config, httpClient *http.Client) *Submitter {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Submitter{
		cfg:        cfg,
		httpClient: httpClient,
	}
}

// Submit runs one form submission. It returns nil for a delivered or
// silently dropped (honeypot) inquiry.
func (s *Submitter) Submit(ctx context.Context, form Form, view View) error {
	if !s.busy.CompareAndSwap(false, true) {
		return ErrBusy
	}
	defer s.busy.Store(false)

	view.HideAlerts()

	if form.Website != "" {
		view.ShowSuccess()
		view.Reset()
		return nil
	}

	payload := domain.InquiryRequest{
		Name:      strings.TrimSpace(form.Name),
		Email:     strings.TrimSpace(form.Email),
		Phone:     strings.TrimSpace(form.Phone),
		City:      strings.TrimSpace(form.City),
		Service:   strings.TrimSpace(form.Service),
		Message:   strings.TrimSpace(form.Message),
		Page:      s.cfg.Page,
		UserAgent: s.cfg.UserAgent,
	}
	if payload.Name == "" || payload.Email == "" || payload.Service == "" || payload.Message == "" {
		logger.Log.WarnContext(ctx, "Contact form validation failed")
		view.ShowError()
		return ErrMissingFields
	}

	prev := view.SubmitLabel()
	view.SetSubmitting(true, PendingLabel)
	defer view.SetSubmitting(false, prev)

	status, body, err := s.post(ctx, payload)
	if err != nil {
		logger.Log.ErrorContext(ctx, "Contact form network error", "error", err)
		view.ShowError()
		return err
	}
	if status < 200 || status > 299 {
		logger.Log.ErrorContext(ctx, "Contact API error", "status", status, "body", body)
		view.ShowError()
		return &StatusError{StatusCode: status, Body: body}
	}

	logger.Log.InfoContext(ctx, "Contact API success", "status", status)
	view.Reset()
	view.ShowSuccess()
	return nil
}

// Ping posts a fixed test inquiry and reports what the relay answered.
func (s *Submitter) Ping(ctx context.Context) (int, string, error) {
	return s.post(ctx, domain.InquiryRequest{
		Name:      "Debug Tester",
		Email:     "test@example.com",
		Phone:     "000-000-0000",
		City:      "Phoenix",
		Service:   "Mare Motel",
		Message:   "Debug ping from contact client",
		Page:      s.cfg.Page,
		UserAgent: s.cfg.UserAgent,
	})
}

func (s *Submitter) post(ctx context.Context, payload domain.InquiryRequest) (int, string, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return 0, "", fmt.Errorf("encode inquiry: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.Endpoint, bytes.NewReader(raw))
	if err != nil {
		return 0, "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.cfg.Origin != "" {
		req.Header.Set("Origin", s.cfg.Origin)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return 0, "", fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	// the body is only informational, so a read failure leaves it empty
	text, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(text), nil
}
