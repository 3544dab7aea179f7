package domain

import (
	"context"
	"strings"
)

// InquiryRequest is the JSON body posted by the contact form. Every field is
// a string on the wire; Page and UserAgent are filled in by the client and
// Website is the honeypot.
type InquiryRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	City      string `json:"city,omitempty"`
	Service   string `json:"service"`
	Message   string `json:"message"`
	Page      string `json:"page,omitempty"`
	UserAgent string `json:"userAgent,omitempty"`
	Website   string `json:"website,omitempty"`
}

// IsSpam reports whether the honeypot field was filled in.
func (r *InquiryRequest) IsSpam() bool {
	return r.Website != ""
}

// Normalize returns the trimmed Inquiry built from the request.
func (r *InquiryRequest) Normalize() Inquiry {
	return Inquiry{
		Name:      strings.TrimSpace(r.Name),
		Email:     strings.TrimSpace(r.Email),
		Phone:     strings.TrimSpace(r.Phone),
		City:      strings.TrimSpace(r.City),
		Service:   strings.TrimSpace(r.Service),
		Message:   strings.TrimSpace(r.Message),
		Page:      strings.TrimSpace(r.Page),
		UserAgent: strings.TrimSpace(r.UserAgent),
	}
}

// Inquiry is a trimmed submission. It lives for one request and is never
// stored.
type Inquiry struct {
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"required"`
	Phone     string `json:"phone"`
	City      string `json:"city"`
	Service   string `json:"service" validate:"required"`
	Message   string `json:"message" validate:"required"`
	Page      string `json:"page"`
	UserAgent string `json:"userAgent"`
}

// RequestMeta carries transport details used only for logging.
type RequestMeta struct {
	RequestID string
	ClientIP  string
	UserAgent string
	Origin    string
}

// ContactUsecase defines the interface for relaying contact form inquiries
type ContactUsecase interface {
	// SubmitInquiry validates the inquiry and relays it as an email.
	// Honeypot submissions return nil without sending anything.
	SubmitInquiry(ctx context.Context, req *InquiryRequest, meta RequestMeta) error
}
