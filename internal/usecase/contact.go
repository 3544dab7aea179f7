package usecase

import (
	"context"
	"errors"

	"contact-relay/config"
	"contact-relay/internal/domain"
	"contact-relay/pkg/apperror"
	"contact-relay/pkg/email"
	"contact-relay/pkg/logger"
	"contact-relay/pkg/phone"
	"contact-relay/pkg/security"
	"contact-relay/pkg/validation"

	"github.com/go-playground/validator/v10"
)

var errMissingAddressing = errors.New("FROM_EMAIL or TO_EMAIL is not configured")

type contactUsecase struct {
	cfg      *config.Config
	sender   email.Sender
	validate *validator.Validate
	secLog   *security.SecurityLogger
}

// NewContactUsecase creates a new contact usecase
func NewContactUsecase(cfg *config.Config, sender email.Sender, validate *validator.Validate, secLog *security.SecurityLogger) domain.ContactUsecase {
	return &contactUsecase{
		cfg:      cfg,
		sender:   sender,
		validate: validate,
		secLog:   secLog,
	}
}

// SubmitInquiry drops honeypot submissions, validates the rest and relays
// them to the configured recipient with Reply-To set to the visitor.
func (uc *contactUsecase) SubmitInquiry(ctx context.Context, req *domain.InquiryRequest, meta domain.RequestMeta) error {
	if req.IsSpam() {
		uc.secLog.LogHoneypotTriggered(ctx, req.Email, meta.ClientIP, meta.UserAgent, meta.RequestID)
		return nil
	}

	inquiry := req.Normalize()
	if err := uc.validate.Struct(inquiry); err != nil {
		logger.Log.DebugContext(ctx, "Inquiry failed validation", "request_id", meta.RequestID, "errors", validation.FormatValidationErrors(err))
		uc.secLog.LogValidationFailed(ctx, meta.ClientIP, meta.RequestID, validation.MissingFields(err))
		return apperror.Unprocessable(apperror.MsgMissingFields, err)
	}

	if !uc.cfg.HasAddressing() {
		logger.Log.ErrorContext(ctx, "Missing FROM_EMAIL or TO_EMAIL env var", "request_id", meta.RequestID)
		return apperror.NotConfigured(errMissingAddressing)
	}

	content := email.ComposeInquiry(uc.cfg.SubjectPrefix, email.InquiryEmailData{
		Name:      inquiry.Name,
		Email:     inquiry.Email,
		Phone:     phone.Display(inquiry.Phone, uc.cfg.PhoneRegion),
		City:      inquiry.City,
		Service:   inquiry.Service,
		Message:   inquiry.Message,
		Page:      inquiry.Page,
		UserAgent: inquiry.UserAgent,
	})

	msg := email.Message{
		From:    uc.cfg.FromEmail,
		To:      uc.cfg.ToEmail,
		ReplyTo: inquiry.Email,
		Subject: content.Subject,
		Text:    content.Text,
		HTML:    content.HTML,
	}

	if err := uc.sender.Send(ctx, msg); err != nil {
		logger.Log.ErrorContext(ctx, "Email send failed", "request_id", meta.RequestID, "error", err)
		uc.secLog.LogEmailSendFailed(ctx, inquiry.Email, meta.RequestID, err)
		return apperror.SendFailed(err)
	}

	uc.secLog.LogInquiryRelayed(ctx, inquiry.Email, inquiry.Service, meta.RequestID)
	return nil
}
