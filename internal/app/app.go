// Package app assembles the relay from configuration. The HTTP server and
// the Lambda entry point share it so both run the same stack.
package app

import (
	"context"
	"fmt"

	"contact-relay/config"
	"contact-relay/internal/delivery/relay"
	"contact-relay/internal/usecase"
	"contact-relay/pkg/cors"
	"contact-relay/pkg/email"
	"contact-relay/pkg/logger"
	"contact-relay/pkg/security"
	"contact-relay/pkg/validation"
)

// NewRelay wires policy, sender, validator and usecase into a relay handler.
func NewRelay(ctx context.Context, cfg *config.Config, secLog *security.SecurityLogger) (*relay.Handler, error) {
	sender, err := email.NewSender(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("email sender: %w", err)
	}

	if !cfg.HasAddressing() {
		logger.Log.Warn("FROM_EMAIL or TO_EMAIL not set - contact form will answer Server not configured")
	}

	policy := cors.NewPolicy(cfg.AllowedOrigins, cfg.CORSAllowAll, cfg.CORSMaxAge)
	contactUC := usecase.NewContactUsecase(cfg, sender, validation.New(), secLog)

	return relay.NewHandler(policy, contactUC, secLog), nil
}
