package main

import (
	"context"
	"log"

	"contact-relay/config"
	"contact-relay/internal/app"
	lambdahandler "contact-relay/internal/delivery/lambda"
	"contact-relay/pkg/logger"
	"contact-relay/pkg/security"

	"github.com/aws/aws-lambda-go/lambda"
)

// Configuration is read once per container; warm invocations reuse it.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.Env)
	secLog := security.InitSecurityLogger(cfg.SecurityServiceName, cfg.Env)

	relayHandler, err := app.NewRelay(context.Background(), cfg, secLog)
	if err != nil {
		log.Fatalf("Failed to build relay: %v", err)
	}

	logger.Log.Info("Contact relay ready", "email_provider", cfg.EmailProvider, "region", cfg.AWSRegion)
	lambda.Start(lambdahandler.NewHandler(relayHandler).Handle)
}
