// Command contact submits one inquiry to a running relay the same way the
// website form does. Handy for smoke tests after a deploy.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"contact-relay/internal/submitter"
	"contact-relay/pkg/logger"

	"github.com/joho/godotenv"
)

// terminalView prints what a browser would show.
type terminalView struct {
	label string
}

func (v *terminalView) HideAlerts()  {}
func (v *terminalView) ShowSuccess() { fmt.Println("✓ Thanks! Your message has been sent.") }
func (v *terminalView) ShowError() {
	fmt.Fprintln(os.Stderr, "✗ Sorry, something went wrong. Please check the form and try again.")
}
func (v *terminalView) Reset()              {}
func (v *terminalView) SubmitLabel() string { return v.label }

func (v *terminalView) SetSubmitting(disabled bool, label string) {
	v.label = label
	if disabled {
		fmt.Println(label)
	}
}

func main() {
	_ = godotenv.Load()

	endpoint := flag.String("endpoint", os.Getenv("CONTACT_API_URL"), "relay URL (defaults to $CONTACT_API_URL)")
	origin := flag.String("origin", os.Getenv("CONTACT_ORIGIN"), "Origin header to present")
	page := flag.String("page", "", "page URL reported with the inquiry")
	name := flag.String("name", "", "visitor name")
	email := flag.String("email", "", "visitor email")
	phone := flag.String("phone", "", "visitor phone")
	city := flag.String("city", "", "visitor city or area")
	service := flag.String("service", "", "requested service")
	message := flag.String("message", "", "message text")
	website := flag.String("website", "", "honeypot value; anything here drops the submission")
	ping := flag.Bool("ping", false, "send the fixed debug inquiry and print the raw answer")
	timeout := flag.Duration("timeout", 30*time.Second, "overall request timeout")
	flag.Parse()

	logger.Init(os.Getenv("APP_ENV"))

	if *endpoint == "" {
		fmt.Fprintln(os.Stderr, "missing -endpoint (or CONTACT_API_URL)")
		os.Exit(2)
	}
	if *page == "" {
		*page = *origin
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	s := submitter.New(submitter.Config{
		Endpoint:  *endpoint,
		Origin:    *origin,
		Page:      *page,
		UserAgent: "contact-relay-cli/1.0",
	}, nil)

	if *ping {
		status, body, err := s.Ping(ctx)
		if err != nil {
			fmt.Fprintln(os.Stderr, "network error:", err)
			os.Exit(1)
		}
		fmt.Println(status, body)
		return
	}

	err := s.Submit(ctx, submitter.Form{
		Name:    *name,
		Email:   *email,
		Phone:   *phone,
		City:    *city,
		Service: *service,
		Message: *message,
		Website: *website,
	}, &terminalView{label: "Send Message"})

	var statusErr *submitter.StatusError
	switch {
	case err == nil:
	case errors.Is(err, submitter.ErrMissingFields):
		os.Exit(2)
	case errors.As(err, &statusErr):
		fmt.Fprintf(os.Stderr, "relay answered %d: %s\n", statusErr.StatusCode, statusErr.Body)
		os.Exit(1)
	default:
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
