package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/resend/resend-go/v2"
)

// EmailService отправляет транзакционные письма
type EmailService interface {
	SendWelcome(ctx context.Context, toEmail, username string) error
}

// NoopEmailService используется, когда отправка писем не настроена
type NoopEmailService struct{}

func (s *NoopEmailService) SendWelcome(ctx context.Context, toEmail, username string) error {
	log.Printf("[EmailService] noop welcome email to=%s", toEmail)
	return nil
}

// ResendEmailService отправляет письма через Resend REST API
type ResendEmailService struct {
	from   string
	client *resend.Client
}

func NewResendEmailService(apiKey, from string) (*ResendEmailService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("resend api key is required")
	}
	if from == "" {
		return nil, fmt.Errorf("email from is required")
	}
	return &ResendEmailService{
		from:   from,
		client: resend.NewClient(apiKey),
	}, nil
}

// NewEmailService возвращает Resend-клиент, если задан ключ, иначе Noop
func NewEmailService(apiKey, from string) (EmailService, error) {
	if strings.TrimSpace(apiKey) == "" {
		return &NoopEmailService{}, nil
	}
	return NewResendEmailService(apiKey, from)
}

func (s *ResendEmailService) SendWelcome(ctx context.Context, toEmail, username string) error {
	if toEmail == "" {
		return fmt.Errorf("toEmail is required")
	}

	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{toEmail},
		Subject: "Bienvenue !",
		Text: fmt.Sprintf("Bonjour %s, votre compte est prêt. Trois catégories vous attendent déjà : "+
			"créez votre premier quiz !", username),
		Html: fmt.Sprintf("<p>Bonjour <strong>%s</strong>,</p><p>Votre compte est prêt. "+
			"Créez votre premier quiz !</p>", username),
	}

	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		_, err := s.client.Emails.SendWithOptions(ctx, params, &resend.SendEmailOptions{IdempotencyKey: "welcome/" + toEmail})
		if err == nil {
			return nil
		}
		lastErr = err

		if wait, ok := resendRetryDelay(err, attempt); ok {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
				continue
			}
		}

		return fmt.Errorf("resend send failed: %w", err)
	}

	return fmt.Errorf("resend send failed after retries: %w", lastErr)
}

func resendRetryDelay(err error, attempt int) (time.Duration, bool) {
	var rateLimitErr *resend.RateLimitError
	if errors.As(err, &rateLimitErr) {
		if seconds, convErr := strconv.Atoi(strings.TrimSpace(rateLimitErr.RetryAfter)); convErr == nil && seconds > 0 {
			if seconds > 30 {
				seconds = 30
			}
			return time.Duration(seconds) * time.Second, true
		}
		return time.Duration(attempt+1) * time.Second, true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return time.Duration(attempt+1) * 500 * time.Millisecond, true
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "timeout") || strings.Contains(msg, "temporar") {
		return time.Duration(attempt+1) * 500 * time.Millisecond, true
	}

	return 0, false
}
