// internal/email/sender.go
package email

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/1craig1/game-release-tracker/internal/config"
	"github.com/1craig1/game-release-tracker/internal/email/templates"

	"gopkg.in/gomail.v2"
)

type Sender struct {
	cfg *config.Config
}

func NewSender(cfg *config.Config) *Sender {
	return &Sender{cfg: cfg}
}

func (s *Sender) Send(ctx context.Context, to, subject, body string) error {
	log.Printf("📧 [SEND] To: %s | Subject: %s", to, subject)

	m := gomail.NewMessage()
	m.SetHeader("From", fmt.Sprintf("%s <%s>", s.cfg.SMTPFromName, s.cfg.SMTPFrom))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	dialer := gomail.NewDialer(s.cfg.SMTPHost, s.cfg.SMTPPort, s.cfg.SMTPUser, s.cfg.SMTPPass)

	// Exponential backoff: 1s, 2s, 4s → max 3 retries
	for attempt := 0; attempt < 3; attempt++ {
		if err := dialer.DialAndSend(m); err != nil {
			delay := time.Duration(1<<attempt) * time.Second
			log.Printf("❌ [ATTEMPT %d] Failed to send email to %s: %v → retrying in %v", attempt+1, to, err, delay)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return fmt.Errorf("email send cancelled: %w", ctx.Err())
			}
			continue
		}
		log.Printf("✅ [SUCCESS] Email sent to %s (Subject: %s)", to, subject)
		return nil
	}

	log.Printf("💥 [FAILED] All retries exhausted for %s", to)
	return fmt.Errorf("failed to send email to %s after 3 attempts", to)
}

// SendGameReleased renders and sends the release alert for one wishlisted game.
func (s *Sender) SendGameReleased(ctx context.Context, to, username, gameTitle string, releaseDate time.Time) error {
	body, err := templates.RenderGameReleased(templates.GameReleasedData{
		Username:    username,
		GameTitle:   gameTitle,
		ReleaseDate: releaseDate.Format("January 2, 2006"),
	})
	if err != nil {
		return fmt.Errorf("render game_released: %w", err)
	}
	subject := fmt.Sprintf("🎮 '%s' is out now!", gameTitle)
	return s.Send(ctx, to, subject, body)
}
