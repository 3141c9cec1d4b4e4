package service

import (
	"context"
	"fmt"
	"html"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/roleplay/roleplay-api/internal/domain"
	"github.com/roleplay/roleplay-api/internal/mail"
	"github.com/roleplay/roleplay-api/internal/repository"
)

const resetPasswordSubject = "Roleplay: Recuperação de senha"

// PasswordService handles forgot/reset password flow
type PasswordService struct {
	userRepo  repository.UserRepository
	tokenRepo repository.LinkTokenRepository
	mailer    mail.Mailer
	mailFrom  string
	resetTTL  time.Duration
	now       func() time.Time
}

// NewPasswordService creates a new PasswordService
func NewPasswordService(
	userRepo repository.UserRepository,
	tokenRepo repository.LinkTokenRepository,
	mailer mail.Mailer,
	mailFrom string,
	resetTTL time.Duration,
) *PasswordService {
	return &PasswordService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		mailer:    mailer,
		mailFrom:  mailFrom,
		resetTTL:  resetTTL,
		now:       time.Now,
	}
}

// ForgotPassword creates a reset token and mails a reset link to the user
func (s *PasswordService) ForgotPassword(ctx context.Context, email, resetPasswordURL string) error {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	token, err := s.tokenRepo.Create(ctx, user.ID, uuid.NewString())
	if err != nil {
		return err
	}

	link, err := resetLink(resetPasswordURL, token.Token)
	if err != nil {
		return err
	}

	body := fmt.Sprintf(
		`<p>Olá, %s!</p><p>Para redefinir sua senha acesse <a href="%s">este link</a>. O link expira em %s.</p>`,
		html.EscapeString(user.Username), html.EscapeString(link), s.resetTTL,
	)

	return s.mailer.Send(ctx, mail.Message{
		From:    s.mailFrom,
		To:      user.Email,
		Subject: resetPasswordSubject,
		HTML:    body,
	})
}

// ResetPassword sets a new password using a reset token. Tokens are single use
// and expire after the configured TTL.
func (s *PasswordService) ResetPassword(ctx context.Context, token, password string) error {
	linkToken, err := s.tokenRepo.GetByToken(ctx, token)
	if err != nil {
		return err
	}

	if linkToken.IsExpired(s.now(), s.resetTTL) {
		return domain.ErrTokenExpired
	}

	user, err := s.userRepo.GetByID(ctx, linkToken.UserID)
	if err != nil {
		return err
	}

	hashed, err := HashPassword(password)
	if err != nil {
		return err
	}
	user.Password = hashed

	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	return s.tokenRepo.DeleteByUser(ctx, user.ID)
}

func resetLink(base, token string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid reset password url: %w", err)
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
