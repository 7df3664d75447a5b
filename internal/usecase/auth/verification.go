package auth

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/campus-scheduler/internal/audit"
	"github.com/BruksfildServices01/campus-scheduler/internal/domain/account"
	"github.com/BruksfildServices01/campus-scheduler/internal/httperr"
	"github.com/BruksfildServices01/campus-scheduler/internal/mail"
	"github.com/BruksfildServices01/campus-scheduler/internal/models"
	"github.com/BruksfildServices01/campus-scheduler/internal/token"
)

// VerificationSender issues a verification token and mails the link.
type VerificationSender struct {
	tokens      *token.Manager
	mailer      mail.Mailer
	frontendURL string
	ttl         time.Duration
}

func NewVerificationSender(tokens *token.Manager, mailer mail.Mailer, frontendURL string, ttl time.Duration) *VerificationSender {
	return &VerificationSender{
		tokens:      tokens,
		mailer:      mailer,
		frontendURL: frontendURL,
		ttl:         ttl,
	}
}

func (s *VerificationSender) Send(ctx context.Context, u *models.User) error {
	raw, err := s.tokens.IssueVerification(u.ID, u.Email)
	if err != nil {
		return err
	}

	msg, err := mail.VerificationMessage(u.Email, mail.VerificationData{
		Name:      u.FirstName,
		Link:      s.frontendURL + "/verify-email/" + raw,
		ExpiresIn: s.ttl.String(),
	})
	if err != nil {
		return err
	}
	return s.mailer.Send(ctx, msg)
}

// ======================================================
// VERIFY
// ======================================================

type VerifyEmail struct {
	repo   account.Repository
	tokens *token.Manager
	audit  *audit.Dispatcher
}

func NewVerifyEmail(repo account.Repository, tokens *token.Manager, audit *audit.Dispatcher) *VerifyEmail {
	return &VerifyEmail{repo: repo, tokens: tokens, audit: audit}
}

// Execute marks the token's account verified. Verifying twice succeeds.
func (uc *VerifyEmail) Execute(ctx context.Context, raw string) (*models.User, error) {
	claims, err := uc.tokens.Parse(raw, token.KindVerify)
	if err != nil {
		if errors.Is(err, token.ErrExpired) {
			return nil, httperr.Validation("verification_link_expired", "This verification link has expired. Request a new one.")
		}
		return nil, httperr.Validation("invalid_verification_token", "This verification link is not valid.")
	}

	id, err := claims.UserID()
	if err != nil {
		return nil, httperr.Validation("invalid_verification_token", "This verification link is not valid.")
	}

	u, err := uc.repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.Validation("invalid_verification_token", "This verification link is not valid.")
		}
		return nil, err
	}

	// the token is bound to the address it was sent to
	if u.Email != claims.Email {
		return nil, httperr.Validation("invalid_verification_token", "This verification link is not valid.")
	}

	if u.EmailVerified {
		return u, nil
	}

	if err := uc.repo.MarkEmailVerified(ctx, u.ID); err != nil {
		return nil, err
	}
	u.EmailVerified = true

	uc.audit.Dispatch(audit.Event{
		UserID:   &u.ID,
		Action:   "email_verified",
		Entity:   "user",
		EntityID: &u.ID,
	})

	return u, nil
}

// ======================================================
// RESEND
// ======================================================

type ResendVerification struct {
	repo     account.Repository
	verifier *VerificationSender
	logger   *zap.Logger
}

func NewResendVerification(repo account.Repository, verifier *VerificationSender, logger *zap.Logger) *ResendVerification {
	return &ResendVerification{repo: repo, verifier: verifier, logger: logger}
}

// Execute sends a fresh link when the account exists and is unverified.
// It reports success either way so addresses cannot be probed.
func (uc *ResendVerification) Execute(ctx context.Context, email string) error {
	u, err := uc.repo.GetUserByEmail(ctx, account.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	if u.EmailVerified {
		return nil
	}

	if err := uc.verifier.Send(ctx, u); err != nil {
		uc.logger.Warn("verification email failed", zap.Uint("user_id", u.ID), zap.Error(err))
	}
	return nil
}
