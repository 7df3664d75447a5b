package auth

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/campus-scheduler/internal/audit"
	"github.com/BruksfildServices01/campus-scheduler/internal/domain/account"
	"github.com/BruksfildServices01/campus-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/campus-scheduler/internal/httperr"
	"github.com/BruksfildServices01/campus-scheduler/internal/models"
	"github.com/BruksfildServices01/campus-scheduler/internal/validators"
)

// Register creates an unverified student account and emails a
// verification link. Specialists and admins are provisioned offline.
type Register struct {
	repo          account.Repository
	verifier      *VerificationSender
	audit         *audit.Dispatcher
	checkDomain   validators.DomainChecker
	allowedDomain string
	logger        *zap.Logger
}

func NewRegister(
	repo account.Repository,
	verifier *VerificationSender,
	audit *audit.Dispatcher,
	checkDomain validators.DomainChecker,
	allowedDomain string,
	logger *zap.Logger,
) *Register {
	if checkDomain == nil {
		checkDomain = validators.AcceptAll
	}
	return &Register{
		repo:          repo,
		verifier:      verifier,
		audit:         audit,
		checkDomain:   checkDomain,
		allowedDomain: allowedDomain,
		logger:        logger,
	}
}

func (uc *Register) Execute(ctx context.Context, in account.Registration) (*models.User, error) {
	in.Normalize()
	if err := in.Validate(uc.allowedDomain); err != nil {
		return nil, err
	}

	if !uc.checkDomain(ctx, in.Email) {
		return nil, httperr.Validation("invalid_email_domain", "The email domain does not appear to accept mail.")
	}

	exists, err := uc.repo.EmailExists(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, httperr.Conflict("email_already_registered", "An account with this email already exists.")
	}

	if in.StudentNumber != "" {
		taken, err := uc.repo.StudentNumberExists(ctx, in.StudentNumber)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, httperr.Conflict("student_number_taken", "This student number is already registered.")
		}
	}

	hashed, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	u := &models.User{
		Email:         in.Email,
		FirstName:     in.FirstName,
		LastName:      in.LastName,
		PasswordHash:  hashed,
		Role:          string(identity.RoleStudent),
		StudentNumber: optional(in.StudentNumber),
		Phone:         optional(in.Phone),
		Department:    optional(in.Department),
	}

	if err := uc.repo.CreateUser(ctx, u); err != nil {
		return nil, err
	}

	// send failures do not fail registration
	if err := uc.verifier.Send(ctx, u); err != nil {
		uc.logger.Warn("verification email failed", zap.Uint("user_id", u.ID), zap.Error(err))
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &u.ID,
		Action:   "user_registered",
		Entity:   "user",
		EntityID: &u.ID,
	})

	return u, nil
}

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
