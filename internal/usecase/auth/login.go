package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/campus-scheduler/internal/audit"
	"github.com/BruksfildServices01/campus-scheduler/internal/cache"
	"github.com/BruksfildServices01/campus-scheduler/internal/domain/account"
	"github.com/BruksfildServices01/campus-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/campus-scheduler/internal/httperr"
	"github.com/BruksfildServices01/campus-scheduler/internal/models"
	"github.com/BruksfildServices01/campus-scheduler/internal/token"
)

var (
	errInvalidCredentials = httperr.Unauthenticated("invalid_credentials", "Invalid email or password.")
	errInvalidRefresh     = httperr.Unauthenticated("invalid_refresh_token", "Session expired. Please sign in again.")
)

type Session struct {
	User   *models.User
	Tokens token.Pair
}

func subjectOf(u *models.User) token.Subject {
	return token.Subject{
		ID:            u.ID,
		Email:         u.Email,
		Role:          u.Role,
		FullName:      u.FullName(),
		EmailVerified: u.EmailVerified,
	}
}

// ======================================================
// LOGIN
// ======================================================

type Login struct {
	repo   account.Repository
	tokens *token.Manager
	audit  *audit.Dispatcher
}

func NewLogin(repo account.Repository, tokens *token.Manager, audit *audit.Dispatcher) *Login {
	return &Login{repo: repo, tokens: tokens, audit: audit}
}

func (uc *Login) Execute(ctx context.Context, email, password string) (*Session, error) {
	u, err := uc.repo.GetUserByEmail(ctx, account.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, errInvalidCredentials
	}

	if !u.EmailVerified {
		return nil, httperr.Forbidden("email_not_verified", "Verify your email address before signing in.")
	}

	pair, err := uc.tokens.IssuePair(subjectOf(u))
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID: &u.ID,
		Action: "login",
		Entity: "user",
	})

	return &Session{User: u, Tokens: pair}, nil
}

// ======================================================
// REFRESH
// ======================================================

// Refresh rotates a refresh token: the presented token is revoked and a
// new pair is issued.
type Refresh struct {
	repo      account.Repository
	tokens    *token.Manager
	blacklist cache.Blacklist
}

func NewRefresh(repo account.Repository, tokens *token.Manager, blacklist cache.Blacklist) *Refresh {
	return &Refresh{repo: repo, tokens: tokens, blacklist: blacklist}
}

func (uc *Refresh) Execute(ctx context.Context, raw string) (*Session, error) {
	claims, err := uc.tokens.Parse(raw, token.KindRefresh)
	if err != nil {
		return nil, errInvalidRefresh
	}

	id, err := claims.UserID()
	if err != nil {
		return nil, errInvalidRefresh
	}

	u, err := uc.repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errInvalidRefresh
		}
		return nil, err
	}

	// A refresh token is spent exactly once, concurrent replays included.
	claimed, err := uc.blacklist.Claim(ctx, claims.ID, claims.Remaining(timeNow()))
	if err != nil {
		return nil, err
	}
	if !claimed {
		return nil, errInvalidRefresh
	}

	pair, err := uc.tokens.IssuePair(subjectOf(u))
	if err != nil {
		return nil, err
	}
	return &Session{User: u, Tokens: pair}, nil
}

// ======================================================
// LOGOUT
// ======================================================

type Logout struct {
	tokens    *token.Manager
	blacklist cache.Blacklist
	audit     *audit.Dispatcher
}

func NewLogout(tokens *token.Manager, blacklist cache.Blacklist, audit *audit.Dispatcher) *Logout {
	return &Logout{tokens: tokens, blacklist: blacklist, audit: audit}
}

// Execute revokes the caller's refresh token. Access tokens expire on
// their own.
func (uc *Logout) Execute(ctx context.Context, caller identity.Caller, raw string) error {
	claims, err := uc.tokens.Parse(raw, token.KindRefresh)
	if err != nil {
		return errInvalidRefresh
	}

	id, err := claims.UserID()
	if err != nil || id != caller.UserID {
		return httperr.Forbidden("token_not_owned", "This session belongs to another user.")
	}

	if err := uc.blacklist.BlacklistToken(ctx, claims.ID, claims.Remaining(timeNow())); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID: &caller.UserID,
		Action: "logout",
		Entity: "user",
	})
	return nil
}
