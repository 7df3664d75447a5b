package token

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrExpired = errors.New("token expired")
	ErrInvalid = errors.New("token invalid")
)

type Kind string

const (
	KindAccess  Kind = "access"
	KindRefresh Kind = "refresh"
	KindVerify  Kind = "verify_email"
)

const issuer = "campus-scheduler"

type Claims struct {
	Email         string `json:"email"`
	Role          string `json:"role"`
	FullName      string `json:"full_name,omitempty"`
	EmailVerified bool   `json:"email_verified"`
	Kind          Kind   `json:"token_type"`
	jwt.RegisteredClaims
}

// UserID decodes the numeric subject.
func (c *Claims) UserID() (uint, error) {
	id, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil || id == 0 {
		return 0, ErrInvalid
	}
	return uint(id), nil
}

// Remaining is how long the token stays valid after now.
func (c *Claims) Remaining(now time.Time) time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	return c.ExpiresAt.Sub(now)
}

// Subject identifies the user a token is issued for.
type Subject struct {
	ID            uint
	Email         string
	Role          string
	FullName      string
	EmailVerified bool
}

type Manager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	verifyTTL  time.Duration
	now        func() time.Time
}

func NewManager(secret string, accessTTL, refreshTTL, verifyTTL time.Duration) *Manager {
	return &Manager{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		verifyTTL:  verifyTTL,
		now:        time.Now,
	}
}

type Pair struct {
	Access    string `json:"access"`
	Refresh   string `json:"refresh"`
	ExpiresIn int64  `json:"expires_in"`
}

func (m *Manager) IssuePair(s Subject) (Pair, error) {
	access, err := m.sign(s, KindAccess, m.accessTTL)
	if err != nil {
		return Pair{}, err
	}
	refresh, err := m.sign(s, KindRefresh, m.refreshTTL)
	if err != nil {
		return Pair{}, err
	}
	return Pair{
		Access:    access,
		Refresh:   refresh,
		ExpiresIn: int64(m.accessTTL.Seconds()),
	}, nil
}

func (m *Manager) IssueVerification(userID uint, email string) (string, error) {
	return m.sign(Subject{ID: userID, Email: email}, KindVerify, m.verifyTTL)
}

// Parse validates signature, expiry and kind.
func (m *Manager) Parse(raw string, kind Kind) (*Claims, error) {
	tok, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalid
		}
		return m.secret, nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, ErrInvalid
	}

	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid || claims.Kind != kind {
		return nil, ErrInvalid
	}
	return claims, nil
}

func (m *Manager) sign(s Subject, kind Kind, ttl time.Duration) (string, error) {
	now := m.now()
	claims := Claims{
		Email:         s.Email,
		Role:          s.Role,
		FullName:      s.FullName,
		EmailVerified: s.EmailVerified,
		Kind:          kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatUint(uint64(s.ID), 10),
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}
