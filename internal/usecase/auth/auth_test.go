package auth

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/campus-scheduler/internal/cache"
	"github.com/BruksfildServices01/campus-scheduler/internal/config"
	"github.com/BruksfildServices01/campus-scheduler/internal/domain/account"
	"github.com/BruksfildServices01/campus-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/campus-scheduler/internal/httperr"
	"github.com/BruksfildServices01/campus-scheduler/internal/media"
	"github.com/BruksfildServices01/campus-scheduler/internal/token"
)

type env struct {
	repo      *mockUserRepo
	mailer    *memMailer
	tokens    *token.Manager
	blacklist *cache.MemoryBlacklist
	register  *Register
	verify    *VerifyEmail
	login     *Login
}

func newEnv(allowedDomain string) *env {
	repo := newMockUserRepo()
	mailer := &memMailer{}
	tokens := token.NewManager("test-secret-0123456789", 15*time.Minute, 24*time.Hour, 24*time.Hour)
	sender := NewVerificationSender(tokens, mailer, "http://localhost:3000", 24*time.Hour)

	return &env{
		repo:      repo,
		mailer:    mailer,
		tokens:    tokens,
		blacklist: cache.NewMemoryBlacklist(),
		register:  NewRegister(repo, sender, nil, nil, allowedDomain, zap.NewNop()),
		verify:    NewVerifyEmail(repo, tokens, nil),
		login:     NewLogin(repo, tokens, nil),
	}
}

func registration() account.Registration {
	return account.Registration{
		Email:         "Ana@Campus.edu",
		Password:      "s3cret-pass",
		FirstName:     "Ana",
		LastName:      "Lopez",
		StudentNumber: "A0123",
	}
}

// linkToken extracts the token from the last verification email.
func (e *env) linkToken(t *testing.T) string {
	t.Helper()
	require.NotEmpty(t, e.mailer.sent)
	text := e.mailer.sent[len(e.mailer.sent)-1].Text
	i := strings.Index(text, "/verify-email/")
	require.GreaterOrEqual(t, i, 0)
	rest := text[i+len("/verify-email/"):]
	return strings.Fields(rest)[0]
}

func TestRegister_CreatesUnverifiedStudent(t *testing.T) {
	e := newEnv("campus.edu")

	u, err := e.register.Execute(context.Background(), registration())
	require.NoError(t, err)

	assert.Equal(t, "ana@campus.edu", u.Email)
	assert.Equal(t, string(identity.RoleStudent), u.Role)
	assert.False(t, u.EmailVerified)
	assert.NotEqual(t, "s3cret-pass", u.PasswordHash)
	require.Len(t, e.mailer.sent, 1)
	assert.Equal(t, "ana@campus.edu", e.mailer.sent[0].To)
}

func TestRegister_Conflicts(t *testing.T) {
	e := newEnv("")
	_, err := e.register.Execute(context.Background(), registration())
	require.NoError(t, err)

	_, err = e.register.Execute(context.Background(), registration())
	assert.True(t, httperr.IsBusiness(err, "email_already_registered"))

	other := registration()
	other.Email = "beto@campus.edu"
	_, err = e.register.Execute(context.Background(), other)
	assert.True(t, httperr.IsBusiness(err, "student_number_taken"))
}

func TestRegister_DomainRules(t *testing.T) {
	e := newEnv("campus.edu")
	in := registration()
	in.Email = "ana@gmail.com"

	_, err := e.register.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "email_domain_not_allowed"))

	repo := newMockUserRepo()
	reject := func(context.Context, string) bool { return false }
	uc := NewRegister(repo, nil, nil, reject, "", zap.NewNop())
	_, err = uc.Execute(context.Background(), registration())
	assert.True(t, httperr.IsBusiness(err, "invalid_email_domain"))
}

func TestRegister_MailFailureStillCreatesAccount(t *testing.T) {
	e := newEnv("")
	e.mailer.err = errors.New("smtp down")

	u, err := e.register.Execute(context.Background(), registration())
	require.NoError(t, err)
	assert.NotZero(t, u.ID)
}

func TestVerifyThenLogin(t *testing.T) {
	e := newEnv("")
	ctx := context.Background()

	_, err := e.register.Execute(ctx, registration())
	require.NoError(t, err)

	_, err = e.login.Execute(ctx, "ana@campus.edu", "s3cret-pass")
	assert.True(t, httperr.IsBusiness(err, "email_not_verified"))
	assert.True(t, httperr.IsKind(err, httperr.KindForbidden))

	raw := e.linkToken(t)
	u, err := e.verify.Execute(ctx, raw)
	require.NoError(t, err)
	assert.True(t, u.EmailVerified)

	// second click is harmless
	_, err = e.verify.Execute(ctx, raw)
	require.NoError(t, err)

	s, err := e.login.Execute(ctx, " ANA@campus.edu ", "s3cret-pass")
	require.NoError(t, err)
	claims, err := e.tokens.Parse(s.Tokens.Access, token.KindAccess)
	require.NoError(t, err)
	assert.Equal(t, "Ana Lopez", claims.FullName)
	assert.True(t, claims.EmailVerified)
	assert.Equal(t, "STUDENT", claims.Role)
}

func TestVerify_BadTokens(t *testing.T) {
	e := newEnv("")

	_, err := e.verify.Execute(context.Background(), "garbage")
	assert.True(t, httperr.IsBusiness(err, "invalid_verification_token"))

	pair, err := e.tokens.IssuePair(token.Subject{ID: 1})
	require.NoError(t, err)
	_, err = e.verify.Execute(context.Background(), pair.Access)
	assert.True(t, httperr.IsBusiness(err, "invalid_verification_token"))
}

func TestLogin_InvalidCredentials(t *testing.T) {
	e := newEnv("")
	_, err := e.register.Execute(context.Background(), registration())
	require.NoError(t, err)

	_, err = e.login.Execute(context.Background(), "ana@campus.edu", "wrong-pass")
	assert.True(t, httperr.IsBusiness(err, "invalid_credentials"))

	_, err = e.login.Execute(context.Background(), "nobody@campus.edu", "s3cret-pass")
	assert.True(t, httperr.IsBusiness(err, "invalid_credentials"))
}

func TestResendVerification(t *testing.T) {
	e := newEnv("")
	ctx := context.Background()
	sender := NewVerificationSender(e.tokens, e.mailer, "http://localhost:3000", time.Hour)
	uc := NewResendVerification(e.repo, sender, zap.NewNop())

	require.NoError(t, uc.Execute(ctx, "unknown@campus.edu"))
	assert.Empty(t, e.mailer.sent)

	_, err := e.register.Execute(ctx, registration())
	require.NoError(t, err)
	require.NoError(t, uc.Execute(ctx, "ANA@campus.edu"))
	assert.Len(t, e.mailer.sent, 2)
}

func verifiedSession(t *testing.T, e *env) *Session {
	t.Helper()
	ctx := context.Background()
	_, err := e.register.Execute(ctx, registration())
	require.NoError(t, err)
	_, err = e.verify.Execute(ctx, e.linkToken(t))
	require.NoError(t, err)
	s, err := e.login.Execute(ctx, "ana@campus.edu", "s3cret-pass")
	require.NoError(t, err)
	return s
}

func TestRefresh_RotatesAndRevokes(t *testing.T) {
	e := newEnv("")
	s := verifiedSession(t, e)
	uc := NewRefresh(e.repo, e.tokens, e.blacklist)

	next, err := uc.Execute(context.Background(), s.Tokens.Refresh)
	require.NoError(t, err)
	assert.NotEqual(t, s.Tokens.Refresh, next.Tokens.Refresh)

	_, err = uc.Execute(context.Background(), s.Tokens.Refresh)
	assert.True(t, httperr.IsBusiness(err, "invalid_refresh_token"))

	_, err = uc.Execute(context.Background(), s.Tokens.Access)
	assert.True(t, httperr.IsBusiness(err, "invalid_refresh_token"))
}

func TestRefresh_ConcurrentReuseIssuesOneSession(t *testing.T) {
	e := newEnv("")
	s := verifiedSession(t, e)
	uc := NewRefresh(e.repo, e.tokens, e.blacklist)

	const n = 12
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		ok       int
		rejected int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Execute(context.Background(), s.Tokens.Refresh)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case httperr.IsBusiness(err, "invalid_refresh_token"):
				rejected++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, ok)
	assert.Equal(t, n-1, rejected)
}

func TestLogout(t *testing.T) {
	e := newEnv("")
	s := verifiedSession(t, e)
	logout := NewLogout(e.tokens, e.blacklist, nil)
	ctx := context.Background()

	err := logout.Execute(ctx, identity.Student(s.User.ID+1), s.Tokens.Refresh)
	assert.True(t, httperr.IsBusiness(err, "token_not_owned"))

	require.NoError(t, logout.Execute(ctx, identity.Student(s.User.ID), s.Tokens.Refresh))

	_, err = NewRefresh(e.repo, e.tokens, e.blacklist).Execute(ctx, s.Tokens.Refresh)
	assert.True(t, httperr.IsBusiness(err, "invalid_refresh_token"))
}

func TestUploadAvatar(t *testing.T) {
	e := newEnv("")
	s := verifiedSession(t, e)
	store := &memStore{objects: map[string][]byte{}}
	uc := NewUploadAvatar(e.repo, store, nil)

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 40, 30))))

	url, err := uc.Execute(context.Background(), identity.Student(s.User.ID), buf.Bytes())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "https://cdn.test/avatars/"))
	assert.Len(t, store.objects, 1)

	u, _ := e.repo.GetUserByID(context.Background(), s.User.ID)
	require.NotNil(t, u.AvatarKey)

	_, err = uc.Execute(context.Background(), identity.Student(s.User.ID), []byte("nope"))
	assert.True(t, httperr.IsBusiness(err, "avatar_unsupported"))

	off := NewUploadAvatar(e.repo, media.NewStore(config.S3Config{}), nil)
	_, err = off.Execute(context.Background(), identity.Student(s.User.ID), buf.Bytes())
	assert.True(t, httperr.IsBusiness(err, "avatar_storage_disabled"))
}
