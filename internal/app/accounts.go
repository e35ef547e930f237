package app

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"hotel_booking/internal/domain"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

type TokenIssuer interface {
	Issue(p domain.Principal) (token string, expiresAt time.Time, err error)
}

type Session struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
	User      domain.User `json:"user"`
}

var (
	errEmailTaken = &domain.ValidationError{Kind: domain.ErrEmailTaken, Message: "this email is already registered"}
	errBadLogin   = &domain.ValidationError{Kind: domain.ErrInvalidCredentials, Message: "invalid email or password"}
)

// AccountService is the local authentication collaborator: sign-up, sign-in,
// password reset requests and the user profile.
type AccountService struct {
	store  domain.DocumentStore
	hasher PasswordHasher
	tokens TokenIssuer
	events domain.EventPublisher
	now    func() time.Time
}

func NewAccountService(store domain.DocumentStore, h PasswordHasher, t TokenIssuer, events domain.EventPublisher, now func() time.Time) *AccountService {
	if now == nil {
		now = time.Now
	}
	return &AccountService{store: store, hasher: h, tokens: t, events: events, now: now}
}

func (s *AccountService) SignUp(ctx context.Context, email, password, name string) (Session, error) {
	email = domain.NormalizeEmail(email)
	if err := errors.Join(domain.ValidateEmail(email), domain.ValidatePassword(password), domain.ValidateName(name)); err != nil {
		return Session{}, firstError(err)
	}
	if _, found, err := s.byEmail(ctx, email); err != nil {
		return Session{}, err
	} else if found {
		return Session{}, errEmailTaken
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return Session{}, err
	}
	u := domain.User{
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: hash,
		CreatedAt:    s.now(),
	}
	id, err := s.store.Create(ctx, domain.CollectionUsers, u)
	if errors.Is(err, domain.ErrEmailTaken) {
		return Session{}, errEmailTaken
	}
	if err != nil {
		return Session{}, domain.Persistence("create user", err)
	}
	u.ID = id
	log.Info().Str("user_id", id).Msg("user signed up")
	return s.session(u)
}

func (s *AccountService) SignIn(ctx context.Context, email, password string) (Session, error) {
	u, found, err := s.byEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		return Session{}, err
	}
	if !found || s.hasher.Compare(u.PasswordHash, password) != nil {
		return Session{}, errBadLogin
	}
	return s.session(u)
}

// RequestPasswordReset accepts any well-formed email and only emits the reset
// event when an account exists, so callers cannot probe for accounts.
func (s *AccountService) RequestPasswordReset(ctx context.Context, email string) error {
	email = domain.NormalizeEmail(email)
	if err := domain.ValidateEmail(email); err != nil {
		return err
	}
	u, found, err := s.byEmail(ctx, email)
	if err != nil {
		return err
	}
	if found {
		publish(ctx, s.events, domain.TopicPasswordResetRequested, u.ID, map[string]any{
			"userId":      u.ID,
			"email":       u.Email,
			"requestedAt": s.now().UTC(),
		})
	}
	return nil
}

func (s *AccountService) Profile(ctx context.Context, p domain.Principal) (domain.User, error) {
	var u domain.User
	if err := s.store.Get(ctx, domain.CollectionUsers, p.UserID, &u); err != nil {
		return domain.User{}, domain.Persistence("get user", err)
	}
	u.ID = p.UserID
	return u, nil
}

func (s *AccountService) UpdateName(ctx context.Context, p domain.Principal, name string) (domain.User, error) {
	if err := domain.ValidateName(name); err != nil {
		return domain.User{}, err
	}
	if err := s.store.Update(ctx, domain.CollectionUsers, p.UserID, map[string]any{"name": strings.TrimSpace(name)}); err != nil {
		return domain.User{}, domain.Persistence("update user", err)
	}
	return s.Profile(ctx, p)
}

func (s *AccountService) CompleteOnboarding(ctx context.Context, p domain.Principal) (domain.User, error) {
	if err := s.store.Update(ctx, domain.CollectionUsers, p.UserID, map[string]any{"hasCompletedOnboarding": true}); err != nil {
		return domain.User{}, domain.Persistence("complete onboarding", err)
	}
	return s.Profile(ctx, p)
}

func (s *AccountService) byEmail(ctx context.Context, email string) (domain.User, bool, error) {
	var us []domain.User
	if err := s.store.Query(ctx, domain.CollectionUsers, []domain.Filter{domain.Eq("email", email)}, &us); err != nil {
		return domain.User{}, false, domain.Persistence("find user", err)
	}
	if len(us) == 0 {
		return domain.User{}, false, nil
	}
	return us[0], true, nil
}

func (s *AccountService) session(u domain.User) (Session, error) {
	tok, exp, err := s.tokens.Issue(u.Principal())
	if err != nil {
		return Session{}, err
	}
	return Session{Token: tok, ExpiresAt: exp, User: u}, nil
}

// firstError unwraps an errors.Join result to its first member so the
// caller sees one message at a time, in field order.
func firstError(err error) error {
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		if errs := j.Unwrap(); len(errs) > 0 {
			return errs[0]
		}
	}
	return err
}
