package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"coverapi/internal/apperror"
	"coverapi/internal/auth"
	"coverapi/internal/cache"
	"coverapi/internal/model"
	"coverapi/internal/repository"
)

const (
	msgBadCredentials = "Email ou mot de passe incorrect"
	msgInvalidToken   = "Token invalide ou expiré"
	msgEmailTaken     = "Un utilisateur avec cet email existe déjà"
)

// Provider auth actions accepted on the provider-compatible endpoint.
const (
	ActionSignUp = "signup"
	ActionSignIn = "signin"
)

// RegisterInput is a new account request.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// Session is a signed-in user and its access token.
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      *model.User
}

// ProviderToken is the session block of a provider-shaped auth payload.
type ProviderToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	ExpiresAt   int64  `json:"expires_at"`
}

// ProviderSession is the payload returned by the provider-compatible auth endpoint.
type ProviderSession struct {
	User    *model.User   `json:"user"`
	Session ProviderToken `json:"session"`
}

// ProviderAuthInput carries a signup or signin request.
type ProviderAuthInput struct {
	Action    string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// AuthService defines the account and session use cases.
type AuthService interface {
	// Login returns a session when email and password match a stored account.
	Login(ctx context.Context, email, password string) (*Session, error)
	// Register creates an account. Profile creation afterwards is best-effort.
	Register(ctx context.Context, in RegisterInput) (*model.User, error)
	ProviderAuth(ctx context.Context, in ProviderAuthInput) (*ProviderSession, error)
	// VerifyToken returns the user a valid token belongs to.
	VerifyToken(ctx context.Context, token string) (*model.User, error)
	Logout(ctx context.Context, token string) error
	// Me returns the profile of userID, read through the cache.
	Me(ctx context.Context, userID string) (*model.Profile, error)
}

type authService struct {
	users     repository.UserRepository
	passwords PasswordHasher
	tokens    TokenManager
	cache     cache.Cache
	log       logrus.FieldLogger
	now       func() time.Time
}

func NewAuthService(users repository.UserRepository, passwords PasswordHasher, tokens TokenManager, c cache.Cache, log logrus.FieldLogger) AuthService {
	return &authService{
		users:     users,
		passwords: passwords,
		tokens:    tokens,
		cache:     c,
		log:       log,
		now:       time.Now,
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (*Session, error) {
	u, err := s.users.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.Auth(msgBadCredentials)
		}
		return nil, apperror.Persistence("login", err)
	}
	if !s.passwords.Verify(password, u.PasswordHash) {
		return nil, apperror.Auth(msgBadCredentials)
	}

	token, exp, err := s.tokens.Issue(u)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	if err := s.users.TouchLastLogin(ctx, u.ID, now); err != nil {
		s.log.WithError(err).WithField("user_id", u.ID).Warn("update last login failed")
	} else {
		u.LastLoginAt = &now
	}
	return &Session{Token: token, ExpiresAt: exp, User: u}, nil
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	hash, err := s.passwords.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	u, err := s.users.Create(ctx, &model.User{
		ID:           uuid.New().String(),
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Role:         model.DefaultUserRole,
		CreatedAt:    s.now().UTC(),
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.Validation("email", msgEmailTaken)
		}
		return nil, apperror.Persistence("register", err)
	}

	displayName := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if err := s.users.CreateProfile(ctx, u.ID, displayName); err != nil {
		s.log.WithError(err).WithField("user_id", u.ID).Warn("profile creation failed after signup")
	}
	return u, nil
}

func (s *authService) ProviderAuth(ctx context.Context, in ProviderAuthInput) (*ProviderSession, error) {
	var (
		sess *Session
		err  error
	)
	switch in.Action {
	case ActionSignUp:
		var u *model.User
		u, err = s.Register(ctx, RegisterInput{
			FirstName: in.FirstName,
			LastName:  in.LastName,
			Email:     in.Email,
			Password:  in.Password,
		})
		if err != nil {
			return nil, err
		}
		sess, err = s.issue(u)
	case ActionSignIn:
		sess, err = s.Login(ctx, in.Email, in.Password)
	default:
		return nil, apperror.Validation("action", "Action non supportée")
	}
	if err != nil {
		return nil, err
	}

	return &ProviderSession{
		User: sess.User,
		Session: ProviderToken{
			AccessToken: sess.Token,
			TokenType:   "bearer",
			ExpiresIn:   int64(sess.ExpiresAt.Sub(s.now()).Seconds()),
			ExpiresAt:   sess.ExpiresAt.Unix(),
		},
	}, nil
}

func (s *authService) issue(u *model.User) (*Session, error) {
	token, exp, err := s.tokens.Issue(u)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, ExpiresAt: exp, User: u}, nil
}

func (s *authService) VerifyToken(ctx context.Context, token string) (*model.User, error) {
	claims, err := s.verify(ctx, token)
	if err != nil {
		return nil, err
	}
	u, err := s.users.FindByID(ctx, claims.UserID())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.Auth(msgInvalidToken)
		}
		return nil, apperror.Persistence("verify token", err)
	}
	return u, nil
}

func (s *authService) verify(ctx context.Context, token string) (*auth.Claims, error) {
	if token == "" {
		return nil, apperror.Validation("token", "Token requis")
	}
	claims, err := s.tokens.Verify(ctx, token)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidToken) || errors.Is(err, auth.ErrRevokedToken) {
			return nil, apperror.Auth(msgInvalidToken)
		}
		return nil, apperror.Persistence("verify token", err)
	}
	return claims, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	if err := s.tokens.Revoke(ctx, token); err != nil {
		if errors.Is(err, auth.ErrInvalidToken) {
			return apperror.Auth(msgInvalidToken)
		}
		return apperror.Persistence("logout", err)
	}
	return nil
}

func (s *authService) Me(ctx context.Context, userID string) (*model.Profile, error) {
	key := cache.ProfileKey(userID)

	var cached model.Profile
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		s.log.WithError(err).WithField("user_id", userID).Warn("profile cache read failed")
	}
	if found {
		return &cached, nil
	}

	p, err := s.users.FindProfile(ctx, userID)
	if err != nil {
		return nil, persistenceOrNotFound(err, "Profil non trouvé", "load profile")
	}
	if err := s.cache.Set(ctx, key, p, resultTTL); err != nil {
		s.log.WithError(err).WithField("user_id", userID).Warn("profile cache write failed")
	}
	return p, nil
}
