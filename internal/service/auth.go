package service

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/monohq/mono/internal/model"
	"github.com/monohq/mono/internal/repository"
	"github.com/monohq/mono/internal/validation"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrEmailAlreadyExists  = errors.New("user already exists")
	ErrInvalidToken        = errors.New("invalid token")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
)

const (
	CookieAccessToken  = "accessToken"
	CookieRefreshToken = "refreshToken"
)

// TokenPair holds one freshly signed access/refresh token pair.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type AuthService struct {
	userRepository repository.UserRepository
	jwtSecret      string
	accessExpiry   time.Duration
	refreshExpiry  time.Duration
	isProduction   bool
}

func NewAuthService(
	userRepository repository.UserRepository,
	jwtSecret string,
	accessExpiry time.Duration,
	refreshExpiry time.Duration,
	isProduction bool,
) *AuthService {
	return &AuthService{
		userRepository: userRepository,
		jwtSecret:      jwtSecret,
		accessExpiry:   accessExpiry,
		refreshExpiry:  refreshExpiry,
		isProduction:   isProduction,
	}
}

// SignUp registers a new user and opens a session for it.
func (s *AuthService) SignUp(email, username, password string) (*model.User, *TokenPair, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	if err := validation.ValidateEmail(email); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	if err := validation.ValidateUsername(username); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	// Fast path; the unique index on users.email is authoritative.
	_, err := s.userRepository.ByEmail(email)
	if err == nil {
		return nil, nil, ErrEmailAlreadyExists
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, nil, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := s.HashPassword(password)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &model.User{
		ID:        uuid.New().String(),
		Username:  username,
		Email:     email,
		Password:  hash,
		Role:      model.RoleUser,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.userRepository.Create(user)
	if errors.Is(err, repository.ErrDuplicateEmail) {
		return nil, nil, ErrEmailAlreadyExists
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create user: %w", err)
	}

	pair, err := s.openSession(user)
	if err != nil {
		return nil, nil, err
	}

	return user, pair, nil
}

// SignIn checks credentials and opens a session.
func (s *AuthService) SignIn(email, password string) (*model.User, *TokenPair, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.userRepository.ByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("failed to get user: %w", err)
	}

	err = s.ComparePassword(password, user.Password)
	if err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	pair, err := s.openSession(user)
	if err != nil {
		return nil, nil, err
	}

	return user, pair, nil
}

// Refresh validates a refresh token and issues a new pair.
// Validation is signature and expiry only; the token is not compared against
// the stored refresh_token, so an older unexpired token remains usable after
// a newer one was issued.
func (s *AuthService) Refresh(refreshToken string) (*model.User, *TokenPair, error) {
	subject, err := s.VerifyToken(refreshToken)
	if err != nil {
		return nil, nil, ErrInvalidRefreshToken
	}

	user, err := s.userRepository.ByID(subject)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, nil, ErrInvalidRefreshToken
		}
		return nil, nil, fmt.Errorf("failed to get user: %w", err)
	}

	pair, err := s.openSession(user)
	if err != nil {
		return nil, nil, err
	}

	return user, pair, nil
}

// SignOut drops the stored refresh token and marks the user offline.
func (s *AuthService) SignOut(userID string) error {
	return s.userRepository.UpdateSession(userID, nil, false)
}

// openSession issues a token pair and records it on the user row, overwriting
// any previously issued refresh token.
func (s *AuthService) openSession(user *model.User) (*TokenPair, error) {
	pair, err := s.IssueTokens(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}

	err = s.userRepository.UpdateSession(user.ID, &pair.RefreshToken, true)
	if err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}
	user.RefreshToken = &pair.RefreshToken
	user.IsOnline = true

	return pair, nil
}

// IssueTokens signs a new access/refresh pair for the given subject.
func (s *AuthService) IssueTokens(userID string) (*TokenPair, error) {
	access, err := s.signToken(userID, s.accessExpiry)
	if err != nil {
		return nil, err
	}

	refresh, err := s.signToken(userID, s.refreshExpiry)
	if err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *AuthService) signToken(subject string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// VerifyToken checks signature and expiry and returns the subject claim.
// Fails closed: any parse or validation error is reported as ErrInvalidToken.
func (s *AuthService) VerifyToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	subject, err := token.Claims.GetSubject()
	if err != nil || subject == "" {
		return "", ErrInvalidToken
	}

	return subject, nil
}

func (s *AuthService) HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

func (s *AuthService) ComparePassword(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// SetSessionCookies writes the token pair to the response. The access cookie
// is SameSite=None for cross-site front-ends (browsers require Secure with
// None); the refresh cookie is SameSite=Lax scoped to /.
func (s *AuthService) SetSessionCookies(w http.ResponseWriter, pair *TokenPair) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieAccessToken,
		Value:    pair.AccessToken,
		MaxAge:   int(s.accessExpiry.Seconds()),
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     CookieRefreshToken,
		Value:    pair.RefreshToken,
		MaxAge:   int(s.refreshExpiry.Seconds()),
		Path:     "/",
		HttpOnly: true,
		Secure:   s.isProduction,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *AuthService) ClearSessionCookies(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieAccessToken,
		Value:    "",
		Expires:  time.Unix(0, 0),
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     CookieRefreshToken,
		Value:    "",
		Expires:  time.Unix(0, 0),
		Path:     "/",
		HttpOnly: true,
		Secure:   s.isProduction,
		SameSite: http.SameSiteLaxMode,
	})
}
