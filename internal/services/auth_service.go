package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"dealerpos/internal/domain"
	"dealerpos/internal/domain/models"
	"dealerpos/internal/utils"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials covers unknown users, wrong passwords and disabled
// accounts alike.
var ErrInvalidCredentials = errors.New("invalid username or password")

const minPasswordLen = 8

type UserStore interface {
	GetByUsername(ctx context.Context, username string) (models.User, error)
	Create(ctx context.Context, u models.User) (int64, error)
}

// Claims is the JWT payload issued at login.
type Claims struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type AuthService struct {
	Users  UserStore
	Secret []byte
	TTL    time.Duration
	Now    func() time.Time
}

func (s AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Login checks the password and returns a signed token.
func (s AuthService) Login(ctx context.Context, username, password string) (string, models.PublicUser, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", models.PublicUser{}, ErrInvalidCredentials
	}
	u, err := s.Users.GetByUsername(ctx, username)
	if err != nil {
		if domain.IsNotFound(err) {
			return "", models.PublicUser{}, ErrInvalidCredentials
		}
		return "", models.PublicUser{}, err
	}
	if !u.Active() {
		return "", models.PublicUser{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", models.PublicUser{}, ErrInvalidCredentials
	}

	ttl := s.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	now := s.now()
	claims := Claims{
		UserID:   u.ID,
		Username: u.Username,
		Role:     u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", u.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
	if err != nil {
		return "", models.PublicUser{}, fmt.Errorf("sign token: %w", err)
	}
	utils.LogEvent(utils.RequestIDFrom(ctx), "auth", "login", "user_id="+claims.Subject)
	return token, u.ToPublic(), nil
}

// ParseToken validates signature and expiry.
func (s AuthService) ParseToken(token string) (Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return Claims{}, err
	}
	return claims, nil
}

// CreateUser registers a staff account.
func (s AuthService) CreateUser(ctx context.Context, name, username, password, role string) (models.PublicUser, error) {
	name = strings.TrimSpace(name)
	username = strings.TrimSpace(username)
	switch {
	case username == "":
		return models.PublicUser{}, domain.ValidationError{Field: "username", Msg: "username is required"}
	case len(password) < minPasswordLen:
		return models.PublicUser{}, domain.ValidationError{Field: "password", Msg: fmt.Sprintf("password must be at least %d characters", minPasswordLen)}
	case role != models.RoleAdmin && role != models.RoleSales:
		return models.PublicUser{}, domain.ValidationError{Field: "role", Msg: "role must be admin or sales"}
	}
	if name == "" {
		name = username
	}

	if _, err := s.Users.GetByUsername(ctx, username); err == nil {
		return models.PublicUser{}, domain.ConflictError{Resource: "user", Msg: username + " already exists"}
	} else if !domain.IsNotFound(err) {
		return models.PublicUser{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.PublicUser{}, fmt.Errorf("hash password: %w", err)
	}
	u := models.User{Name: name, Username: username, PasswordHash: string(hash), Role: role, Status: "active"}
	id, err := s.Users.Create(ctx, u)
	if err != nil {
		return models.PublicUser{}, err
	}
	u.ID = id
	utils.LogEvent(utils.RequestIDFrom(ctx), "auth", "create_user", fmt.Sprintf("user_id=%d role=%s", id, role))
	return u.ToPublic(), nil
}

// EnsureAdmin creates the bootstrap admin when it does not exist yet.
// An empty username disables bootstrapping.
func (s AuthService) EnsureAdmin(ctx context.Context, username, password string) error {
	if strings.TrimSpace(username) == "" {
		return nil
	}
	_, err := s.CreateUser(ctx, "Administrator", username, password, models.RoleAdmin)
	if domain.IsConflict(err) {
		return nil
	}
	return err
}
