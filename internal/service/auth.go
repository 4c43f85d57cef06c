package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"github.com/talkincode/toughstore/internal/domain"
	"github.com/talkincode/toughstore/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ErrInvalidCredentials is deliberately the same for unknown user and
// wrong password.
var ErrInvalidCredentials = errors.New("invalid username or password")

const tokenLifetime = 24 * time.Hour

// Identity is the authenticated principal carried in a token.
type Identity struct {
	UserId   int64    `json:"user_id,string"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles"`
}

// AuthService checks credentials and issues/verifies HS256 tokens.
// Catalog and order services trust the identity it produces and do no
// authentication of their own.
type AuthService struct {
	db     *gorm.DB
	secret string
	issuer string
}

func NewAuthService(db *gorm.DB, secret, issuer string) *AuthService {
	return &AuthService{db: db, secret: secret, issuer: issuer}
}

// Authenticate verifies the username and password of an active user.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	uow := repository.NewUnitOfWork(s.db)
	user, err := uow.Users.First(ctx, "username = ? AND is_active = ?", username, true)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	user.LastLogin = time.Now()
	_ = uow.Users.Update(ctx, user)
	return user, nil
}

// IssueToken signs a 24h HS256 token for the identity.
func (s *AuthService) IssueToken(ident Identity) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      cast.ToString(ident.UserId),
		"username": ident.Username,
		"email":    ident.Email,
		"roles":    ident.Roles,
		"iss":      s.issuer,
		"iat":      now.Unix(),
		"exp":      now.Add(tokenLifetime).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", errors.Wrap(err, "auth: sign token")
	}
	return signed, nil
}

// VerifyToken parses and validates a token, returning the identity it
// carries.
func (s *AuthService) VerifyToken(tokenString string) (*Identity, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.secret), nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "auth: parse token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("auth: invalid token")
	}

	ident := &Identity{
		UserId:   cast.ToInt64(claims["sub"]),
		Username: cast.ToString(claims["username"]),
		Email:    cast.ToString(claims["email"]),
	}
	if roles, ok := claims["roles"].([]interface{}); ok {
		for _, r := range roles {
			ident.Roles = append(ident.Roles, cast.ToString(r))
		}
	}
	return ident, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	uow := repository.NewUnitOfWork(s.db)
	user, err := uow.Users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return NotFoundf("user with id %d not found", userID)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(currentPassword)); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hash)
	user.UpdatedAt = time.Now()
	return uow.Users.Update(ctx, user)
}
