package auth

import (
	"fmt"
	"time"

	"github.com/Abraxas-365/hiretrack/pkg/kernel"
	"github.com/golang-jwt/jwt/v5"
)

const DefaultTokenTTL = 7 * 24 * time.Hour

// Principal is the identity a token is issued for
type Principal struct {
	UserID kernel.UserID
	Role   Role
	Email  kernel.Email
	Name   string
}

// Claims carries the principal so authorization needs no database lookup
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"id"`
	Role   string `json:"role"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

type TokenService interface {
	GenerateAccessToken(p Principal) (string, error)
	ValidateAccessToken(token string) (*Principal, error)
}

// JWTService signs HS256 tokens
type JWTService struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

var _ TokenService = (*JWTService)(nil)

func NewJWTService(secret string, ttl time.Duration, issuer string) *JWTService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &JWTService{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: issuer,
		now:    time.Now,
	}
}

func (s *JWTService) GenerateAccessToken(p Principal) (string, error) {
	if len(s.secret) == 0 {
		return "", ErrTokenFailed().WithDetail("reason", "empty secret")
	}
	if !p.Role.IsValid() {
		return "", ErrInvalidRole().WithDetail("role", p.Role)
	}

	now := s.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   p.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		UserID: p.UserID.String(),
		Role:   p.Role.String(),
		Email:  p.Email.String(),
		Name:   p.Name,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", ErrRegistry.NewWithCause(CodeTokenFailed, err)
	}
	return signed, nil
}

func (s *JWTService) ValidateAccessToken(tokenString string) (*Principal, error) {
	if len(s.secret) == 0 {
		return nil, ErrInvalidToken().WithDetail("reason", "empty secret")
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, ErrRegistry.NewWithCause(CodeInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken()
	}

	role := Role(claims.Role)
	if !role.IsValid() || claims.UserID == "" {
		return nil, ErrInvalidToken().WithDetail("reason", "malformed claims")
	}

	return &Principal{
		UserID: kernel.NewUserID(claims.UserID),
		Role:   role,
		Email:  kernel.Email(claims.Email),
		Name:   claims.Name,
	}, nil
}
