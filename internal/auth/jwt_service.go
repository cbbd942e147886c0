package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	// AccessTokenExpiry is the duration for which access tokens are valid.
	AccessTokenExpiry = 15 * time.Minute
	// RefreshTokenExpiry is the duration for which refresh tokens are valid.
	RefreshTokenExpiry = 7 * 24 * time.Hour
)

// Token uses carried in the typ claim.
const (
	TokenUseAccess  = "access"
	TokenUseRefresh = "refresh"
)

// ErrWrongTokenUse is returned when a token is presented for the other use.
var ErrWrongTokenUse = errors.New("token used for the wrong purpose")

// Claims carried by both access and refresh tokens. RegisteredClaims.ID is
// the token id used for refresh storage and access revocation.
type Claims struct {
	UserID   uint   `json:"userId"`
	Username string `json:"username"`
	Role     string `json:"role"`
	TokenUse string `json:"typ"`
	jwt.RegisteredClaims
}

// Subject identifies the user a token is issued to.
type Subject struct {
	UserID   uint
	Username string
	Role     string
}

// JWTService handles JWT token generation and validation.
type JWTService struct {
	secret []byte
	now    func() time.Time
}

// NewJWTService creates a new JWT service with the given secret.
func NewJWTService(secret string) *JWTService {
	return &JWTService{
		secret: []byte(secret),
		now:    time.Now,
	}
}

// Secret exposes the signing key for the echo-jwt middleware.
func (s *JWTService) Secret() []byte {
	return s.secret
}

// GenerateAccessToken returns a signed access token and its id.
func (s *JWTService) GenerateAccessToken(sub Subject) (tokenID, token string, err error) {
	return s.sign(sub, TokenUseAccess, AccessTokenExpiry)
}

// GenerateRefreshToken returns a signed refresh token and its id.
// The id is what gets stored in Redis.
func (s *JWTService) GenerateRefreshToken(sub Subject) (tokenID, token string, err error) {
	return s.sign(sub, TokenUseRefresh, RefreshTokenExpiry)
}

func (s *JWTService) sign(sub Subject, use string, ttl time.Duration) (string, string, error) {
	now := s.now()
	tokenID := uuid.New().String()
	claims := &Claims{
		UserID:   sub.UserID,
		Username: sub.Username,
		Role:     sub.Role,
		TokenUse: use,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			Subject:   sub.Username,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", "", err
	}
	return tokenID, token, nil
}

// ValidateToken validates a JWT token and returns the claims.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.ID == "" {
		return nil, errors.New("token ID not found")
	}
	return claims, nil
}

// ValidateAccessToken validates a token and requires it to be an access token.
func (s *JWTService) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.validateUse(tokenString, TokenUseAccess)
}

// ValidateRefreshToken validates a token and requires it to be a refresh token.
func (s *JWTService) ValidateRefreshToken(tokenString string) (*Claims, error) {
	return s.validateUse(tokenString, TokenUseRefresh)
}

func (s *JWTService) validateUse(tokenString, use string) (*Claims, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.TokenUse != use {
		return nil, ErrWrongTokenUse
	}
	return claims, nil
}

// IsAccess reports whether the claims belong to an access token.
func (c *Claims) IsAccess() bool {
	return c.TokenUse == TokenUseAccess
}

// RemainingTTL is how long the token stays valid, never negative.
func (s *JWTService) RemainingTTL(claims *Claims) time.Duration {
	if claims.ExpiresAt == nil {
		return 0
	}
	ttl := claims.ExpiresAt.Time.Sub(s.now())
	if ttl < 0 {
		return 0
	}
	return ttl
}
