package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrInvalidToken       = errors.New("invalid token")
)

// DefaultTokenDuration is how long a token stays valid when NewAuthService
// is called with a zero duration.
const DefaultTokenDuration = 24 * time.Hour

// tokenIssuer identifies this service as the JWT issuer, checked by
// ValidateToken's callers that care about provenance (none do yet, but
// jwt.RegisteredClaims carries it for anyone who does).
const tokenIssuer = "banana-engine"

type Claims struct {
	UserID      string `json:"userId"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	IsGuest     bool   `json:"isGuest"`
	jwt.RegisteredClaims
}

// CanPlayDoubleBananagrams reports whether these claims belong to a
// registered (non-guest) account, the gate
// `internal/middleware.GateDoubleBananagrams` uses before honoring a
// 288-tile double-Bananagrams request.
func (c *Claims) CanPlayDoubleBananagrams() bool {
	return c != nil && !c.IsGuest
}

type AuthService struct {
	jwtSecret     []byte
	tokenDuration time.Duration
}

// NewAuthService builds a token issuer/validator for jwtSecret. A zero
// tokenDuration falls back to DefaultTokenDuration.
func NewAuthService(jwtSecret string, tokenDuration time.Duration) *AuthService {
	if tokenDuration <= 0 {
		tokenDuration = DefaultTokenDuration
	}
	return &AuthService{
		jwtSecret:     []byte(jwtSecret),
		tokenDuration: tokenDuration,
	}
}

// HashPassword hashes a password using bcrypt
func (s *AuthService) HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPassword compares a password against a hash
func (s *AuthService) CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// GenerateToken creates a new JWT token for a user
func (s *AuthService) GenerateToken(userID, email, displayName string, isGuest bool) (string, error) {
	claims := &Claims{
		UserID:      userID,
		Email:       email,
		DisplayName: displayName,
		IsGuest:     isGuest,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.tokenDuration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    tokenIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// ValidateToken validates a JWT token and returns the claims
func (s *AuthService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.jwtSecret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// RefreshToken creates a new token with extended expiration
func (s *AuthService) RefreshToken(claims *Claims) (string, error) {
	return s.GenerateToken(claims.UserID, claims.Email, claims.DisplayName, claims.IsGuest)
}
