package qkart

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/talkincode/qkart/internal/domain"
)

const TokenTypeAccess = "access"

var ErrInvalidToken = errors.New("invalid token")

// TokenClaims is the signed identity payload: subject id, token type
// and the standard issue/expiry timestamps
type TokenClaims struct {
	Type string `json:"type"`
	jwt.RegisteredClaims
}

// TokenInfo pairs a signed token with its human-readable expiry
type TokenInfo struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}

// AuthTokens is the token envelope returned by register and login
type AuthTokens struct {
	Access TokenInfo `json:"access"`
}

// TokenService issues and validates HS256 identity tokens
type TokenService struct {
	secret       []byte
	accessExpiry time.Duration
}

func NewTokenService(secret string, accessExpiry time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), accessExpiry: accessExpiry}
}

// GenerateToken signs a token for the subject with an absolute expiry
func (s *TokenService) GenerateToken(userID int64, tokenType string, expiresAt time.Time) (string, error) {
	claims := TokenClaims{
		Type: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// GenerateAuthTokens issues the access token envelope for a user
func (s *TokenService) GenerateAuthTokens(user *domain.User) (*AuthTokens, error) {
	expiresAt := time.Now().Add(s.accessExpiry)
	token, err := s.GenerateToken(user.ID, TokenTypeAccess, expiresAt)
	if err != nil {
		return nil, err
	}
	return &AuthTokens{Access: TokenInfo{Token: token, Expires: expiresAt}}, nil
}

// ParseToken validates a signed token and returns its claims
func (s *TokenService) ParseToken(tokenString string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Secret exposes the signing key for the HTTP JWT middleware
func (s *TokenService) Secret() []byte {
	return s.secret
}

// SubjectID parses the claim subject back into a user id
func (c *TokenClaims) SubjectID() (int64, error) {
	return strconv.ParseInt(c.Subject, 10, 64)
}
