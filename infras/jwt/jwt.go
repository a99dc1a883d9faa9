package jwt

//go:generate go run go.uber.org/mock/mockgen -source=./jwt.go -destination=./mocks/jwt_mock.go -package=mocks

import (
	"errors"
	"fmt"
	"parkflow/config"
	"parkflow/shared/timezone"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const bearerScheme = "Bearer"

var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrExpiredToken   = errors.New("token has expired")
	ErrInvalidClaim   = errors.New("invalid token claim")
	ErrMissingHeader  = errors.New("authorization header is required")
	ErrMalformedToken = errors.New("authorization header must use the Bearer scheme")
)

type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"
)

// Claims identify an account. Role is one of admin, business or user.
type Claims struct {
	UserID string    `json:"user_id"`
	Email  string    `json:"email"`
	Role   string    `json:"role,omitempty"`
	Type   TokenType `json:"type"`
	jwt.RegisteredClaims
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

type JWT interface {
	GenerateTokenPair(userID, email, role string) (*TokenPair, error)
	ValidateToken(tokenString string, tokenType TokenType) (*Claims, error)
}

type signer struct {
	secret []byte
	ttl    time.Duration
}

type Service struct {
	issuer  string
	signers map[TokenType]signer
}

func New(cfg *config.Config) JWT {
	return &Service{
		issuer: cfg.App.Name,
		signers: map[TokenType]signer{
			AccessToken: {
				secret: []byte(cfg.JWT.AccessSecret),
				ttl:    time.Duration(cfg.JWT.AccessExpireMin) * time.Minute,
			},
			RefreshToken: {
				secret: []byte(cfg.JWT.RefreshSecret),
				ttl:    time.Duration(cfg.JWT.RefreshExpireMin) * time.Minute,
			},
		},
	}
}

func (s *Service) signerFor(tokenType TokenType) (signer, error) {
	sign, ok := s.signers[tokenType]
	if !ok {
		return signer{}, fmt.Errorf("unknown token type: %s", tokenType)
	}

	return sign, nil
}

func (s *Service) GenerateTokenPair(userID, email, role string) (*TokenPair, error) {
	now := timezone.Now()

	access, err := s.sign(userID, email, role, AccessToken, now)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refresh, err := s.sign(userID, email, role, RefreshToken, now)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    bearerScheme,
		ExpiresIn:    int64(s.signers[AccessToken].ttl.Seconds()),
	}, nil
}

func (s *Service) sign(userID, email, role string, tokenType TokenType, issuedAt time.Time) (string, error) {
	sign, err := s.signerFor(tokenType)
	if err != nil {
		return "", err
	}

	claims := Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		Type:   tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(sign.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(sign.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// ValidateToken checks the signature, expiry and issuer, and that the token is
// of the expected type. An access token never passes as a refresh token.
func (s *Service) ValidateToken(tokenString string, tokenType TokenType) (*Claims, error) {
	sign, err := s.signerFor(tokenType)
	if err != nil {
		return nil, err
	}

	claims := &Claims{}

	_, err = jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return sign.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
	)

	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrExpiredToken
	case err != nil:
		return nil, ErrInvalidToken
	case claims.Type != tokenType:
		return nil, ErrInvalidClaim
	}

	return claims, nil
}

// ExtractTokenFromHeader returns the token of a "Bearer <token>" header.
func ExtractTokenFromHeader(authHeader string) (string, error) {
	if authHeader == "" {
		return "", ErrMissingHeader
	}

	scheme, token, ok := strings.Cut(authHeader, " ")
	if !ok || !strings.EqualFold(scheme, bearerScheme) || strings.TrimSpace(token) == "" {
		return "", ErrMalformedToken
	}

	return strings.TrimSpace(token), nil
}
