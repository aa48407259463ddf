package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"
)

var ErrInvalidToken = errors.New("Invalid or expired token")

// Claims is the identity carried by a verified token.
type Claims struct {
	UserID uint
	Email  string
	Type   TokenType
}

type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// TokenIssuer signs and verifies HS256 tokens.
type TokenIssuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewTokenIssuer(secret string, accessTTL, refreshTTL time.Duration) (*TokenIssuer, error) {
	if secret == "" {
		return nil, fmt.Errorf("JWT secret is not set")
	}

	return &TokenIssuer{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}, nil
}

func (t *TokenIssuer) Generate(userID uint, email string, typ TokenType) (string, error) {
	ttl := t.accessTTL
	if typ == RefreshToken {
		ttl = t.refreshTTL
	}

	claims := jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"typ":     string(typ),
		"iat":     t.now().Unix(),
		"exp":     t.now().Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

func (t *TokenIssuer) GeneratePair(userID uint, email string) (TokenPair, error) {
	access, err := t.Generate(userID, email, AccessToken)
	if err != nil {
		return TokenPair{}, err
	}

	refresh, err := t.Generate(userID, email, RefreshToken)
	if err != nil {
		return TokenPair{}, err
	}

	return TokenPair{Access: access, Refresh: refresh}, nil
}

// Verify checks the signature, expiry and token type.
func (t *TokenIssuer) Verify(tokenString string, want TokenType) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(t.now))

	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	userIDFloat, ok := claims["user_id"].(float64)
	if !ok || userIDFloat <= 0 {
		return nil, ErrInvalidToken
	}

	typ, _ := claims["typ"].(string)
	if TokenType(typ) != want {
		return nil, ErrInvalidToken
	}

	email, _ := claims["email"].(string)

	return &Claims{
		UserID: uint(userIDFloat),
		Email:  email,
		Type:   TokenType(typ),
	}, nil
}
