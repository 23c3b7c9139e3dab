package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrTokenExpired     = errors.New("token expired")
	ErrInvalidTokenType = errors.New("invalid token type")
)

// Service issues and verifies the tokens that carry a Session. Accounts and
// passwords live in the managed identity provider, not here.
type Service interface {
	IssueTokenPair(session Session) (*TokenPair, error)
	ParseAccessToken(tokenString string) (*Session, error)
	Refresh(refreshToken string) (*TokenPair, error)
}

type service struct {
	secret     []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewService creates a token service signing with HS256
func NewService(secret, issuer string, accessTTL, refreshTTL time.Duration) Service {
	return &service{
		secret:     []byte(secret),
		issuer:     issuer,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

func (s *service) IssueTokenPair(session Session) (*TokenPair, error) {
	if session.UserID == uuid.Nil {
		return nil, fmt.Errorf("issue token: %w", ErrInvalidToken)
	}
	access, err := s.sign(session, TokenTypeAccess, s.accessTTL)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}
	refresh, err := s.sign(session, TokenTypeRefresh, s.refreshTTL)
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}
	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.accessTTL.Seconds()),
	}, nil
}

func (s *service) ParseAccessToken(tokenString string) (*Session, error) {
	return s.parse(tokenString, TokenTypeAccess)
}

func (s *service) Refresh(refreshToken string) (*TokenPair, error) {
	session, err := s.parse(refreshToken, TokenTypeRefresh)
	if err != nil {
		return nil, err
	}
	return s.IssueTokenPair(*session)
}

func (s *service) sign(session Session, tokenType string, ttl time.Duration) (string, error) {
	now := s.now()
	claims := JWTClaims{
		UserID: session.UserID.String(),
		Email:  session.Email,
		Role:   string(session.Role),
		Type:   tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Issuer:    s.issuer,
			Subject:   session.UserID.String(),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *service) parse(tokenString, wantType string) (*Session, error) {
	claims := &JWTClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil {
		var validationErr *jwt.ValidationError
		if errors.As(err, &validationErr) && validationErr.Errors&jwt.ValidationErrorExpired != 0 {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Type != wantType {
		return nil, ErrInvalidTokenType
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, ErrInvalidToken
	}
	role := Role(claims.Role)
	if !role.IsValid() {
		return nil, ErrInvalidToken
	}
	return &Session{UserID: userID, Email: claims.Email, Role: role}, nil
}
