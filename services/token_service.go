package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const accessTokenType = "access"

// TokenClaims are the identity fields carried by a session token.
type TokenClaims struct {
	UserID    string
	Email     string
	Name      string
	Role      string
	ExpiresAt time.Time
}

// TokenService is responsible for creating and validating JWTs.
type TokenService struct {
	secretKey []byte
	ttl       time.Duration
	now       func() time.Time
}

// NewTokenService returns a TokenService signing with secret. The secret is
// validated by config.Load; an empty one is rejected here as well.
func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, fmt.Errorf("token signing secret is not configured")
	}
	return &TokenService{secretKey: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// GenerateToken issues a signed access token for the given identity.
func (s *TokenService) GenerateToken(userID, email, name, role string) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"name":  name,
		"role":  role,
		"typ":   accessTokenType,
		"exp":   now.Add(s.ttl).Unix(),
		"iat":   now.Unix(),
		"jti":   uuid.NewString(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

// ValidateToken parses and validates a token string, checking the signature,
// the expiry and the token type.
func (s *TokenService) ValidateToken(tokenStr string) (*TokenClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	})
	if err != nil || token == nil || !token.Valid {
		return nil, fmt.Errorf("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}
	if typ, ok := claims["typ"].(string); !ok || typ != accessTokenType {
		return nil, fmt.Errorf("invalid token type")
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, fmt.Errorf("invalid token: subject claim is missing")
	}

	out := &TokenClaims{UserID: sub}
	out.Email, _ = claims["email"].(string)
	out.Name, _ = claims["name"].(string)
	out.Role, _ = claims["role"].(string)
	if exp, ok := claims["exp"].(float64); ok {
		out.ExpiresAt = time.Unix(int64(exp), 0)
	}
	return out, nil
}
