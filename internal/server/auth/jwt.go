package auth

import (
	"errors"
	"time"

	"github.com/ansuman15/salon-software-sub002/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Session is the blob carried by the session cookie.
type Session struct {
	SalonID   string `json:"salonId,omitempty"`
	SalonName string `json:"salonName,omitempty"`
	Role      string `json:"role"`
}

// IsAdmin reports whether the session belongs to the platform operator.
func (s Session) IsAdmin() bool { return s.Role == common.RoleAdmin }

// Claims wraps the session with the registered expiry claims.
type Claims struct {
	jwt.RegisteredClaims
	Session
}

func GenerateToken(s Session, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   s.SalonID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		Session: s,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken verifies the signature and expiry and returns the session.
// Tokens signed with anything other than HS256 are rejected.
func ParseToken(tokenString string, secretKey []byte) (*Session, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	switch claims.Role {
	case common.RoleAdmin:
	case common.RoleSalon:
		if claims.SalonID == "" {
			return nil, common.ErrInvalidToken
		}
	default:
		return nil, common.ErrInvalidToken
	}

	return &claims.Session, nil
}
