package helpers

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
)

type SignedDetails struct {
	Email string
	Name  string
	Uid   string
	Role  string
	jwt.StandardClaims
}

// TokenMaker signs and validates HS256 staff session tokens.
type TokenMaker struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenMaker(secret string, ttl time.Duration) *TokenMaker {
	return &TokenMaker{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (m *TokenMaker) GenerateAllTokens(email, name, uid, role string) (signedToken string, refreshSignedToken string, err error) {
	expires := m.now().Add(m.ttl).Unix()
	claims := SignedDetails{
		Email: email,
		Name:  name,
		Uid:   uid,
		Role:  role,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: expires,
			IssuedAt:  m.now().Unix(),
		},
	}
	refreshClaims := SignedDetails{
		Uid: uid,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: m.now().Add(7 * m.ttl).Unix(),
		},
	}

	signedToken, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", "", err
	}
	refreshSignedToken, err = jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString(m.secret)
	if err != nil {
		return "", "", err
	}
	return signedToken, refreshSignedToken, nil
}

func (m *TokenMaker) ValidateToken(signedToken string) (*SignedDetails, error) {
	token, err := jwt.ParseWithClaims(
		signedToken,
		&SignedDetails{},
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return m.secret, nil
		},
	)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*SignedDetails)
	if !ok || !token.Valid {
		return nil, errors.New("the token is invalid")
	}
	if claims.ExpiresAt < m.now().Unix() {
		return nil, errors.New("token is expired")
	}
	if claims.Uid == "" || claims.Email == "" {
		return nil, errors.New("the token is invalid")
	}
	return claims, nil
}
