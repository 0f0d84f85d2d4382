package session

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// CookieName is the name of the gateway's session cookie.
const CookieName = "hotel_front_session"

// CookieManager issues and validates the signed session cookie. The cookie
// value is a compact JWT carrying only the session ID; signing it keeps
// visitors from forging their way into someone else's stored credentials.
type CookieManager struct {
	secret []byte
	ttl    time.Duration
}

// NewCookieManager builds a new manager. The TTL should match the
// credential lifetime so the cookie never outlives what it points at.
func NewCookieManager(secret string, ttl time.Duration) *CookieManager {
	if ttl <= 0 {
		ttl = 5 * time.Hour
	}
	return &CookieManager{secret: []byte(secret), ttl: ttl}
}

type cookieClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// Issue mints a fresh session ID and the signed cookie value carrying it.
func (cm *CookieManager) Issue() (sessionID, value string, expiresAt time.Time, err error) {
	sessionID = uuid.NewString()
	value, expiresAt, err = cm.IssueFor(sessionID)
	if err != nil {
		return "", "", time.Time{}, err
	}
	return sessionID, value, expiresAt, nil
}

// IssueFor signs a cookie value for an existing session ID, restarting its
// lifetime. Used at login time so the cookie cannot expire before the
// credential stored alongside it.
func (cm *CookieManager) IssueFor(sessionID string) (value string, expiresAt time.Time, err error) {
	expiresAt = time.Now().Add(cm.ttl)
	claims := &cookieClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	value, err = token.SignedString(cm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return value, expiresAt, nil
}

// Parse validates a cookie value and returns the session ID it carries.
func (cm *CookieManager) Parse(value string) (string, error) {
	parsed, err := jwt.ParseWithClaims(value, &cookieClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return cm.secret, nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := parsed.Claims.(*cookieClaims)
	if !ok || !parsed.Valid || claims.SessionID == "" {
		return "", errors.New("invalid session cookie")
	}
	return claims.SessionID, nil
}
