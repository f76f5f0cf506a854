package config

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// The session token is split in two cookies: the header and claims stay
// readable by scripts, the signature is HttpOnly.
const (
	claimsCookie    = "auth"
	signatureCookie = "sign"
)

type Cookies struct {
	Domain   string
	Secure   bool
	SameSite http.SameSite
	jwt      *JWT
}

// UserClaims identify the uploader a session belongs to.
type UserClaims struct {
	UserId   int64  `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

func NewUserClaims(userId int64, username string) *UserClaims {
	return &UserClaims{
		UserId:   userId,
		Username: username,
	}
}

var sameSiteModes = map[string]http.SameSite{
	"DEFAULT": http.SameSiteDefaultMode,
	"LAX":     http.SameSiteLaxMode,
	"STRICT":  http.SameSiteStrictMode,
	"NONE":    http.SameSiteNoneMode,
}

func NewCookies(j *JWT) (*Cookies, error) {
	domain, err := lookupRequired("COOKIES_DOMAIN")
	if err != nil {
		return nil, err
	}
	secureStr, err := lookupRequired("COOKIES_SECURE")
	if err != nil {
		return nil, err
	}

	sameSite := http.SameSiteStrictMode
	if sameSiteStr, ok := os.LookupEnv("COOKIES_SAMESITE"); ok {
		mode, ok := sameSiteModes[strings.ToUpper(sameSiteStr)]
		if !ok {
			return nil, fmt.Errorf("unknown COOKIES_SAMESITE mode %q", sameSiteStr)
		}
		sameSite = mode
	}

	return &Cookies{
		Domain:   domain,
		Secure:   secureStr != "0",
		SameSite: sameSite,
		jwt:      j,
	}, nil
}

func (c *Cookies) cookie(name, value string, httpOnly bool) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Path:     "/",
		Value:    value,
		HttpOnly: httpOnly,
		Domain:   c.Domain,
		Secure:   c.Secure,
		SameSite: c.SameSite,
	}
}

func (c *Cookies) Clear(w http.ResponseWriter) {
	for _, cookie := range []*http.Cookie{
		c.cookie(claimsCookie, "delete", false),
		c.cookie(signatureCookie, "delete", true),
	} {
		cookie.MaxAge = -1
		http.SetCookie(w, cookie)
	}
}

// Refresh stores a signed token in the session cookies.
func (c *Cookies) Refresh(w http.ResponseWriter, token string) error {
	i := strings.LastIndexByte(token, '.')
	if i < 0 || strings.Count(token, ".") != 2 {
		return errors.New("malformed JWT token generated")
	}
	expires := time.Now().Add(c.jwt.tokenLifetime)
	for _, cookie := range []*http.Cookie{
		c.cookie(claimsCookie, token[:i], false),
		c.cookie(signatureCookie, token[i+1:], true),
	} {
		cookie.Expires = expires
		http.SetCookie(w, cookie)
	}
	return nil
}

func (c *Cookies) ParseUserClaims(r *http.Request) (*UserClaims, error) {
	claimsPart, err := r.Cookie(claimsCookie)
	if err != nil {
		return nil, err
	}
	signature, err := r.Cookie(signatureCookie)
	if err != nil {
		return nil, err
	}
	token, err := c.jwt.ParseWithClaims(claimsPart.Value+"."+signature.Value, &UserClaims{})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*UserClaims)
	if !ok {
		return nil, errors.New("malformed claims")
	}
	return claims, nil
}
