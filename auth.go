package main

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/asdine/storm"
	"github.com/dgrijalva/jwt-go"
	"github.com/go-chi/render"
	"golang.org/x/crypto/bcrypt"
)

var (
	jwtSecret   = []byte("kQ3vGm1SuPbvcqn0Zl0EnwKrJYbPvCEO2OJsHmUcxbE=")
	jwtLifespan = time.Hour
)

// User is a local operator account permitted to drive motors over the API.
type User struct {
	ID       int    `storm:"increment"` // pk
	Email    string `storm:"unique"`
	Name     string
	Password string
	Admin    bool
}

// SetPassword stores the bcrypt hash of the provided plain text.
func (u *User) SetPassword(pass []byte) {
	hash, _ := bcrypt.GenerateFromPassword(pass, bcrypt.DefaultCost)
	u.Password = string(hash)
}

// VerifyPassword compares User.Password with the provided plain text.
// Errors come straight from bcrypt for downstream handling.
func (u *User) VerifyPassword(pass []byte) error {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), pass)
}

// Login payload
type LoginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (l *LoginPayload) Bind(r *http.Request) error {
	return nil
}

type JWTPayload struct {
	SignedToken string `json:"token"`
}

// newJWT produces a standard format token for the given subject.
func newJWT(sub string) (ts string, err error) {
	now := time.Now().UTC()
	claims := jwt.StandardClaims{
		Issuer:    ENV.ISSUER,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(jwtLifespan).Unix(),
		Subject:   sub,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	return token.SignedString(jwtSecret)
}

// Login looks up a user, verifies the password and responds with a token.
func Login(w http.ResponseWriter, r *http.Request) {
	data := &LoginPayload{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	var user User
	if err := ENV.DB.One("Email", data.Email, &user); err != nil {
		if err == storm.ErrNotFound {
			render.Render(w, r, ErrNotFound)
			return
		}
		render.Render(w, r, ErrRender(err))
		return
	}

	if err := user.VerifyPassword([]byte(data.Password)); err != nil {
		if err == bcrypt.ErrMismatchedHashAndPassword {
			render.Render(w, r, ErrPermissionDenied(errors.New("invalid password")))
			return
		}
		render.Render(w, r, ErrRender(err))
		return
	}

	tokenString, err := newJWT(user.Email)
	if err != nil {
		render.Render(w, r, ErrRender(err))
		return
	}

	render.JSON(w, r, JWTPayload{tokenString})
}

// JWTRefresh provides a fresh token to an already authenticated client.
func JWTRefresh(w http.ResponseWriter, r *http.Request) {
	token := r.Context().Value(jwtCtxKey).(*jwt.Token)
	claims := token.Claims.(*jwt.StandardClaims)

	tokenString, err := newJWT(claims.Subject)
	if err != nil {
		render.Render(w, r, ErrRender(err))
		return
	}

	render.JSON(w, r, JWTPayload{tokenString})
}

//---
// Authentication middleware
//---

type ctxKey int

const jwtCtxKey ctxKey = iota

var ErrJWTEmpty = errors.New("bearer token not provided")

// ValidateJWT seeks a token in the query string, the Authorization header or
// a cookie, validates it and stores it on the request context.
func ValidateJWT(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := r.URL.Query().Get("jwt")

		if tokenStr == "" {
			bearer := r.Header.Get("Authorization")
			if len(bearer) > 7 && strings.ToUpper(bearer[0:6]) == "BEARER" {
				tokenStr = bearer[7:]
			}
		}

		if tokenStr == "" {
			if cookie, err := r.Cookie("jwt"); err == nil {
				tokenStr = cookie.Value
			}
		}

		if tokenStr == "" {
			render.Render(w, r, ErrUnauthorized(ErrJWTEmpty))
			return
		}

		token, err := jwt.ParseWithClaims(tokenStr,
			&jwt.StandardClaims{},
			func(*jwt.Token) (interface{}, error) { return jwtSecret, nil })

		if err != nil {
			msg := errors.New("invalid token")
			if jwterr, ok := err.(*jwt.ValidationError); ok &&
				jwterr.Errors&jwt.ValidationErrorExpired != 0 {
				msg = errors.New("token has expired")
			}
			render.Render(w, r, ErrUnauthorized(msg))
			return
		}

		if !token.Valid {
			render.Render(w, r, ErrUnauthorized(errors.New("invalid token")))
			return
		}

		ctx := context.WithValue(r.Context(), jwtCtxKey, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
