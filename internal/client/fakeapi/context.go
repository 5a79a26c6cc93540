package fakeapi

import (
	"context"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
)

func contextWithClaims(r *http.Request, c jwt.MapClaims) context.Context {
	return context.WithValue(r.Context(), ctxClaims{}, c)
}

func claimsFrom(r *http.Request) jwt.MapClaims {
	c, _ := r.Context().Value(ctxClaims{}).(jwt.MapClaims)
	return c
}

// userIDFrom reads the numeric user_id claim; JSON numbers decode as float64.
func userIDFrom(r *http.Request) int64 {
	v, _ := claimsFrom(r)["user_id"].(float64)
	return int64(v)
}
