package types

import "github.com/golang-jwt/jwt/v4"

type Claims struct {
	Role Role `json:"role"`
	jwt.RegisteredClaims
}
