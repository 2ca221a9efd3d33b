package domain

import "github.com/golang-jwt/jwt/v5"

// Claims são emitidas pelo serviço de autenticação; aqui apenas validamos o token
type Claims struct {
	UserID     int
	UserEmail  string
	UserRoleID int
	jwt.RegisteredClaims
}
