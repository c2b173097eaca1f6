package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// TokenType discriminates access tokens from refresh tokens inside claims.
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// Claims carried by every token issued by this service. Subject and the
// jti live in RegisteredClaims; access tokens additionally embed the user
// id, email and display name for the API gateway's convenience.
type Claims struct {
	UserID    string    `json:"id,omitempty"`
	Email     string    `json:"email,omitempty"`
	Name      string    `json:"name,omitempty"`
	TokenType TokenType `json:"type"`
	jwt.RegisteredClaims
}

// TokenPair is the access/refresh credential pair handed to clients.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
