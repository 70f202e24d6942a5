// Package jwt issues and verifies HS256 session tokens built on
// github.com/golang-jwt/jwt/v5.
//
// A token carries the account id and email plus standard registered claims
// (sub, jti, iat, exp and optionally iss). Tokens expire after 24 hours by
// default and cannot be revoked earlier.
//
//	svc, err := jwt.New([]byte(secret))
//	token, err := svc.Issue(account.ID, account.Email)
//	claims, err := svc.Verify(token) // ErrExpiredToken / ErrInvalidToken
//
// Middleware extracts "Authorization: Bearer" tokens, answers 401 when none is
// present and 403 when verification fails, and stores the claims for
// GetClaims.
package jwt
