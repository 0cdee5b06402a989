// Package auth provides JWT token issuance and password hashing for the
// optional account features.
package auth

import "errors"

var (
	// ErrInvalidToken indicates the token is malformed, has a bad
	// signature, or otherwise failed validation.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken indicates the token's expiry has passed.
	ErrExpiredToken = errors.New("token expired")
)
