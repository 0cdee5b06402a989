package service

import "errors"

// ErrInvalidCredentials is returned when login fails because the email is
// unknown or the password does not match. The two cases are deliberately
// indistinguishable to callers.
var ErrInvalidCredentials = errors.New("invalid email or password")
