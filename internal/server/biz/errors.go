package biz

import "errors"

var (
	ErrInvalidJWT      = errors.New("invalid jwt token")
	ErrInvalidPassword = errors.New("invalid email or password")
	ErrTokenExpired    = errors.New("token expired")
	ErrInternal        = errors.New("server internal error, please try again later")
)
