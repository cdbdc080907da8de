package admin

import (
	"errors"
	"strings"
)

var (
	ErrInvalidRole     = errors.New("invalid role")
	ErrEmptyUsername   = errors.New("username is required")
	ErrEmptyPassword   = errors.New("password is required")
	ErrInvalidPassword = errors.New("invalid username or password")
)

type Credentials struct {
	username string
	password string
}

func NewCredentials(username, password string) (Credentials, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return Credentials{}, ErrEmptyUsername
	}
	if password == "" {
		return Credentials{}, ErrEmptyPassword
	}
	return Credentials{username: username, password: password}, nil
}

func (c Credentials) Username() string {
	return c.username
}

func (c Credentials) Password() string {
	return c.password
}
