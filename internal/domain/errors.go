package domain

import "errors"

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrRecordNotFound = errors.New("running record not found")
	ErrNotOwner       = errors.New("record belongs to another user")
)
