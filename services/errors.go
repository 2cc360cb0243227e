package services

import "errors"

var (
	ErrGroupNotFound   = errors.New("group not found")
	ErrExpenseNotFound = errors.New("expense not found")
	ErrMemberNotFound  = errors.New("member not found")
	ErrForbidden       = errors.New("not a member of this group")
	ErrMissingFields   = errors.New("please fill all fields")
	ErrInvalidInput    = errors.New("invalid input")
	ErrEmailDisabled   = errors.New("email is not configured")
)
