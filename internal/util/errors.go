package util

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrEmailRegistered     = errors.New("email already registered")
	ErrPermissionDenied    = errors.New("permission denied")
	ErrCourseNotFound      = errors.New("course not found")
	ErrLessonNotFound      = errors.New("lesson not found")
	ErrAlreadyPurchased    = errors.New("lesson already purchased")
	ErrInsufficientBalance = errors.New("insufficient wallet balance")
	ErrAccountDisabled     = errors.New("account disabled")
)
