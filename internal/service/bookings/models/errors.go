package models

import "errors"

var (
	// ErrInvalidRequestType возвращается при некорректном типе запроса
	ErrInvalidRequestType = errors.New("invalid request type")

	// ErrInvalidDate возвращается при некорректном формате даты
	ErrInvalidDate = errors.New("invalid date format, expected YYYY-MM-DD")

	// ErrInvalidTime возвращается при некорректном формате времени
	ErrInvalidTime = errors.New("invalid time format, expected HH:MM")
)
