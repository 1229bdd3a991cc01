package services

import "errors"

var (
	ErrPermissionDenied = errors.New("permission denied")
	ErrAlreadyFavorite  = errors.New("car is already in favorites")
)
