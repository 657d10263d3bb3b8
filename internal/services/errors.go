package services

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateEmail     = errors.New("email already in use")
	ErrUnavailable        = errors.New("item not available")
	ErrEmptyCart          = errors.New("cart is empty or items unavailable")
	ErrInvalidPrice       = errors.New("price must be a positive number")
	ErrInvalidRating      = errors.New("rating must be between 1 and 5")
	ErrInvalidImage       = errors.New("unsupported image")
	ErrAdminProtected     = errors.New("admin accounts cannot be removed")
	ErrProductNotFound    = errors.New("product not found")
	ErrInvalidRole        = errors.New("invalid role")
	ErrMissingFields      = errors.New("required fields missing")
)
