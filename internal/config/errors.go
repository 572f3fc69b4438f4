package config

import "errors"

var (
	ErrMissingJWTSecret          = errors.New("JWT_SECRET is required in production")
	ErrMissingGatewayCredentials = errors.New("braintree credentials are required in production")
)
