package oracle

import (
	errorsmod "cosmossdk.io/errors"
)

// Codespace groups the oracle error codes.
const Codespace = "fairlp"

var (
	// ErrConfig is returned for malformed or missing configuration.
	ErrConfig = errorsmod.Register(Codespace, 1, "invalid config")

	// ErrExternalQuery is returned when an upstream query fails or returns an unusable shape.
	ErrExternalQuery = errorsmod.Register(Codespace, 2, "external query failed")

	// ErrPoolData is returned when a pool response is missing an expected asset or is malformed.
	ErrPoolData = errorsmod.Register(Codespace, 3, "invalid pool data")

	// ErrArithmetic is returned on division by zero or overflow.
	ErrArithmetic = errorsmod.Register(Codespace, 4, "arithmetic error")

	// ErrInvalidRequest is returned for a malformed query or asset token.
	ErrInvalidRequest = errorsmod.Register(Codespace, 5, "invalid request")
)
