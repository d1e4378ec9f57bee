package apidoc

import "errors"

// Sentinel errors returned while building the snapshot.
var (
	ErrNilRegistry    = errors.New("apidoc: nil registry")
	ErrInvalidHandler = errors.New("apidoc: invalid handler")
	ErrUnknownField   = errors.New("apidoc: documented field not declared")
)
