package bitmg

import "errors"

// Errors returned by the parsing boundary. The generator itself never returns errors.
var (
	ErrInvalidFEN    = errors.New("invalid FEN")
	ErrInvalidSquare = errors.New("invalid square")
	ErrIllegalMove   = errors.New("illegal move")
)
