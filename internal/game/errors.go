package game

import "errors"

var (
	ErrNotYourTurn       = errors.New("not your turn")
	ErrWrongPhase        = errors.New("action not allowed in current phase")
	ErrIllegalTarget     = errors.New("illegal target")
	ErrInvalidIndex      = errors.New("invalid card index")
	ErrInvalidSelection  = errors.New("invalid selection")
	ErrHandFull          = errors.New("hand is full")
	ErrGameAlreadyOver   = errors.New("game already over")
	ErrUnknownSeat       = errors.New("unknown seat")
	ErrUnknownAction     = errors.New("unknown action")
	ErrInvalidSeatConfig = errors.New("invalid seat configuration")
	ErrUnknownCatalog    = errors.New("unknown card catalog")
)
