package game

import "errors"

// Command-boundary rejections. Every one of these leaves the game
// state untouched.
var (
	ErrInvalidIndex      = errors.New("game: index out of range")
	ErrSlotOccupied      = errors.New("game: slot already occupied")
	ErrEmptySlot         = errors.New("game: slot is empty")
	ErrBlankImmovable    = errors.New("game: blank cards cannot be picked up")
	ErrOnCooldown        = errors.New("game: card is on cooldown")
	ErrNotActivatable    = errors.New("game: card has no activation")
	ErrChoiceOpen        = errors.New("game: resolve the open choice first")
	ErrNoChoice          = errors.New("game: no choice is open")
	ErrWrongChoice       = errors.New("game: selection does not match the open choice")
	ErrInvalidSelection  = errors.New("game: invalid selection")
	ErrEmptySelection    = errors.New("game: empty selection")
	ErrInsufficientFunds = errors.New("game: not enough currency")
	ErrUnknownItem       = errors.New("game: unknown shop item")
)
