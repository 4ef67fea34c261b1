package core

import (
	"errors"
	"fmt"
)

// ErrInvalidCoordinate is returned when a move addresses a cell off the board.
var ErrInvalidCoordinate = errors.New("invalid coordinate")

// CoordinateError reports which coordinate was out of range.
type CoordinateError struct {
	Coord Coord
}

func (e *CoordinateError) Error() string {
	return fmt.Sprintf("%s: %s is outside the %dx%d board", ErrInvalidCoordinate, e.Coord, Height, Width)
}

func (e *CoordinateError) Unwrap() error {
	return ErrInvalidCoordinate
}

// Rejection explains why a move was not applied. Rejections are ordinary
// results, not errors; the board is returned unchanged.
type Rejection uint8

const (
	RejectNone Rejection = iota
	RejectOccupied
	RejectNotMovable
	RejectNotAdjacent
	RejectBusy
	RejectNotPlaying
)

func (r Rejection) String() string {
	switch r {
	case RejectNone:
		return "none"
	case RejectOccupied:
		return "destination occupied"
	case RejectNotMovable:
		return "source is not a movable block"
	case RejectNotAdjacent:
		return "destination is not horizontally adjacent"
	case RejectBusy:
		return "a move is still settling"
	case RejectNotPlaying:
		return "level is not in play"
	default:
		return "unknown"
	}
}

// MarshalText encodes the rejection as its description.
func (r Rejection) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}
