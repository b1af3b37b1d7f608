package deck

import (
	"errors"
	"fmt"
)

var (
	// ErrNotAscending indicates a card smaller than the card before it.
	ErrNotAscending = errors.New("deck: cards must be in ascending order")

	// ErrDuplicate indicates two equal neighbouring cards under the strict policy.
	ErrDuplicate = errors.New("deck: duplicate card")

	// ErrInvalidToken indicates a token that is not a base-10 integer.
	ErrInvalidToken = errors.New("deck: invalid card")

	// ErrNonPositive indicates a card value of zero or below.
	ErrNonPositive = errors.New("deck: cards must be positive")

	// ErrUnknownPolicy indicates an unrecognised parse policy name.
	ErrUnknownPolicy = errors.New("deck: unknown parse policy")
)

// ValidationError wraps a deck error with the offending position.
// Position is the token index for token errors and the deck index for
// ordering errors.
type ValidationError struct {
	Position int
	Token    string
	Value    int
	Previous int
	Err      error
}

func (e *ValidationError) Error() string {
	switch {
	case errors.Is(e.Err, ErrNotAscending), errors.Is(e.Err, ErrDuplicate):
		return fmt.Sprintf("%v: %d follows %d at position %d", e.Err, e.Value, e.Previous, e.Position+1)
	case e.Token != "":
		return fmt.Sprintf("%v: %q at position %d", e.Err, e.Token, e.Position+1)
	default:
		return fmt.Sprintf("%v: position %d", e.Err, e.Position+1)
	}
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
