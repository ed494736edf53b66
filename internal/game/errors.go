package game

import (
	"errors"
	"fmt"
)

var (
	// ErrBadParameter is returned when an actor names an index or card the
	// current state cannot honour.
	ErrBadParameter = errors.New("bad action parameter")

	// ErrStalled is returned when a game exceeds its round limit, which only
	// happens when an actor keeps choosing rejected plays.
	ErrStalled = errors.New("game stalled")
)

// ContractViolation is the panic value raised when a card hook is invoked on
// a card that can never receive it (playing a Door, discarding a Nightmare).
// It signals a bug in the engine or the actor, not a game situation.
type ContractViolation struct {
	Hook string
	Card Card
}

func (v ContractViolation) Error() string {
	return fmt.Sprintf("contract violation: %s must not be %s", v.Card, v.Hook)
}

func badParam(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrBadParameter)
}
