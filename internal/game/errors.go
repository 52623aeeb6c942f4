package game

import "errors"

// Rule violations. PlayCard and ApplyEffectCard wrap these with detail, so
// match them with errors.Is.
var (
	ErrInvalidCardIndex   = errors.New("invalid card index")
	ErrEffectAsLastCard   = errors.New("cannot play an effect card as your last card")
	ErrInvalidMove        = errors.New("invalid move")
	ErrUnknownCardKind    = errors.New("unknown card kind")
	ErrCPUIneffectiveMove = errors.New("cpu number card does not surpass opponent")
)

// IsRuleError reports whether err is one of the rule violations above.
func IsRuleError(err error) bool {
	return errors.Is(err, ErrInvalidCardIndex) ||
		errors.Is(err, ErrEffectAsLastCard) ||
		errors.Is(err, ErrInvalidMove) ||
		errors.Is(err, ErrUnknownCardKind) ||
		errors.Is(err, ErrCPUIneffectiveMove)
}
