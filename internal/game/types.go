package game

import "fmt"

// --- Enums ---

type CardKind int

const (
	KindNumber CardKind = iota
	KindBolt
	KindMirror
	KindBlast
	KindForce
)

func (k CardKind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindBolt:
		return "bolt"
	case KindMirror:
		return "mirror"
	case KindBlast:
		return "blast"
	case KindForce:
		return "force"
	default:
		return "unknown"
	}
}

// ParseCardKind maps a lowercase kind name back to its CardKind.
func ParseCardKind(s string) (CardKind, error) {
	switch s {
	case "number":
		return KindNumber, nil
	case "bolt":
		return KindBolt, nil
	case "mirror":
		return KindMirror, nil
	case "blast":
		return KindBlast, nil
	case "force":
		return KindForce, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownCardKind, s)
	}
}

func (k CardKind) MarshalText() ([]byte, error) {
	if k < KindNumber || k > KindForce {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCardKind, int(k))
	}
	return []byte(k.String()), nil
}

func (k *CardKind) UnmarshalText(text []byte) error {
	parsed, err := ParseCardKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// IsEffect reports whether the kind is one of the four effect cards.
func (k CardKind) IsEffect() bool {
	return k != KindNumber
}

// --- Cards ---

// Card is a single card. Effect cards always carry Value 1.
type Card struct {
	Kind  CardKind `json:"type"`
	Value int      `json:"value"`
}

// Number returns a Number card with face value v.
func Number(v int) Card {
	return Card{Kind: KindNumber, Value: v}
}

// Effect returns an effect card of the given kind.
func Effect(k CardKind) Card {
	return Card{Kind: k, Value: 1}
}

func (c Card) String() string {
	if c.Kind == KindNumber {
		return fmt.Sprintf("%d", c.Value)
	}
	return c.Kind.String()
}

// DisplayString returns a label for narration and terminals.
func (c Card) DisplayString() string {
	switch c.Kind {
	case KindNumber:
		return fmt.Sprintf("Number %d", c.Value)
	case KindBolt:
		return "Bolt"
	case KindMirror:
		return "Mirror"
	case KindBlast:
		return "Blast"
	case KindForce:
		return "Force"
	default:
		return "Unknown"
	}
}

// RemovalRecord remembers the last card knocked off a field, so a Number 1
// can bring it back.
type RemovalRecord struct {
	Card      Card     `json:"card"`
	RemovedBy CardKind `json:"removedBy"`
}
