package deck

import (
	"strconv"
	"strings"
)

// Deck is an ascending sequence of positive card values. Values returned by
// Parse, ParseWith and New are validated; callers must not modify them.
type Deck []int

// New validates cards with the lenient ordering rule and returns them as a Deck.
func New(cards ...int) (Deck, error) {
	d := make(Deck, 0, len(cards))
	for i, c := range cards {
		if c <= 0 {
			return nil, &ValidationError{Position: i, Value: c, Err: ErrNonPositive}
		}
		d = append(d, c)
	}
	if err := d.validate(Lenient); err != nil {
		return nil, err
	}
	return d, nil
}

func (d Deck) Len() int { return len(d) }

func (d Deck) Clone() Deck {
	c := make(Deck, len(d))
	copy(c, d)
	return c
}

func (d Deck) Ints() []int {
	return []int(d.Clone())
}

// String formats the deck in the same comma separated form Parse accepts.
func (d Deck) String() string {
	return Join(d, ", ")
}

// Join formats card values with sep between them.
func Join(cards []int, sep string) string {
	var b strings.Builder
	for i, c := range cards {
		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteString(strconv.Itoa(c))
	}
	return b.String()
}

func (d Deck) validate(p Policy) error {
	for i := 1; i < len(d); i++ {
		switch {
		case d[i] < d[i-1]:
			return &ValidationError{Position: i, Value: d[i], Previous: d[i-1], Err: ErrNotAscending}
		case p == Strict && d[i] == d[i-1]:
			return &ValidationError{Position: i, Value: d[i], Previous: d[i-1], Err: ErrDuplicate}
		}
	}
	return nil
}
