package deck

import (
	"fmt"
	"strconv"
	"strings"
)

// Policy controls how Parse treats malformed tokens and duplicate cards.
type Policy int

const (
	// Lenient drops tokens that are not positive integers and accepts duplicates.
	Lenient Policy = iota
	// Strict fails on the first bad token and rejects duplicates.
	Strict
)

func (p Policy) String() string {
	switch p {
	case Lenient:
		return "lenient"
	case Strict:
		return "strict"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

func ParsePolicy(name string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "lenient":
		return Lenient, nil
	case "strict":
		return Strict, nil
	default:
		return Lenient, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
	}
}

// Parse reads a comma separated card list using the Lenient policy.
func Parse(input string) (Deck, error) {
	return ParseWith(input, Lenient)
}

func ParseWith(input string, p Policy) (Deck, error) {
	tokens := strings.Split(input, ",")
	d := make(Deck, 0, len(tokens))

	for i, raw := range tokens {
		tok := strings.TrimSpace(raw)
		if tok == "" {
			continue
		}

		n, err := strconv.Atoi(tok)
		if err != nil {
			if p == Strict {
				return nil, &ValidationError{Position: i, Token: tok, Err: ErrInvalidToken}
			}
			continue
		}
		if n <= 0 {
			if p == Strict {
				return nil, &ValidationError{Position: i, Token: tok, Value: n, Err: ErrNonPositive}
			}
			continue
		}

		d = append(d, n)
	}

	if err := d.validate(p); err != nil {
		return nil, err
	}
	return d, nil
}
