package credentials

import (
	"errors"
	"fmt"
	"unicode"
)

const (
	PolicyMinLength = 12
	PolicyMaxLength = 63
)

// Policy describes password complexity requirements enforced when a
// user-facing password is accepted (it does not apply to client
// passphrases, which are machine generated).
type Policy struct {
	LenMin      int
	LenMax      int
	NeedLower   bool
	NeedUpper   bool
	NeedDigit   bool
	NeedSpecial bool
}

func DefaultPolicy() Policy {
	return Policy{
		LenMin:    PolicyMinLength,
		LenMax:    PolicyMaxLength,
		NeedLower: true,
		NeedUpper: true,
		NeedDigit: true,
	}
}

func (p Policy) Validate(plain string) error {
	if len(plain) < p.LenMin {
		return fmt.Errorf("password must be at least %d characters", p.LenMin)
	}
	if len(plain) > p.LenMax {
		return fmt.Errorf("password must be at most %d characters", p.LenMax)
	}

	var lower, upper, digit, special bool
	for _, r := range plain {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		default:
			special = true
		}
	}

	if p.NeedLower && !lower {
		return errors.New("password must contain a lowercase letter")
	}
	if p.NeedUpper && !upper {
		return errors.New("password must contain an uppercase letter")
	}
	if p.NeedDigit && !digit {
		return errors.New("password must contain a digit")
	}
	if p.NeedSpecial && !special {
		return errors.New("password must contain a special character")
	}
	return nil
}
