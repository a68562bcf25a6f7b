package ast

import "unique"

// Name is an interned identifier. Two names compare equal exactly when their
// contents do, so Name works directly as a map key.
type Name struct {
	h unique.Handle[string]
}

// Intern returns the canonical Name for s.
func Intern(s string) Name {
	return Name{h: unique.Make(s)}
}

// IsZero reports whether the name was never set.
func (n Name) IsZero() bool {
	return n == Name{}
}

func (n Name) String() string {
	if n.IsZero() {
		return ""
	}
	return n.h.Value()
}

func (n Name) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

func (n *Name) UnmarshalText(text []byte) error {
	*n = Intern(string(text))
	return nil
}
