package kernel

import "strings"

// Email is always stored trimmed and lower-cased
type Email string

// NewEmail normalizes raw input into an Email
func NewEmail(raw string) Email {
	return Email(strings.ToLower(strings.TrimSpace(raw)))
}

func (e Email) String() string { return string(e) }
func (e Email) IsEmpty() bool  { return string(e) == "" }

// IsValid performs a cheap structural check: one "@" with text on both sides
// and a dot in the domain part.
func (e Email) IsValid() bool {
	s := string(e)
	at := strings.Index(s, "@")
	if at <= 0 || at != strings.LastIndex(s, "@") {
		return false
	}
	domain := s[at+1:]
	return strings.Contains(domain, ".") && !strings.HasPrefix(domain, ".") && !strings.HasSuffix(domain, ".")
}

type Phone string

func NewPhone(raw string) Phone { return Phone(strings.TrimSpace(raw)) }
func (p Phone) String() string  { return string(p) }
