package form

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Value is one normalized field. Set distinguishes "do not change this
// field" from an explicit value: the commerce platform leaves omitted fields
// unchanged on update, while empty strings clear them.
type Value struct {
	String string
	Set    bool
}

// Payload is the normalized submission derived from a form at the moment of
// a successful validation pass. It is handed to the commerce client and
// never stored.
type Payload map[string]Value

// Get returns the normalized value for a field.
func (p Payload) Get(field string) Value {
	return p[field]
}

// strict strips all markup from free-text input before it leaves the engine.
var strict = bluemonday.StrictPolicy()

// SanitizeText is the Transform for free-text fields (address lines). It
// removes any HTML the user pasted in.
func SanitizeText(s string) string {
	return strings.TrimSpace(strict.Sanitize(s))
}

// CanonicalPhone rewrites a phone number into the single international
// format the commerce platform accepts: leading plus, calling code, national
// number, no separators. The shape detection is a best-effort heuristic
// biased toward the configured locale:
//
//   - exactly 10 digits: national number, prefix the locale calling code
//   - calling code followed by 10 digits: prefix a plus
//   - anything else: prefix the stripped digits with a plus
//
// Empty input stays empty.
func CanonicalPhone(raw string, loc Locale) string {
	digits := stripNonDigits(raw)
	if digits == "" {
		return ""
	}
	if len(digits) == 10 {
		return "+" + loc.CallingCode + digits
	}
	if len(digits) == len(loc.CallingCode)+10 && strings.HasPrefix(digits, loc.CallingCode) {
		return "+" + digits
	}
	return "+" + digits
}

// PhoneTransform returns the Transform for phone fields under a locale.
func PhoneTransform(loc Locale) func(string) string {
	return func(trimmed string) string {
		return CanonicalPhone(trimmed, loc)
	}
}

// Normalize turns raw form values into the payload shape the commerce
// platform expects: every value trimmed, field transforms applied, and
// optional fields left unset when empty instead of being sent as "".
func Normalize(schema Schema, values map[string]string) Payload {
	p := make(Payload, len(schema.Fields))
	for _, fd := range schema.Fields {
		v := strings.TrimSpace(values[fd.Name])
		if fd.Transform != nil {
			v = fd.Transform(v)
		}
		if v == "" && fd.Optional {
			p[fd.Name] = Value{}
			continue
		}
		p[fd.Name] = Value{String: v, Set: true}
	}
	return p
}
