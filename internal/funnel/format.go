package funnel

import "fmt"

// FormatPhone renders accumulated digits in the canonical display mask,
// growing progressively as digits arrive: "(XXX", "(XXX) XXX",
// "(XXX) XXX-XXXX". Input beyond ten digits is the caller's problem;
// see NormalizePhoneInput.
func FormatPhone(digits string) string {
	d := digitsOf(digits)
	switch {
	case len(d) == 0:
		return ""
	case len(d) <= 3:
		return "(" + d
	case len(d) <= 6:
		return fmt.Sprintf("(%s) %s", d[:3], d[3:])
	default:
		if len(d) > 10 {
			d = d[:10]
		}
		return fmt.Sprintf("(%s) %s-%s", d[:3], d[3:6], d[6:])
	}
}

// NormalizePhoneInput strips non-digits and reformats. More than ten digits
// rejects the update outright (ok=false) rather than silently truncating.
func NormalizePhoneInput(value string) (string, bool) {
	d := digitsOf(value)
	if len(d) > 10 {
		return "", false
	}
	return FormatPhone(d), true
}

// NormalizeZipInput restricts the value to digits and caps it at five
// characters by truncation.
func NormalizeZipInput(value string) string {
	d := digitsOf(value)
	if len(d) > 5 {
		d = d[:5]
	}
	return d
}
