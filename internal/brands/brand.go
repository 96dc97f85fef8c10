// Package brands holds the fixed set of regional brand identities and the
// postal-code resolution rules that route visitors between them.
package brands

// Brand represents one of the regional identities the site presents.
type Brand struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	ColorToken     string   `json:"color_token"`
	SecondaryColor string   `json:"secondary_color"`
	Phone          string   `json:"phone"`
	States         []string `json:"states"`
	ZipPrefixes    []string `json:"zip_prefixes"`
}

// DefaultBrandID is the brand every unresolvable signal falls back to.
const DefaultBrandID = "safehaven"

// ServiceTypes is the fixed set of services a lead can request.
var ServiceTypes = []string{
	"Home Security System",
	"Business Security",
	"Video Surveillance",
	"Smart Home Automation",
	"Fire & Smoke Detection",
}

// ValidServiceType reports whether s is one of the enumerated service types.
func ValidServiceType(s string) bool {
	for _, t := range ServiceTypes {
		if t == s {
			return true
		}
	}
	return false
}
