// Package attribution harvests marketing attribution parameters from page
// query strings and carries them through navigation and lead submission.
package attribution

import "net/url"

// Attribution is the source/medium/campaign triple attached to a lead.
// Missing fields are defaulted, never omitted: an absent source means a
// direct visit.
type Attribution struct {
	Source   string `json:"utmSource"`
	Medium   string `json:"utmMedium"`
	Campaign string `json:"utmCampaign"`
}

// Direct is the attribution of a visit with no marketing parameters.
func Direct() Attribution {
	return Attribution{Source: "direct"}
}

// FromQuery extracts attribution from query parameters. Both bare keys
// ("source") and utm-prefixed keys ("utm_source") are accepted, bare keys
// winning when both are present.
func FromQuery(q url.Values) Attribution {
	return Attribution{
		Source:   paramOr(q, "source", "direct"),
		Medium:   paramOr(q, "medium", ""),
		Campaign: paramOr(q, "campaign", ""),
	}
}

func paramOr(q url.Values, key, fallback string) string {
	if v := q.Get(key); v != "" {
		return v
	}
	if v := q.Get("utm_" + key); v != "" {
		return v
	}
	return fallback
}
