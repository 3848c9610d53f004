// Package merge combines a base contract template, a fixture recap, and
// negotiated clauses into one consistent document, resolving overlaps by
// recency and reporting every conflict as a warning.
package merge

import (
	"regexp"
	"strings"
)

// Facts are the commercial terms extracted from a fixture recap. All
// fields are optional; extraction is best-effort over labeled lines and
// narrative text, not a strict schema.
type Facts struct {
	Vessel        string
	Charterer     string
	Owner         string
	Cargo         string
	LoadPort      string
	DischargePort string
	Laycan        string
	FreightRate   string
	Demurrage     string
}

// factLabels maps recap line labels to Facts fields. Lines look like
// "Vessel: MV OCEAN STAR" or "LOAD PORT - Santos, Brazil".
var factLabels = map[string]*struct{ aliases []string }{
	"vessel":    {[]string{"vessel", "ship", "mv", "name of vessel"}},
	"charterer": {[]string{"charterer", "charterers"}},
	"owner":     {[]string{"owner", "owners", "disponent owner"}},
	"cargo":     {[]string{"cargo", "commodity", "cargo description", "quantity"}},
	"loadport":  {[]string{"load port", "loading port", "loadport", "port of loading", "load"}},
	"disport":   {[]string{"discharge port", "disport", "discharging port", "port of discharge", "discharge"}},
	"laycan":    {[]string{"laycan", "lay/can", "laydays"}},
	"freight":   {[]string{"freight", "freight rate", "rate"}},
	"demurrage": {[]string{"demurrage", "dem", "demurrage rate"}},
}

var (
	factLineRe    = regexp.MustCompile(`(?m)^\s*([A-Za-z /]+?)\s*[:\-]\s*(.+)$`)
	vesselNameRe  = regexp.MustCompile(`(?i)\b(MV|MT|M/V|M/T|M\.V\.)\s+([A-Z][A-Z0-9 '\-]{1,40}?)(?:[,.\n]|$)`)
	charterNameRe = regexp.MustCompile(`(?i)charterers?\s*[:\-]?\s+(?:Messrs\.?\s+)?([A-Z][A-Za-z0-9 .&'\-]{2,50}?)(?:[,.\n]|$)`)
)

// ExtractFacts pulls commercial terms from a normalized fixture recap.
func ExtractFacts(recap string) Facts {
	var f Facts

	for _, m := range factLineRe.FindAllStringSubmatch(recap, -1) {
		label := strings.ToLower(strings.TrimSpace(m[1]))
		value := strings.TrimSpace(m[2])
		if value == "" {
			continue
		}
		switch matchLabel(label) {
		case "vessel":
			f.Vessel = canonicalVessel(value)
		case "charterer":
			f.Charterer = value
		case "owner":
			f.Owner = value
		case "cargo":
			f.Cargo = joinFact(f.Cargo, value)
		case "loadport":
			f.LoadPort = value
		case "disport":
			f.DischargePort = value
		case "laycan":
			f.Laycan = value
		case "freight":
			f.FreightRate = value
		case "demurrage":
			f.Demurrage = value
		}
	}

	// Narrative fallbacks for recaps written as prose.
	if f.Vessel == "" {
		if m := vesselNameRe.FindStringSubmatch(recap); m != nil {
			f.Vessel = canonicalVessel(strings.TrimSpace(m[1] + " " + m[2]))
		}
	}
	if f.Charterer == "" {
		if m := charterNameRe.FindStringSubmatch(recap); m != nil {
			f.Charterer = strings.TrimSpace(m[1])
		}
	}

	return f
}

func matchLabel(label string) string {
	for key, spec := range factLabels {
		for _, alias := range spec.aliases {
			if label == alias {
				return key
			}
		}
	}
	return ""
}

// canonicalVessel normalizes vessel prefixes to "MV NAME" / "MT NAME".
func canonicalVessel(name string) string {
	name = strings.TrimSpace(name)
	upper := strings.ToUpper(name)
	switch {
	case strings.HasPrefix(upper, "M/V "), strings.HasPrefix(upper, "M.V. "):
		return "MV " + strings.TrimSpace(name[strings.Index(name, " ")+1:])
	case strings.HasPrefix(upper, "M/T "), strings.HasPrefix(upper, "M.T. "):
		return "MT " + strings.TrimSpace(name[strings.Index(name, " ")+1:])
	}
	return name
}

func joinFact(existing, value string) string {
	if existing == "" {
		return value
	}
	return existing + ", " + value
}
