// Package module declares the closed set of report categories a log record
// can be classified into. Classification itself (deciding which module a
// parsed record belongs to) is external to this store — the parser pushes
// already-classified records in — so this package only encodes the
// enumeration and its string form (spec.md §6's parse_module/module_to_string
// collaborator).
package module

import "fmt"

// Module is a report category. The zero value, Unknown, is never a valid
// module for a stored record; it exists so a zero Module is visibly invalid
// rather than silently aliasing Requests.
type Module int

const (
	Unknown Module = iota
	Requests
	RequestsStatic
	Visitors
	NotFound
	Hosts
	OS
	Browsers
	Visit404s
	Referrers
	ReferringSites
	Keyphrases
	Geolocation
	Status
	Remote

	numModules
)

var names = [...]string{
	Unknown:         "unknown",
	Requests:        "requests",
	RequestsStatic:  "requests_static",
	Visitors:        "visitors",
	NotFound:        "not_found",
	Hosts:           "hosts",
	OS:              "os",
	Browsers:        "browsers",
	Visit404s:       "visit_404s",
	Referrers:       "referrers",
	ReferringSites:  "referring_sites",
	Keyphrases:      "keyphrases",
	Geolocation:     "geolocation",
	Status:          "status",
	Remote:          "remote",
}

// String returns the canonical lowercase name, also used as the "MODULE"
// segment of persisted filenames (spec.md §6).
func (m Module) String() string {
	if m < 0 || int(m) >= len(names) {
		return fmt.Sprintf("module(%d)", int(m))
	}
	return names[m]
}

// ParseModule resolves a canonical module name back into a Module. It
// returns an error for anything not in the closed enumeration, including the
// empty string.
func ParseModule(s string) (Module, error) {
	for m := Module(1); int(m) < len(names); m++ {
		if names[m] == s {
			return m, nil
		}
	}
	return Unknown, fmt.Errorf("module: unknown module %q", s)
}

// All returns every module in the closed enumeration, in enum order. Useful
// for iterating ModuleStore tables without needing the caller to know the
// count.
func All() []Module {
	out := make([]Module, 0, int(numModules)-1)
	for m := Module(1); m < numModules; m++ {
		out = append(out, m)
	}
	return out
}
