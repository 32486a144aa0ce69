package coverage

import "strings"

// ResolveGroup maps a provider coverage code to its coverage group.
// Matching is a case-insensitive exact comparison against each group's code
// list; the first group (in declaration order) that lists the code wins.
// Returns nil when no group matches.
func ResolveGroup(code string) *Group {
	upper := strings.ToUpper(strings.TrimSpace(code))
	if upper == "" {
		return nil
	}
	for i := range groups {
		for _, c := range groups[i].CoverageCodes {
			if c == upper {
				return &groups[i]
			}
		}
	}
	return nil
}

// PrimaryContinent classifies a package by its coverage codes: the first
// continent bucket whose code list intersects the package's codes, or
// ContinentGlobal when none does.
func PrimaryContinent(packageCodes []string) string {
	for _, continent := range continents {
		if continent.Code == ContinentGlobal {
			continue
		}
		for _, pkgCode := range packageCodes {
			upper := strings.ToUpper(strings.TrimSpace(pkgCode))
			for _, c := range continent.CoverageCodes {
				if c == upper {
					return continent.Code
				}
			}
		}
	}
	return ContinentGlobal
}

// CodesIntersect reports whether any code in a case-insensitively equals any
// code in b. Used for matching packages to regions: a region matches when its
// stored coverage codes intersect the package's codes, in either direction.
func CodesIntersect(a, b []string) bool {
	for _, x := range a {
		ux := strings.ToUpper(strings.TrimSpace(x))
		for _, y := range b {
			if ux == strings.ToUpper(strings.TrimSpace(y)) {
				return true
			}
		}
	}
	return false
}
