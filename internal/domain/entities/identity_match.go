package entities

import "bytes"

// MatchesRequested reports whether a candidate identity read from disk satisfies
// a (possibly under-specified) requested identity. The relation is directional:
// optional fields left unspecified on the requested side are not constrained,
// while fields specified on the requested side must agree with the candidate.
//
//   - Name: exact, case-sensitive equality.
//   - PublicKeyToken: requested token empty, or byte-equal to the candidate's.
//     A requested token against a candidate without one never matches.
//   - Version: requested version unspecified, or equal to the candidate's.
//   - Culture: see CulturesEquivalent.
func MatchesRequested(requested, candidate Identity) bool {
	namesEqual := requested.Name == candidate.Name
	tokensMatch := !requested.HasPublicKeyToken() ||
		bytes.Equal(requested.PublicKeyToken, candidate.PublicKeyToken)
	versionsMatch := requested.Version == nil || requested.Version.Equal(candidate.Version)
	culturesMatch := CulturesEquivalent(requested.Culture, candidate.Culture)

	return namesEqual && tokensMatch && versionsMatch && culturesMatch
}

// CulturesEquivalent treats two cultures as equivalent when both are
// neutral-equivalent or when the raw values are equal. Neutrality is evaluated
// for each operand independently, so a neutral request does not match a
// culture-specific candidate. A request without a culture counts as neutral,
// so a bare name does not match a satellite assembly either.
func CulturesEquivalent(first, second string) bool {
	if IsNeutralCulture(first) && IsNeutralCulture(second) {
		return true
	}
	return first == second
}
