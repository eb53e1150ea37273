// SPDX-License-Identifier: MPL-2.0

package pkgregistry

import "strings"

type (
	// VersionedToken is one segment of a type code: a base token with an
	// optional trailing version digit, e.g. "gwf6" is {gwf, 6}.
	VersionedToken struct {
		Base       string
		Version    byte
		HasVersion bool
	}

	// TypeCode is a hyphen-separated compound code such as "gwf6-gwf6".
	TypeCode []VersionedToken
)

// ParseVersionedToken splits one trailing ASCII digit off s.
func ParseVersionedToken(s string) VersionedToken {
	if n := len(s); n > 0 && isDigit(s[n-1]) {
		return VersionedToken{Base: s[:n-1], Version: s[n-1], HasVersion: true}
	}
	return VersionedToken{Base: s}
}

// String reassembles the token.
func (t VersionedToken) String() string {
	if t.HasVersion {
		return t.Base + string(t.Version)
	}
	return t.Base
}

// Matches reports whether rule names this token, either exactly or by its
// base without the version digit.
func (t VersionedToken) Matches(rule string) bool {
	return rule == t.String() || (t.HasVersion && rule == t.Base)
}

// ParseTypeCode lower-cases code and splits it on hyphens.
func ParseTypeCode(code string) TypeCode {
	parts := strings.Split(fold(code), "-")
	tc := make(TypeCode, len(parts))
	for i, p := range parts {
		tc[i] = ParseVersionedToken(p)
	}
	return tc
}

// Versioned reports whether the first segment carries a version digit.
func (tc TypeCode) Versioned() bool {
	return len(tc) > 0 && tc[0].HasVersion
}

// MatchesRule reports whether rule, split on hyphens, has the same number
// of segments as tc and every segment matches.
func (tc TypeCode) MatchesRule(rule string) bool {
	parts := strings.Split(rule, "-")
	if len(parts) != len(tc) {
		return false
	}
	for i, p := range parts {
		if !tc[i].Matches(p) {
			return false
		}
	}
	return true
}

// MatchPkgList reports whether filter selects a package of the given type
// code and name. Either lower-cased value may be a filter entry. Failing
// that, a type code whose first segment ends in a version digit matches
// entries that spell the code with or without the digit in each segment,
// so {"gwf"} selects "gwf6" and {"gwf-gwf"} selects "gwf6-gwf6".
func MatchPkgList(filter LoadFilter, typeCode, name string) bool {
	if filter.Contains(typeCode) || filter.Contains(name) {
		return true
	}
	tc := ParseTypeCode(typeCode)
	if !tc.Versioned() {
		return false
	}
	for rule := range filter {
		if tc.MatchesRule(rule) {
			return true
		}
	}
	return false
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
