// Copyright (C) 2022  Koukyosyumei
//
// SPDX-License-Identifier: MIT

package pep440

import (
	"fmt"
	"strings"
)

// A Specifier is a series of version clauses, separated by commas; a
// candidate version must match all of the clauses in order to match the
// specifier as a whole.  For example:
//
//	~= 0.9, >= 1.0, != 1.3.4.*, < 2.0
type Specifier []SpecifierClause

func ParseSpecifier(str string) (Specifier, error) {
	clauseStrs := strings.FieldsFunc(str, func(r rune) bool { return r == ',' })
	ret := make(Specifier, 0, len(clauseStrs))
	for _, clauseStr := range clauseStrs {
		clauseStr = strings.TrimSpace(clauseStr)
		if clauseStr == "" {
			continue
		}
		clause, err := parseSpecifierClause(clauseStr)
		if err != nil {
			return nil, fmt.Errorf("pep440.ParseSpecifier: %w", err)
		}
		ret = append(ret, clause)
	}
	return ret, nil
}

func (spec Specifier) String() string {
	clauses := make([]string, 0, len(spec))
	for _, clause := range spec {
		clauses = append(clauses, clause.String())
	}
	return strings.Join(clauses, ",")
}

func (spec Specifier) Match(ver Version) bool {
	for _, clause := range spec {
		if !clause.Match(ver) {
			return false
		}
	}
	return true
}

type CmpOp int

const (
	CmpOpCompatible CmpOp = iota
	CmpOpStrictMatch
	CmpOpPrefixMatch
	CmpOpStrictExclude
	CmpOpPrefixExclude
	CmpOpLE
	CmpOpGE
	CmpOpLT
	CmpOpGT
	CmpOpArbitrary
	_CmpOpEnd
)

func (op CmpOp) String() string {
	str, ok := map[CmpOp]string{
		CmpOpCompatible:    "~=",
		CmpOpStrictMatch:   "strict ==",
		CmpOpPrefixMatch:   "prefix ==",
		CmpOpStrictExclude: "strict !=",
		CmpOpPrefixExclude: "prefix !=",
		CmpOpLE:            "<=",
		CmpOpGE:            ">=",
		CmpOpLT:            "<",
		CmpOpGT:            ">",
		CmpOpArbitrary:     "===",
	}[op]
	if !ok {
		panic(fmt.Errorf("invalid CmpOp: %d", op))
	}
	return str
}

func (op CmpOp) match(spec, ver Version) bool {
	fn, ok := map[CmpOp]func(spec, ver Version) bool{
		CmpOpCompatible:    matchCompatible,
		CmpOpStrictMatch:   matchStrictMatch,
		CmpOpPrefixMatch:   matchPrefixMatch,
		CmpOpStrictExclude: matchStrictExclude,
		CmpOpPrefixExclude: matchPrefixExclude,
		CmpOpLE:            matchLE,
		CmpOpGE:            matchGE,
		CmpOpLT:            matchLT,
		CmpOpGT:            matchGT,
	}[op]
	if !ok {
		panic(fmt.Errorf("invalid CmpOp: %d", op))
	}
	return fn(spec, ver)
}

type SpecifierClause struct {
	CmpOp   CmpOp
	Version Version

	// Arbitrary is the literal right-hand side of a ``===`` clause; for
	// those clauses Version is left zero.
	Arbitrary string
}

func parseSpecifierClause(str string) (SpecifierClause, error) {
	var ret SpecifierClause
	str = strings.TrimSpace(str)
	minSegments := 1
	devOK := true
	localOK := false
	switch {
	case strings.HasPrefix(str, "==="):
		ret.CmpOp = CmpOpArbitrary
		ret.Arbitrary = strings.TrimSpace(str[3:])
		if ret.Arbitrary == "" {
			return ret, fmt.Errorf("expected a version after ===")
		}
		return ret, nil
	case strings.HasPrefix(str, "~="):
		ret.CmpOp = CmpOpCompatible
		str = str[2:]
		minSegments = 2
	case strings.HasPrefix(str, "=="):
		ret.CmpOp = CmpOpStrictMatch
		str = str[2:]
		localOK = true
		if strings.HasSuffix(str, ".*") {
			ret.CmpOp = CmpOpPrefixMatch
			str = strings.TrimSuffix(str, ".*")
			devOK = false
			localOK = false
		}
	case strings.HasPrefix(str, "!="):
		ret.CmpOp = CmpOpStrictExclude
		str = str[2:]
		localOK = true
		if strings.HasSuffix(str, ".*") {
			ret.CmpOp = CmpOpPrefixExclude
			str = strings.TrimSuffix(str, ".*")
			devOK = false
			localOK = false
		}
	case strings.HasPrefix(str, "<="):
		ret.CmpOp = CmpOpLE
		str = str[2:]
	case strings.HasPrefix(str, ">="):
		ret.CmpOp = CmpOpGE
		str = str[2:]
	case strings.HasPrefix(str, "<"):
		ret.CmpOp = CmpOpLT
		str = str[1:]
	case strings.HasPrefix(str, ">"):
		ret.CmpOp = CmpOpGT
		str = str[1:]
	default:
		return ret, fmt.Errorf("invalid comparison operator: %q", str)
	}
	ver, err := ParseVersion(str)
	if err != nil {
		return ret, err
	}
	if len(ver.Release) < minSegments {
		return ret, fmt.Errorf("at least %d release segments required in %s specifier clauses",
			minSegments, ret.CmpOp)
	}
	if ver.Dev != nil && !devOK {
		return ret, fmt.Errorf("dev-part not permitted in %s specifier clauses", ret.CmpOp)
	}
	if len(ver.Local) > 0 && !localOK {
		return ret, fmt.Errorf("local-part not permitted in %s specifier clauses", ret.CmpOp)
	}
	ret.Version = *ver
	return ret, nil
}

func (spec SpecifierClause) String() string {
	if spec.CmpOp == CmpOpArbitrary {
		return "===" + spec.Arbitrary
	}
	opStr, ok := map[CmpOp]string{
		CmpOpCompatible:    "~=",
		CmpOpStrictMatch:   "==",
		CmpOpPrefixMatch:   "==",
		CmpOpStrictExclude: "!=",
		CmpOpPrefixExclude: "!=",
		CmpOpLE:            "<=",
		CmpOpGE:            ">=",
		CmpOpLT:            "<",
		CmpOpGT:            ">",
	}[spec.CmpOp]
	if !ok {
		panic(fmt.Errorf("invalid CmpOp: %d", spec.CmpOp))
	}
	str := opStr + spec.Version.String()
	if spec.CmpOp == CmpOpPrefixMatch || spec.CmpOp == CmpOpPrefixExclude {
		str += ".*"
	}
	return str
}

func (spec SpecifierClause) Match(ver Version) bool {
	// Arbitrary equality is plain string comparison; candidates here are
	// already parsed, so compare against the normalized text, the same as
	// pip's packaging does.
	if spec.CmpOp == CmpOpArbitrary {
		return strings.EqualFold(ver.String(), spec.Arbitrary)
	}
	return spec.CmpOp.match(spec.Version, ver)
}

// A compatible release clause ``~= V.N`` is approximately equivalent to the
// pair of comparison clauses ``>= V.N, == V.*``; any pre-, post-, or
// dev-release suffix on the specified version is ignored when determining the
// required prefix match.
func matchCompatible(spec, ver Version) bool {
	prefix := spec
	prefix.Release = prefix.Release[:len(prefix.Release)-1]
	prefix.Pre = nil
	prefix.Post = nil
	prefix.Dev = nil
	return matchGE(spec, ver) && matchPrefixMatch(prefix, ver)
}

// Strict equality, except that if the specified version has no local version
// label then the candidate's local version label is ignored.
func matchStrictMatch(spec, ver Version) bool {
	if len(spec.Local) == 0 {
		return spec.PublicVersion.Cmp(ver.PublicVersion) == 0
	}
	return spec.Cmp(ver) == 0
}

// Prefix matching for a trailing ``.*``; trailing segments beyond those that
// the specified version names are ignored, with the pre-release segment
// considered to have an implied preceding ``.``.
func matchPrefixMatch(_spec, _ver Version) bool {
	spec, ver := _spec.PublicVersion, _ver.PublicVersion
	const (
		partRel = iota
		partPre
		partPost
	)
	// terminalPart identifies the terminal part of spec's version
	var terminalPart int
	switch {
	case spec.Post != nil:
		terminalPart = partPost
	case spec.Pre != nil:
		terminalPart = partPre
	default:
		terminalPart = partRel
	}

	// epoch /////////////////////////////////////////////////////

	if cmpEpoch(spec, ver) != 0 {
		return false
	}

	// release ///////////////////////////////////////////////////

	if terminalPart == partRel {
		if len(ver.Release) > len(spec.Release) {
			ver.Release = ver.Release[:len(spec.Release)]
		}
	}
	if cmpRelease(spec, ver) != 0 {
		return false
	}
	if terminalPart == partRel {
		return true // we're done
	}

	// pre-release ///////////////////////////////////////////////

	// Do this here instead of using cmpPreRelease because cmpPreRelease also takes in to
	// account .Post and .Dev.
	if (ver.Pre == nil) != (spec.Pre == nil) {
		return false
	} else if spec.Pre != nil && (preReleaseOrder[ver.Pre.L] != preReleaseOrder[spec.Pre.L] ||
		ver.Pre.N != spec.Pre.N) {
		return false
	}
	if terminalPart == partPre {
		return true // we're done
	}

	// post-release //////////////////////////////////////////////

	if cmpPostRelease(spec, ver) != 0 {
		return false
	}
	if terminalPart == partPost {
		return true // we're done
	}

	// developmental release /////////////////////////////////////

	panic("not reached")
}

func matchStrictExclude(spec, ver Version) bool {
	return !matchStrictMatch(spec, ver)
}

func matchPrefixExclude(spec, ver Version) bool {
	return !matchPrefixMatch(spec, ver)
}

func matchLE(spec, ver Version) bool {
	return spec.Cmp(ver) >= 0
}

func matchGE(spec, ver Version) bool {
	return spec.Cmp(ver) <= 0
}

func matchLT(spec, ver Version) bool {
	return spec.Cmp(ver) > 0
}

func matchGT(spec, ver Version) bool {
	return spec.Cmp(ver) < 0
}

// An ExclusionBehavior decides which matching versions a resolver should
// actually consider; PEP 440 says that pre-releases (and yanked files, per
// PEP 592) are implicitly excluded unless nothing else satisfies the
// specifier.
type ExclusionBehavior interface {
	Allow(Version) bool
}

// AllowAll is an implementation of ExclusionBehavior.
type AllowAll struct{}

func (AllowAll) Allow(_ Version) bool {
	return true
}

// ExcludePreReleases is an implementation of ExclusionBehavior.
type ExcludePreReleases struct {
	AllowList []Version
}

func (prereleases ExcludePreReleases) Allow(ver Version) bool {
	if !ver.IsPreRelease() {
		return true
	}
	for _, item := range prereleases.AllowList {
		if item.Cmp(ver) == 0 {
			return true
		}
	}
	return false
}

// MultiExcluder is an implementation of ExclusionBehavior that ANDs multiple other
// ExclusionBehaviors together; only allowing a version if all of the behaviors allow it.
type MultiExcluder []ExclusionBehavior

func (m MultiExcluder) Allow(ver Version) bool {
	for _, e := range m {
		if !e.Allow(ver) {
			return false
		}
	}
	return true
}

// Select returns the preferred version from choices: the latest matching
// version that the exclusionBehavior allows, falling back to the latest
// matching excluded version when no allowed version matches, or nil when
// nothing matches at all.
func (spec Specifier) Select(choices []Version, exclusionBehavior ExclusionBehavior) *Version {
	var best *Version
	var bestExcluded *Version
	for _, choice := range choices {
		if spec.Match(choice) {
			if exclusionBehavior == nil || exclusionBehavior.Allow(choice) {
				if best == nil || best.Cmp(choice) < 0 {
					val := choice
					best = &val
				}
			} else {
				if bestExcluded == nil || bestExcluded.Cmp(choice) < 0 {
					val := choice
					bestExcluded = &val
				}
			}
		}
	}
	if best != nil {
		return best
	}
	if bestExcluded != nil {
		return bestExcluded
	}
	return nil
}
