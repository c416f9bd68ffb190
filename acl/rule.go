// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package acl implements topic access control rules: wildcard pattern
// matching over '/'-separated topic levels and per-connection variable
// substitution.
package acl

import "strings"

// Topic pattern syntax.
const (
	topicSep      = "/"
	topicWildcard = "#" // matches the rest of the hierarchy
	topicAny      = "+" // matches exactly one level
)

// Substitution tokens recognized inside a rule pattern.
const (
	TokenClientID = "%c"
	TokenTenantID = "%t"
	TokenUsername = "%u"
)

// Variable is a substitution token together with its per-connection value.
type Variable struct {
	Token string
	Value string
}

// Rule is a wildcard pattern over '/'-separated topic levels. It may
// contain substitution tokens until SubstituteVariables has been applied.
// A Rule is an immutable value: substitution returns a new Rule.
type Rule struct {
	pattern string
}

// NewRule creates a rule from a pattern string.
func NewRule(pattern string) Rule {
	return Rule{pattern: pattern}
}

// DefaultRule returns the rule that matches every topic.
func DefaultRule() Rule {
	return Rule{pattern: topicWildcard}
}

// String returns the pattern string of the rule.
func (r Rule) String() string {
	return r.pattern
}

// matches walks rule and name levels pairwise. Both sides are treated as
// padded with one trailing absent level so that length mismatches fail on
// an unequal pair rather than silently truncating the walk. Single pass,
// no backtracking: '+' consumes exactly one level and '#' terminates the
// walk successfully.
func (r Rule) matches(name string) bool {
	pat := strings.Split(r.pattern, topicSep)
	lvl := strings.Split(name, topicSep)

	for i := 0; ; i++ {
		patOK := i < len(pat)
		lvlOK := i < len(lvl)
		switch {
		case patOK && lvlOK && pat[i] == topicWildcard:
			return true
		case patOK && lvlOK && pat[i] == topicAny:
			continue
		case patOK && lvlOK && pat[i] == lvl[i]:
			continue
		case !patOK && !lvlOK:
			// Both sides ended together.
			return true
		default:
			return false
		}
	}
}

// MatchesTopic reports whether the rule, treated as a subscription
// filter, matches a concrete wildcard-free topic.
//
//	NewRule("test/#").MatchesTopic("test/abc/def") // true
//	NewRule("test/+").MatchesTopic("test/abc/def") // false
func (r Rule) MatchesTopic(topic string) bool {
	return r.matches(topic)
}

// MatchesFilter reports whether the rule matches a subscription filter.
// The algorithm is identical to MatchesTopic: wildcard characters on the
// filter side are compared as literal level values unless the rule side
// holds a wildcard at that level.
//
//	NewRule("test/#").MatchesFilter("test/abc/def") // true
//	NewRule("test/#").MatchesFilter("#")            // false
func (r Rule) MatchesFilter(filter string) bool {
	return r.matches(filter)
}

// SubstituteVariables replaces every literal occurrence of each
// variable's token with its value, applying the variables in order
// against the progressively substituted pattern. A variable whose value
// contains '/', '#' or '+' is skipped, leaving its token literal, while
// the remaining variables still apply. When no variable changes the
// pattern the returned Rule holds the identical string, so the no-op
// path never allocates.
func (r Rule) SubstituteVariables(vars ...Variable) Rule {
	pattern := r.pattern
	for _, v := range vars {
		if strings.ContainsAny(v.Value, topicSep+topicWildcard+topicAny) {
			continue
		}
		if strings.Contains(pattern, v.Token) {
			pattern = strings.ReplaceAll(pattern, v.Token, v.Value)
		}
	}
	return Rule{pattern: pattern}
}
