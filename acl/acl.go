// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package acl

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingFlags is returned when an ACL entry has no ':' separating
// the rule pattern from its permission flags. Entries are parsed at
// configuration load time, so this error is fatal for the entry and
// never occurs mid-session.
var ErrMissingFlags = errors.New("acl entry missing permission flags")

// ACL binds a topic rule to read/write permissions. Read permits
// subscribing to filters matched by the rule, write permits publishing
// to topics matched by it.
type ACL struct {
	Rule  Rule
	Read  bool
	Write bool
}

// Parse parses the textual form "<rule>:<flags>". The rule and flags are
// split at the last ':' so rule patterns may themselves contain ':'.
// Flags are scanned for 'r' and 'w' in any order; unrecognized
// characters are ignored.
func Parse(s string) (ACL, error) {
	i := strings.LastIndex(s, ":")
	if i < 0 {
		return ACL{}, fmt.Errorf("parsing acl entry %q: %w", s, ErrMissingFlags)
	}
	flags := s[i+1:]
	return ACL{
		Rule:  NewRule(s[:i]),
		Read:  strings.ContainsRune(flags, 'r'),
		Write: strings.ContainsRune(flags, 'w'),
	}, nil
}

// String formats the entry as "<rule>:<flags>". Parse(a.String()) yields
// a value equal to a for every ACL.
func (a ACL) String() string {
	var b strings.Builder
	b.Grow(len(a.Rule.String()) + 3)
	b.WriteString(a.Rule.String())
	b.WriteByte(':')
	if a.Read {
		b.WriteByte('r')
	}
	if a.Write {
		b.WriteByte('w')
	}
	return b.String()
}

// SubstituteVariables substitutes variables in the rule pattern,
// preserving the permission flags.
func (a ACL) SubstituteVariables(vars ...Variable) ACL {
	a.Rule = a.Rule.SubstituteVariables(vars...)
	return a
}
