// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package session

// Aliases is the bounded pool of topic aliases the broker uses on the
// outbound path of one session. Alias values lie in
// [1, topicAliasMax]; slot 0 is permanently reserved as the "no alias"
// sentinel and never issued. Freed slots are reusable and allocation
// always takes the lowest-numbered free slot.
type Aliases struct {
	// aliases maps live topics onto allocated slots. It is a partial
	// bijection onto a subset of {1..max} at all times.
	aliases map[string]uint16
	used    []bool
	max     uint16
}

// NewAliases creates an alias pool bounded by the client's negotiated
// topic alias maximum.
func NewAliases(topicAliasMax uint16) *Aliases {
	return &Aliases{
		aliases: make(map[string]uint16),
		// Slot 0 is occupied up front: 0 is an invalid topic alias.
		used: []bool{true},
		max:  topicAliasMax,
	}
}

// Max returns the inclusive upper bound on allocatable aliases.
func (a *Aliases) Max() uint16 {
	return a.max
}

// Len returns the number of live aliases.
func (a *Aliases) Len() int {
	return len(a.aliases)
}

// Get returns the alias used for the topic, if one exists. It never
// mutates the pool.
func (a *Aliases) Get(topic string) (uint16, bool) {
	alias, ok := a.aliases[topic]
	return alias, ok
}

// Assign allocates the lowest-numbered free slot for the topic. When
// the pool is exhausted for the negotiated maximum it returns
// (0, false) and leaves no residue: the caller falls back to sending
// the full topic string, this is not an error. A topic that already
// holds an alias keeps it.
func (a *Aliases) Assign(topic string) (uint16, bool) {
	if alias, ok := a.aliases[topic]; ok {
		return alias, true
	}

	slot := len(a.used)
	for i := 1; i < len(a.used); i++ {
		if !a.used[i] {
			slot = i
			break
		}
	}
	if slot > int(a.max) {
		return 0, false
	}

	if slot == len(a.used) {
		a.used = append(a.used, true)
	} else {
		a.used[slot] = true
	}
	a.aliases[topic] = uint16(slot)
	return uint16(slot), true
}

// Remove unsets the alias for the topic, returning its slot to the
// pool. It is a no-op when the topic holds no alias.
func (a *Aliases) Remove(topic string) {
	if alias, ok := a.aliases[topic]; ok {
		delete(a.aliases, topic)
		a.used[alias] = false
	}
}
