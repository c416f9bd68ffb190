// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package session holds the per-connection state consumed by the
// router: the substituted ACL list, subscriptions, topic alias tables
// and last-will state. A Session is exclusively owned by the single
// worker that drives its connection's event stream, so it carries no
// internal locking.
package session

import (
	"github.com/absmach/routemq/acl"
	"github.com/absmach/routemq/filter"
	"github.com/absmach/routemq/packets"
)

// Session is the state of one client connection.
type Session struct {
	// ClientID is the client identifier, tenant-qualified as
	// "<tenant>.<client>" when the connection belongs to a tenant.
	ClientID string
	// TenantID is the id of the client's organisation/tenant.
	TenantID string
	// Username after successful authentication.
	Username string
	// DynamicFilters permits creating subscription filters on the fly
	// during publish when they did not exist at subscribe time.
	DynamicFilters bool
	// ACLs with substituted variables for this connection. Evaluation
	// order and combination policy belong to the router.
	ACLs []acl.ACL
	// Clean indicates a clean-session connection. Retention and
	// rehydration of non-clean sessions is the router's policy.
	Clean bool
	// ProtocolLevel is the MQTT version negotiated at CONNECT.
	ProtocolLevel byte
	// Subscriptions is the set of active subscription filters.
	Subscriptions map[string]struct{}
	// LastWill is delivered on ungraceful disconnect; nil when unset.
	LastWill *packets.LastWill
	// LastWillProperties are the v5 properties of the last will.
	LastWillProperties *packets.LastWillProperties
	// Events is a bounded ring of recent connection events.
	Events *Events

	// Topic aliases set by the client (alias -> topic).
	topicAliases map[uint16]string
	// Topic aliases used by the broker on the outbound path; nil until
	// SetTopicAliasMax enables them.
	brokerAliases *Aliases
	// Subscription identifiers by filter.
	subscriptionIDs map[string]int
}

// New creates the state for a connecting client. When tenantID is
// non-empty the client id is qualified as "<tenantID>.<clientID>".
// Every supplied ACL has its %c/%t/%u variables substituted exactly
// once, with %t and %u present only when their source value is; the
// supplied slice is left untouched.
func New(tenantID, username, clientID string, clean, dynamicFilters bool, acls []acl.ACL) *Session {
	if tenantID != "" {
		clientID = tenantID + "." + clientID
	}

	vars := make([]acl.Variable, 0, 3)
	vars = append(vars, acl.Variable{Token: acl.TokenClientID, Value: clientID})
	if tenantID != "" {
		vars = append(vars, acl.Variable{Token: acl.TokenTenantID, Value: tenantID})
	}
	if username != "" {
		vars = append(vars, acl.Variable{Token: acl.TokenUsername, Value: username})
	}

	substituted := make([]acl.ACL, 0, len(acls))
	for _, a := range acls {
		substituted = append(substituted, a.SubstituteVariables(vars...))
	}

	return &Session{
		ClientID:        clientID,
		TenantID:        tenantID,
		Username:        username,
		DynamicFilters:  dynamicFilters,
		ACLs:            substituted,
		Clean:           clean,
		Subscriptions:   make(map[string]struct{}),
		Events:          NewEvents(defaultEventCapacity),
		topicAliases:    make(map[uint16]string),
		subscriptionIDs: make(map[string]int),
	}
}

// SetTopicAliasMax enables outbound topic aliasing sized to the
// client's negotiated maximum. A max of 0 means the client does not
// support topic aliases and alias substitution must never be attempted.
func (s *Session) SetTopicAliasMax(max uint16) {
	if max > 0 {
		s.brokerAliases = NewAliases(max)
	}
}

// OutboundAliases returns the broker-side alias table, or nil when
// outbound aliasing is disabled for this session.
func (s *Session) OutboundAliases() *Aliases {
	return s.brokerAliases
}

// SetLastWill replaces the last-will state. Passing nil clears it.
func (s *Session) SetLastWill(will *packets.LastWill, props *packets.LastWillProperties) {
	s.LastWill = will
	s.LastWillProperties = props
}

// SetInboundAlias records a client-assigned topic alias.
func (s *Session) SetInboundAlias(alias uint16, topic string) {
	s.topicAliases[alias] = topic
}

// ResolveInboundAlias resolves a client-assigned alias to a topic.
func (s *Session) ResolveInboundAlias(alias uint16) (string, bool) {
	topic, ok := s.topicAliases[alias]
	return topic, ok
}

// Subscribe adds a subscription filter.
func (s *Session) Subscribe(filter string) {
	s.Subscriptions[filter] = struct{}{}
}

// Unsubscribe removes a subscription filter and its subscription id.
func (s *Session) Unsubscribe(filter string) {
	delete(s.Subscriptions, filter)
	delete(s.subscriptionIDs, filter)
}

// Subscribed reports whether the filter is currently subscribed.
func (s *Session) Subscribed(filter string) bool {
	_, ok := s.Subscriptions[filter]
	return ok
}

// SetSubscriptionID records the subscription identifier for a filter.
func (s *Session) SetSubscriptionID(filter string, id int) {
	s.subscriptionIDs[filter] = id
}

// SubscriptionID returns the subscription identifier for a filter.
func (s *Session) SubscriptionID(filter string) (int, bool) {
	id, ok := s.subscriptionIDs[filter]
	return id, ok
}

// FilterContext returns the read-only peer identity handed to publish
// filters evaluating messages bound for this session.
func (s *Session) FilterContext() *filter.Context {
	return &filter.Context{
		ClientID: s.ClientID,
		TenantID: s.TenantID,
		Username: s.Username,
	}
}
