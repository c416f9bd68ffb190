// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/absmach/routemq/acl"
	"github.com/absmach/routemq/packets"
)

func testACLs(t *testing.T, entries ...string) []acl.ACL {
	t.Helper()
	acls := make([]acl.ACL, 0, len(entries))
	for _, e := range entries {
		a, err := acl.Parse(e)
		require.NoError(t, err)
		acls = append(acls, a)
	}
	return acls
}

func TestNewQualifiesClientID(t *testing.T) {
	s := New("t1", "alice", "c1", true, false, nil)
	assert.Equal(t, "t1.c1", s.ClientID)
	assert.Equal(t, "t1", s.TenantID)
	assert.Equal(t, "alice", s.Username)
	assert.True(t, s.Clean)

	s = New("", "alice", "c1", false, true, nil)
	assert.Equal(t, "c1", s.ClientID)
	assert.False(t, s.Clean)
	assert.True(t, s.DynamicFilters)
}

func TestNewSubstitutesACLs(t *testing.T) {
	acls := testACLs(t,
		"device/%c/#:rw",
		"tenants/%t/announce:r",
		"users/%u/inbox:rw",
	)

	s := New("t1", "alice", "c1", true, false, acls)
	require.Len(t, s.ACLs, 3)
	assert.Equal(t, "device/t1.c1/#", s.ACLs[0].Rule.String())
	assert.Equal(t, "tenants/t1/announce", s.ACLs[1].Rule.String())
	assert.Equal(t, "users/alice/inbox", s.ACLs[2].Rule.String())

	// Flags survive substitution.
	assert.True(t, s.ACLs[0].Read)
	assert.True(t, s.ACLs[0].Write)
	assert.True(t, s.ACLs[1].Read)
	assert.False(t, s.ACLs[1].Write)

	// The configured entries are untouched.
	assert.Equal(t, "device/%c/#", acls[0].Rule.String())
}

func TestNewSkipsAbsentVariables(t *testing.T) {
	acls := testACLs(t, "tenants/%t/device/%u:rw")

	// No tenant, no username: both tokens stay literal.
	s := New("", "", "c1", true, false, acls)
	assert.Equal(t, "tenants/%t/device/%u", s.ACLs[0].Rule.String())

	// Username only.
	s = New("", "alice", "c1", true, false, acls)
	assert.Equal(t, "tenants/%t/device/alice", s.ACLs[0].Rule.String())
}

func TestSubstitutedACLsAuthorize(t *testing.T) {
	acls := testACLs(t, "device/%c/#:rw", "$SYS/#:r")
	s := New("t1", "", "c1", true, false, acls)

	// The router composes these results; here we only exercise the
	// matching primitives on the substituted entries.
	assert.True(t, s.ACLs[0].Write && s.ACLs[0].Rule.MatchesTopic("device/t1.c1/state"))
	assert.False(t, s.ACLs[0].Rule.MatchesTopic("device/other/state"))
	assert.True(t, s.ACLs[1].Read && s.ACLs[1].Rule.MatchesFilter("$SYS/broker/uptime"))
}

func TestSetTopicAliasMax(t *testing.T) {
	s := New("", "", "c1", true, false, nil)
	require.Nil(t, s.OutboundAliases())

	// Zero means the client does not support topic aliases.
	s.SetTopicAliasMax(0)
	require.Nil(t, s.OutboundAliases())

	s.SetTopicAliasMax(8)
	require.NotNil(t, s.OutboundAliases())
	assert.Equal(t, uint16(8), s.OutboundAliases().Max())
}

func TestInboundAliases(t *testing.T) {
	s := New("", "", "c1", true, false, nil)

	_, ok := s.ResolveInboundAlias(1)
	assert.False(t, ok)

	s.SetInboundAlias(1, "sensors/temperature")
	s.SetInboundAlias(2, "sensors/humidity")

	topic, ok := s.ResolveInboundAlias(1)
	require.True(t, ok)
	assert.Equal(t, "sensors/temperature", topic)

	// Re-binding an alias replaces the topic.
	s.SetInboundAlias(1, "sensors/pressure")
	topic, _ = s.ResolveInboundAlias(1)
	assert.Equal(t, "sensors/pressure", topic)
}

func TestSubscriptions(t *testing.T) {
	s := New("", "", "c1", true, false, nil)

	s.Subscribe("a/+/b")
	s.SetSubscriptionID("a/+/b", 7)
	assert.True(t, s.Subscribed("a/+/b"))

	id, ok := s.SubscriptionID("a/+/b")
	require.True(t, ok)
	assert.Equal(t, 7, id)

	s.Unsubscribe("a/+/b")
	assert.False(t, s.Subscribed("a/+/b"))
	_, ok = s.SubscriptionID("a/+/b")
	assert.False(t, ok)
}

func TestSetLastWill(t *testing.T) {
	s := New("", "", "c1", true, false, nil)

	will := &packets.LastWill{Topic: "clients/c1/offline", Message: []byte("gone"), QoS: 1}
	props := &packets.LastWillProperties{ContentType: "text/plain"}
	s.SetLastWill(will, props)
	assert.Equal(t, will, s.LastWill)
	assert.Equal(t, props, s.LastWillProperties)

	s.SetLastWill(nil, nil)
	assert.Nil(t, s.LastWill)
	assert.Nil(t, s.LastWillProperties)
}

func TestFilterContext(t *testing.T) {
	s := New("t1", "alice", "c1", true, false, nil)
	ctx := s.FilterContext()
	assert.Equal(t, "t1.c1", ctx.ClientID)
	assert.Equal(t, "t1", ctx.TenantID)
	assert.Equal(t, "alice", ctx.Username)
}

func TestEventsRing(t *testing.T) {
	e := NewEvents(3)
	e.Push(EventConnected, "127.0.0.1:5000")
	e.Push(EventSubscribed, "a/#")
	e.Push(EventError, "short write")
	e.Push(EventDisconnected, "keepalive timeout")

	recent := e.Recent()
	require.Len(t, recent, 3)
	assert.Equal(t, EventSubscribed, recent[0].Kind)
	assert.Equal(t, EventDisconnected, recent[2].Kind)
	for _, ev := range recent {
		assert.NotEmpty(t, ev.ID)
		assert.False(t, ev.At.IsZero())
	}
}
