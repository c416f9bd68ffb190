// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package filter implements the publish-path extension point: a
// predicate/transform evaluated against every outbound publish before
// it is encoded. Filters are shared across the workers of many
// connections, so implementations must be safe for concurrent
// invocation and own the serialization of any internal mutable state.
package filter

import (
	"context"
	"time"

	"github.com/absmach/routemq/otel"
	"github.com/absmach/routemq/packets"
)

// Context is the read-only peer identity a filter sees when evaluating
// a publish bound for one recipient.
type Context struct {
	ClientID string
	TenantID string
	Username string
}

// PublishFilter evaluates a publish bound for the peer described by
// ctx. Returning false rejects the publish for that recipient.
// Accepting filters may mutate the payload and properties in place,
// for example to rewrite a topic or strip a property. The properties
// are nil for sessions below protocol level 5.
type PublishFilter interface {
	Filter(ctx *Context, p *packets.Publish, props *packets.PublishProperties) bool
}

// Func adapts a plain function to the PublishFilter interface, so
// simple predicates need no wrapper type.
type Func func(ctx *Context, p *packets.Publish, props *packets.PublishProperties) bool

// Filter implements PublishFilter.
func (f Func) Filter(ctx *Context, p *packets.Publish, props *packets.PublishProperties) bool {
	return f(ctx, p, props)
}

// Ref is a cheaply copyable handle over a publish filter. Two storage
// strategies sit behind one invocation contract: a static reference to
// a filter with process-wide lifetime, and a shared handle to a filter
// built at runtime. Copying a Ref never copies the filter.
type Ref struct {
	filter PublishFilter
	shared bool
}

// StaticRef wraps a filter value that lives for the whole process, such
// as a package-level Func.
func StaticRef(f PublishFilter) Ref {
	return Ref{filter: f}
}

// SharedRef wraps a runtime-constructed filter shared between chains.
func SharedRef(f PublishFilter) Ref {
	return Ref{filter: f, shared: true}
}

// Shared reports whether the handle holds a runtime-built shared filter
// rather than a process-lifetime one.
func (r Ref) Shared() bool {
	return r.shared
}

// Filter invokes the underlying filter.
func (r Ref) Filter(ctx *Context, p *packets.Publish, props *packets.PublishProperties) bool {
	return r.filter.Filter(ctx, p, props)
}

// Chain is an ordered collection of filter handles run on each outbound
// publish. The chain is owned and iterated by the router.
type Chain struct {
	refs    []Ref
	metrics *otel.ChainMetrics
}

// ChainOption configures a Chain.
type ChainOption func(*Chain)

// WithMetrics instruments the chain with OpenTelemetry counters.
func WithMetrics(m *otel.ChainMetrics) ChainOption {
	return func(c *Chain) {
		c.metrics = m
	}
}

// NewChain creates a chain over the given handles.
func NewChain(refs []Ref, opts ...ChainOption) *Chain {
	c := &Chain{refs: refs}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Append adds a handle to the end of the chain.
func (c *Chain) Append(r Ref) {
	c.refs = append(c.refs, r)
}

// Len returns the number of handles in the chain.
func (c *Chain) Len() int {
	return len(c.refs)
}

// Apply runs the filters in order. The first rejection short-circuits
// the remaining filters and the publish is dropped for this recipient.
func (c *Chain) Apply(ctx *Context, p *packets.Publish, props *packets.PublishProperties) bool {
	start := time.Now()
	for _, r := range c.refs {
		if !r.Filter(ctx, p, props) {
			if c.metrics != nil {
				c.metrics.RecordRejected(context.Background(), time.Since(start))
			}
			return false
		}
	}
	if c.metrics != nil {
		c.metrics.RecordAccepted(context.Background(), time.Since(start))
	}
	return true
}
