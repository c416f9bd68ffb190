// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package filter

import "github.com/absmach/routemq/packets"

// MaxPayloadSize is a publish filter that rejects payloads above a
// configured size. A limit of 0 disables the check.
type MaxPayloadSize struct {
	limit int
}

// NewMaxPayloadSize creates a size-limiting filter.
func NewMaxPayloadSize(limit int) *MaxPayloadSize {
	return &MaxPayloadSize{limit: limit}
}

// Filter implements PublishFilter.
func (f *MaxPayloadSize) Filter(ctx *Context, p *packets.Publish, props *packets.PublishProperties) bool {
	return f.limit <= 0 || len(p.Payload) <= f.limit
}
