// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package filter

import (
	"fmt"

	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"

	"github.com/absmach/routemq/packets"
)

// Compression identifies a payload compression codec.
type Compression string

// Supported codecs.
const (
	CompressionS2   Compression = "s2"
	CompressionZstd Compression = "zstd"
)

// CompressionProp is the user property recording the codec applied to a
// payload, read by the decoding side.
const CompressionProp = "compression"

// Compressor is a publish filter that transparently compresses payloads
// at or above a size threshold, recording the codec in a user property.
// It accepts every publish; payloads that do not shrink are left
// untouched. Sessions without v5 properties are passed through, since
// there is no place to record the codec. The zstd encoder is safe for
// concurrent EncodeAll calls, and s2 block encoding is stateless.
type Compressor struct {
	codec   Compression
	minSize int
	zenc    *zstd.Encoder
}

// NewCompressor creates a compressing filter. Payloads shorter than
// minSize bytes are never touched.
func NewCompressor(codec Compression, minSize int) (*Compressor, error) {
	c := &Compressor{codec: codec, minSize: minSize}
	switch codec {
	case CompressionS2:
	case CompressionZstd:
		zenc, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
		}
		c.zenc = zenc
	default:
		return nil, fmt.Errorf("unknown compression codec %q", codec)
	}
	return c, nil
}

// Filter implements PublishFilter.
func (c *Compressor) Filter(ctx *Context, p *packets.Publish, props *packets.PublishProperties) bool {
	if props == nil || len(p.Payload) < c.minSize {
		return true
	}
	for _, u := range props.User {
		if u.Key == CompressionProp {
			// Already compressed upstream.
			return true
		}
	}

	var compressed []byte
	switch c.codec {
	case CompressionZstd:
		compressed = c.zenc.EncodeAll(p.Payload, nil)
	default:
		compressed = s2.Encode(nil, p.Payload)
	}
	if len(compressed) >= len(p.Payload) {
		return true
	}

	p.Payload = compressed
	props.User = append(props.User, packets.UserProperty{
		Key:   CompressionProp,
		Value: string(c.codec),
	})
	return true
}
