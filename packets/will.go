// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package packets

// LastWill is the message the broker delivers on a client's ungraceful
// disconnect.
type LastWill struct {
	Topic   string
	Message []byte
	QoS     byte
	Retain  bool
}

// LastWillProperties holds the v5 properties attached to a last will.
type LastWillProperties struct {
	// DelayInterval is the delay in seconds before the will is published.
	DelayInterval *uint32
	// PayloadFormat indicates the format of the will payload.
	PayloadFormat *byte
	// MessageExpiry is the lifetime of the will message in seconds.
	MessageExpiry *uint32
	// ContentType describes the content of the will message.
	ContentType string
	// ResponseTopic is the topic name for a response message.
	ResponseTopic string
	// CorrelationData associates a future response with this message.
	CorrelationData []byte
	// User is a slice of user provided properties (key and value).
	User []UserProperty
}
