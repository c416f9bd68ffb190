// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package packets holds the in-memory message representations consumed
// by the router core: publishes, their v5 properties and last-will
// state. Wire encoding and decoding belong to the protocol codecs and
// are not part of this module.
package packets

// UserProperty is a client-provided key/value property pair.
type UserProperty struct {
	Key   string
	Value string
}

// Publish is an internal representation of the fields of the PUBLISH
// MQTT packet.
type Publish struct {
	Properties *PublishProperties
	TopicName  string
	ID         uint16
	QoS        byte
	Retain     bool
	Payload    []byte
}

// PublishProperties holds the v5 properties of a PUBLISH packet.
type PublishProperties struct {
	// PayloadFormat indicates the format of the payload of the message:
	// 0 is unspecified bytes, 1 is UTF8 encoded character data.
	PayloadFormat *byte
	// MessageExpiry is the lifetime of the message in seconds.
	MessageExpiry *uint32
	// TopicAlias is the numeric alias substituted for the topic name.
	TopicAlias *uint16
	// ResponseTopic is a UTF8 string indicating the topic name to which
	// any response to this message should be sent.
	ResponseTopic string
	// CorrelationData is binary data used to associate future response
	// messages with the original request message.
	CorrelationData []byte
	// User is a slice of user provided properties (key and value).
	User []UserProperty
	// SubscriptionIdentifiers are the identifiers of the subscriptions
	// to which the Publish matched.
	SubscriptionIdentifiers []int
	// ContentType is a UTF8 string describing the content of the
	// message, for example it could be a MIME type.
	ContentType string
}
