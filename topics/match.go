// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package topics provides topic name and filter validation and the MQTT
// delivery matching rules used by the router to match subscriptions.
// Access-control matching lives in package acl and follows different
// semantics: it has no '$' special case and '#' there never matches the
// parent level.
package topics

import "strings"

// Match checks if the topic matches the given filter according to MQTT
// wildcard rules:
//   - filter can contain '+' (single level) and a trailing '#'
//     (the level itself and every level below it);
//   - topic must not contain wildcards;
//   - topics starting with '$' are only matched by filters that spell
//     out the '$' level explicitly.
func Match(filter, topic string) bool {
	if filter == "" || topic == "" {
		return false
	}
	if filter == topic {
		return true
	}

	filterLevels := strings.Split(filter, "/")
	topicLevels := strings.Split(topic, "/")

	// "The Server MUST NOT match Topic Filters starting with a wildcard
	// character with Topic Names beginning with a $ character."
	if strings.HasPrefix(topic, "$") {
		if filter[0] != '$' {
			return false
		}
		if filterLevels[0] == "+" || filterLevels[0] == "#" {
			return false
		}
	}

	for i, fLevel := range filterLevels {
		if fLevel == "#" {
			// '#' matches the parent and all children.
			return true
		}
		if i >= len(topicLevels) {
			// Filter is longer than the topic and the extra level is
			// not '#'.
			return false
		}
		if fLevel == "+" {
			continue
		}
		if fLevel != topicLevels[i] {
			return false
		}
	}

	// No '#' consumed the tail, so the lengths must agree.
	return len(filterLevels) == len(topicLevels)
}
