package routing

import (
	"sort"
	"strings"
)

// Classifier maps request paths to route classes using allowlist rules,
// longest prefix first.
type Classifier struct {
	rules []AllowlistRule
}

func NewClassifier(rules []AllowlistRule) *Classifier {
	c := &Classifier{rules: make([]AllowlistRule, 0, len(rules))}
	for _, rule := range rules {
		if rule.Prefix = strings.TrimSpace(rule.Prefix); rule.Prefix != "" {
			c.rules = append(c.rules, rule)
		}
	}
	sort.SliceStable(c.rules, func(i, j int) bool {
		return len(c.rules[i].Prefix) > len(c.rules[j].Prefix)
	})
	return c
}

// MatchAllowlist reports the class of the most specific rule matching path.
func (c *Classifier) MatchAllowlist(path string) (RouteClass, bool) {
	for _, rule := range c.rules {
		if HasPathPrefixOnBoundary(path, rule.Prefix) {
			return rule.Class, true
		}
	}
	return "", false
}

// ClassifyPath returns the class of path; unmatched paths are UI pages.
func (c *Classifier) ClassifyPath(path string) RouteClass {
	if class, ok := c.MatchAllowlist(path); ok {
		return class
	}
	return RouteClassUI
}

// HasPathPrefixOnBoundary is strings.HasPrefix that refuses to split a path
// segment: "/logs" matches "/logs" and "/logs/x" but not "/logsearch".
// A prefix ending in "/" matches anything below it.
func HasPathPrefixOnBoundary(path, prefix string) bool {
	rest, ok := strings.CutPrefix(path, prefix)
	switch {
	case prefix == "" || !ok:
		return false
	case rest == "", strings.HasSuffix(prefix, "/"):
		return true
	default:
		return rest[0] == '/'
	}
}
