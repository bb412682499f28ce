package utils

import "strings"

// TrimTags trims every tag and drops empties, preserving order.
func TrimTags(raw []string) []string {
	tags := make([]string, 0, len(raw))
	for _, t := range raw {
		if trimmed := strings.TrimSpace(t); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}
	return tags
}

func StringPtr(s string) *string {
	return &s
}
