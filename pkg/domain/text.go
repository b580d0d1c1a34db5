package domain

import (
	"fmt"
	"strings"
	"time"
)

// TruncateWords shortens text to at most n words, appending an ellipsis
// when anything was cut off
func TruncateWords(text string, n int) string {
	if text == "" {
		return ""
	}
	words := strings.Fields(text)
	if len(words) <= n {
		return text
	}
	return strings.Join(words[:n], " ") + "..."
}

// RelativeTime renders t as a human label relative to now,
// e.g. "Just now", "30m ago", "2h ago", "3d ago"
func RelativeTime(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "Just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}
