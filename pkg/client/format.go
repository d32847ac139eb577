package client

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

const wordsPerMinute = 225

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// Excerpt truncates text to at most max runes, cutting on a word boundary
// where possible and appending an ellipsis.
func Excerpt(text string, max int) string {
	text = strings.TrimSpace(text)
	runes := []rune(text)
	if max <= 0 || len(runes) <= max {
		return text
	}

	cut := string(runes[:max])
	if idx := strings.LastIndex(cut, " "); idx > max/2 {
		cut = cut[:idx]
	}
	return strings.TrimSpace(cut) + "..."
}

// ReadingTime estimates the reading time of HTML content in whole minutes,
// never below one.
func ReadingTime(content string) int {
	words := len(strings.Fields(tagPattern.ReplaceAllString(content, " ")))
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

// AbbreviateViews formats a view count the way the site displays it:
// 999 stays as-is, 1200 becomes "1.2K", 3400000 becomes "3.4M".
func AbbreviateViews(n int) string {
	switch {
	case n >= 1_000_000:
		return trimZero(fmt.Sprintf("%.1fM", float64(n)/1_000_000))
	case n >= 1_000:
		return trimZero(fmt.Sprintf("%.1fK", float64(n)/1_000))
	default:
		return fmt.Sprintf("%d", n)
	}
}

func trimZero(s string) string {
	return strings.Replace(s, ".0", "", 1)
}

// FormatDate renders an absolute date, e.g. "January 2, 2026".
func FormatDate(t time.Time) string {
	return t.Format("January 2, 2006")
}

// RelativeDate renders a coarse relative timestamp against now, falling back
// to the absolute form beyond thirty days.
func RelativeDate(t time.Time) string {
	return relativeDateAt(t, time.Now())
}

func relativeDateAt(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return plural(int(d.Minutes()), "minute")
	case d < 24*time.Hour:
		return plural(int(d.Hours()), "hour")
	case d < 30*24*time.Hour:
		return plural(int(d.Hours()/24), "day")
	default:
		return FormatDate(t)
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
