package briefing

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// allIndiaStates is the complete state list used for sanitization. The model
// sometimes names states that are not in the dataset; those mentions are
// replaced so the briefing never asserts facts about states it was not shown.
var allIndiaStates = []string{
	"Andhra Pradesh", "Arunachal Pradesh", "Assam", "Bihar", "Chhattisgarh", "Goa",
	"Gujarat", "Haryana", "Himachal Pradesh", "Jharkhand", "Karnataka", "Kerala",
	"Madhya Pradesh", "Maharashtra", "Manipur", "Meghalaya", "Mizoram", "Nagaland",
	"Odisha", "Punjab", "Rajasthan", "Sikkim", "Tamil Nadu", "Telangana",
	"Tripura", "Uttar Pradesh", "Uttarakhand", "West Bengal",
}

var bannedStarts = []string{
	"here's",
	"here is",
	"below is",
	"executive summary",
	"summary:",
	"based on",
	"okay",
	"certainly",
}

// CompactSummary reduces free-form model output to at most maxLines numbered,
// insight-dense lines, dropping filler preambles.
func CompactSummary(text string, maxLines int) string {
	var compact []string
	for _, line := range strings.Split(text, "\n") {
		normalized := strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "-•0123456789. "))
		if normalized == "" {
			continue
		}
		lowered := strings.ToLower(normalized)
		banned := false
		for _, prefix := range bannedStarts {
			if strings.HasPrefix(lowered, prefix) {
				banned = true
				break
			}
		}
		if banned ||
			strings.Contains(lowered, "concise executive summary") ||
			strings.Contains(lowered, "lines or less") {
			continue
		}
		compact = append(compact, normalized)
	}
	if len(compact) == 0 {
		return "1. No analysis text returned by the model."
	}
	if len(compact) > maxLines {
		compact = compact[:maxLines]
	}
	out := make([]string, len(compact))
	for i, line := range compact {
		out[i] = fmt.Sprintf("%d. %s", i+1, line)
	}
	return strings.Join(out, "\n")
}

// SanitizeStateMentions replaces mentions of states outside the allowed list
// with "other states". Longer names are replaced first so compound names are
// not partially rewritten.
func SanitizeStateMentions(text string, allowed []string) string {
	allowedSet := make(map[string]struct{}, len(allowed))
	for _, s := range allowed {
		s = strings.TrimSpace(s)
		if s != "" {
			allowedSet[strings.ToLower(s)] = struct{}{}
		}
	}
	names := make([]string, len(allIndiaStates))
	copy(names, allIndiaStates)
	sort.Slice(names, func(i, j int) bool { return len(names[i]) > len(names[j]) })

	sanitized := text
	for _, name := range names {
		if _, ok := allowedSet[strings.ToLower(name)]; ok {
			continue
		}
		pattern := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(name) + `\b`)
		sanitized = pattern.ReplaceAllString(sanitized, "other states")
	}
	return sanitized
}
