package briefing

import (
	"strings"
	"testing"
)

func TestCompactSummaryDropsPreamble(t *testing.T) {
	in := "Here's a summary of the results:\n\n" +
		"- Maharashtra leads GDP growth at 4.2%\n" +
		"2. Kerala holds the top welfare index\n" +
		"Based on the data, trade is concentrated in energy\n" +
		"Punjab shows net out-migration\n"
	out := CompactSummary(in, 10)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want 3: %q", len(lines), out)
	}
	if lines[0] != "1. Maharashtra leads GDP growth at 4.2%" {
		t.Fatalf("line 1 = %q", lines[0])
	}
	if lines[1] != "2. Kerala holds the top welfare index" {
		t.Fatalf("line 2 = %q", lines[1])
	}
	if lines[2] != "3. Punjab shows net out-migration" {
		t.Fatalf("line 3 = %q", lines[2])
	}
}

func TestCompactSummaryCapsLines(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 15; i++ {
		b.WriteString("insight line\n")
	}
	out := CompactSummary(b.String(), 10)
	if got := len(strings.Split(out, "\n")); got != 10 {
		t.Fatalf("lines = %d, want 10", got)
	}
}

func TestCompactSummaryEmptyFallback(t *testing.T) {
	out := CompactSummary("Okay, here is\n\nBelow is the analysis\n", 10)
	if out != "1. No analysis text returned by the model." {
		t.Fatalf("fallback = %q", out)
	}
}

func TestSanitizeStateMentions(t *testing.T) {
	allowed := []string{"Kerala", "Punjab"}
	in := "Kerala outperforms Telangana, while punjab trails Madhya Pradesh."
	out := SanitizeStateMentions(in, allowed)
	if strings.Contains(out, "Telangana") || strings.Contains(out, "Madhya Pradesh") {
		t.Fatalf("disallowed states survived: %q", out)
	}
	if !strings.Contains(out, "Kerala") || !strings.Contains(out, "punjab") {
		t.Fatalf("allowed states rewritten: %q", out)
	}
	if !strings.Contains(out, "other states") {
		t.Fatalf("replacements missing: %q", out)
	}
}

func TestSanitizeCompoundNamesBeforeShort(t *testing.T) {
	// "Uttar Pradesh" must be rewritten as one unit even though "Pradesh"
	// appears inside several names.
	out := SanitizeStateMentions("Uttar Pradesh grew steadily.", []string{"Bihar"})
	if strings.Contains(out, "Uttar") || strings.Contains(out, "Pradesh") {
		t.Fatalf("compound name leaked: %q", out)
	}
	if !strings.HasPrefix(out, "other states") {
		t.Fatalf("unexpected rewrite: %q", out)
	}
}
