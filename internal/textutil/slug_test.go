package textutil

import (
	"strings"
	"testing"
	"time"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Clean Water Project", "clean-water-project"},
		{"  Solar   Lamps for Kakuma  ", "solar-lamps-for-kakuma"},
		{"Mobile Clinic: Phase #2!", "mobile-clinic-phase-2"},
		{"already-a-slug", "already-a-slug"},
		{"--Leading and trailing--", "leading-and-trailing"},
		{"Multiple---hyphens -- here", "multiple-hyphens-here"},
		{"Café Résumé", "caf-r-sum"},
		{"!!!", "story"},
		{"", "story"},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			if got := Slugify(tt.title); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestSlugify_Deterministic(t *testing.T) {
	title := "Community Garden in Zaatari"
	first := Slugify(title)
	for i := 0; i < 5; i++ {
		if got := Slugify(title); got != first {
			t.Fatalf("Slugify() not deterministic: %q vs %q", got, first)
		}
	}
}

func TestSuffixSlug(t *testing.T) {
	at := time.Unix(1700000000, 0)

	if got := SuffixSlug("clean-water-project", at, 1); got != "clean-water-project-1700000000" {
		t.Errorf("SuffixSlug attempt 1 = %q", got)
	}
	if got := SuffixSlug("clean-water-project", at, 3); got != "clean-water-project-1700000000-3" {
		t.Errorf("SuffixSlug attempt 3 = %q", got)
	}
}

func TestSlugLengthIsBounded(t *testing.T) {
	at := time.Unix(1700000000, 0)
	long := Slugify(strings.Repeat("a", 300))
	if len(long) != MaxSlugLength {
		t.Fatalf("Slugify(300 chars) length = %d, want %d", len(long), MaxSlugLength)
	}

	for _, attempt := range []int{1, 2, 12} {
		got := SuffixSlug(Slugify(strings.Repeat("a", 255)), at, attempt)
		if len(got) > MaxSlugLength {
			t.Errorf("SuffixSlug attempt %d length = %d, exceeds %d", attempt, len(got), MaxSlugLength)
		}
		if !strings.HasPrefix(got, "aaaa") || !strings.Contains(got, "-1700000000") {
			t.Errorf("SuffixSlug attempt %d = %q, want truncated base plus suffix", attempt, got)
		}
	}

	// a cut that lands on a hyphen must not leave "--"
	hyphenated := strings.Repeat("ab-", 100)
	got := SuffixSlug(Slugify(hyphenated), at, 1)
	if strings.Contains(got, "--") {
		t.Errorf("SuffixSlug left a double hyphen: %q", got)
	}
}

func TestSummarize(t *testing.T) {
	short := "A short description."
	if got := Summarize(short); got != short {
		t.Errorf("Summarize(short) = %q, want unchanged", got)
	}

	exact := strings.Repeat("a", SummaryLength)
	if got := Summarize(exact); got != exact {
		t.Errorf("Summarize(exact) changed a %d-char description", SummaryLength)
	}

	long := strings.Repeat("abcdefghij", 30)
	got := Summarize(long)
	if len(got) != SummaryLength {
		t.Errorf("Summarize(long) length = %d, want %d", len(got), SummaryLength)
	}
	if got != long[:SummaryLength] {
		t.Error("Summarize(long) should be the leading prefix")
	}

	multibyte := strings.Repeat("é", 250)
	got = Summarize(multibyte)
	if n := len([]rune(got)); n != SummaryLength {
		t.Errorf("Summarize(multibyte) rune count = %d, want %d", n, SummaryLength)
	}
}

func BenchmarkSlugify(b *testing.B) {
	title := "Refugee-led Solar Microgrid Cooperative: Phase 2 (Kakuma Camp)"
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		Slugify(title)
	}
}
