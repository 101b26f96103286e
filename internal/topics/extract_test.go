package topics

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestExtract_BetweenMarkers(t *testing.T) {
	full := "Preface text.\n\nChapter One: Intro to X and more text.\n\nChapter Two: Basics follow here."
	got := Extract(full, "Chapter One: Intro", "Chapter Two: Basics")
	want := "Chapter One: Intro to X and more text."
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestExtract_NoNextMarkerRunsToEnd(t *testing.T) {
	full := "Intro.\n\nChapter Two: Basics follow here.\n"
	got := Extract(full, "Chapter Two", "")
	if got != "Chapter Two: Basics follow here." {
		t.Errorf("unexpected content %q", got)
	}
}

func TestExtract_UnresolvedStartShortDocument(t *testing.T) {
	full := " " + strings.Repeat("a", 4999)
	got := Extract(full, "nonexistent marker text", "")
	if got != full {
		t.Errorf("expected the whole (untrimmed) document, got %d chars", len(got))
	}
}

func TestExtract_UnresolvedStartLongDocument(t *testing.T) {
	full := strings.Repeat("b", 20000)
	got := Extract(full, "nonexistent marker text", "also missing")
	if len(got) != 10000 {
		t.Errorf("expected 10000 chars fallback, got %d", len(got))
	}
}

func TestExtract_ResolvedStartCappedAt50000(t *testing.T) {
	full := "lead in START HERE " + strings.Repeat("c", 60000)
	got := Extract(full, "START HERE", "")
	if utf8.RuneCountInString(got) != 50000 {
		t.Errorf("expected 50000 chars, got %d", utf8.RuneCountInString(got))
	}
	if !strings.HasPrefix(got, "START HERE") {
		t.Errorf("expected content to begin at the marker, got %q", got[:20])
	}
}

func TestExtract_UnresolvedEndUsesCap(t *testing.T) {
	full := "Alpha section text. Beta section text."
	got := Extract(full, "Beta section", "Gamma never appears")
	if got != "Beta section text." {
		t.Errorf("expected rest of document, got %q", got)
	}
}

func TestExtract_StartFallsBackToTenWords(t *testing.T) {
	lead := "one two three four five six seven eight nine ten"
	full := "Header.\n" + lead + " eleven twelve and the rest."
	marker := lead + " PARAPHRASED by the model"
	got := Extract(full, marker, "")
	if !strings.HasPrefix(got, lead) {
		t.Errorf("expected 10-word prefix match, got %q", got)
	}
}

func TestExtract_StartFallsBackToFiveWords(t *testing.T) {
	full := "Header.\nalpha beta gamma delta epsilon zeta eta."
	got := Extract(full, "alpha beta gamma delta epsilon ZETA-ish theta", "")
	if got != "alpha beta gamma delta epsilon zeta eta." {
		t.Errorf("expected 5-word prefix match, got %q", got)
	}
}

func TestExtract_MarkerWhitespaceNormalized(t *testing.T) {
	full := "xx Chapter One Intro yy"
	got := Extract(full, "Chapter   One\nIntro", "")
	if got != "Chapter One Intro yy" {
		t.Errorf("unexpected content %q", got)
	}
}

func TestExtract_NextMarkerFallsBackToTenWords(t *testing.T) {
	next := "n1 n2 n3 n4 n5 n6 n7 n8 n9 n10"
	full := "START body text. " + next + " n11 tail."
	got := Extract(full, "START", next+" SOMETHING ELSE")
	if got != "START body text." {
		t.Errorf("expected content up to the partial next marker, got %q", got)
	}
}

func TestExtract_NextMarkerSearchedAfterStart(t *testing.T) {
	full := "NEXT early. START middle text. NEXT later."
	got := Extract(full, "START", "NEXT")
	if got != "START middle text." {
		t.Errorf("expected next marker occurrence after start, got %q", got)
	}
}

func TestExtract_MultibyteFallbackStaysValid(t *testing.T) {
	full := strings.Repeat("é", 20000)
	got := Extract(full, "missing", "")
	if !utf8.ValidString(got) {
		t.Fatal("fallback produced invalid UTF-8")
	}
	if utf8.RuneCountInString(got) != 10000 {
		t.Errorf("expected 10000 characters, got %d", utf8.RuneCountInString(got))
	}
}

func TestContents(t *testing.T) {
	full := "A-MARK first.\n\nB-MARK second.\n\nC-MARK third."
	ts := []Topic{{StartMarker: "A-MARK"}, {StartMarker: "B-MARK"}, {StartMarker: "C-MARK"}}
	got := Contents(full, ts)
	want := []string{"A-MARK first.", "B-MARK second.", "C-MARK third."}
	if len(got) != len(want) {
		t.Fatalf("expected %d contents, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("content %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestContentAt_OutOfRange(t *testing.T) {
	ts := []Topic{{StartMarker: "x"}}
	if ContentAt("x", ts, -1) != "" || ContentAt("x", ts, 1) != "" {
		t.Error("expected empty content for out-of-range index")
	}
}
