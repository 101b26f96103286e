package topics

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"
)

type fakeProposer struct {
	mu     sync.Mutex
	calls  []int
	byPart map[int][]Topic
	errs   map[int]error
	delay  func(part int) time.Duration
}

func (f *fakeProposer) ProposeTopics(ctx context.Context, chunk string, part, total int) ([]Topic, error) {
	f.mu.Lock()
	f.calls = append(f.calls, part)
	f.mu.Unlock()
	if f.delay != nil {
		time.Sleep(f.delay(part))
	}
	if err := f.errs[part]; err != nil {
		return nil, err
	}
	return f.byPart[part], nil
}

func (f *fakeProposer) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// fourSectionDoc has four paragraphs, each starting with SECTION-n and long
// enough that a 200 character chunk size puts each in its own chunk.
func fourSectionDoc() string {
	var paras []string
	for i := 1; i <= 4; i++ {
		paras = append(paras, fmt.Sprintf("SECTION-%d %s", i, strings.Repeat("word ", 30)))
	}
	return strings.Join(paras, "\n\n")
}

func sectionTopic(i int) Topic {
	return Topic{
		Title:       fmt.Sprintf("Distinct Title %c", 'A'+i-1),
		Description: fmt.Sprintf("section %d", i),
		StartMarker: fmt.Sprintf("SECTION-%d", i),
	}
}

func testConfig() Config {
	return Config{ChunkSize: 200, MinWords: 1, MaxConcurrent: 4}
}

func TestDetector_PreservesChunkOrder(t *testing.T) {
	fp := &fakeProposer{
		byPart: map[int][]Topic{
			1: {sectionTopic(1)},
			2: {sectionTopic(2)},
			3: {sectionTopic(3)},
			4: {sectionTopic(4)},
		},
		// Later chunks finish first.
		delay: func(part int) time.Duration { return time.Duration(5-part) * 5 * time.Millisecond },
	}
	d := NewDetector(fp, nil, testConfig())

	got := d.DetectTopics(context.Background(), fourSectionDoc())
	if len(got) != 4 {
		t.Fatalf("expected 4 topics, got %d: %+v", len(got), got)
	}
	for i, tp := range got {
		if tp != sectionTopic(i+1) {
			t.Errorf("topic %d: expected %+v, got %+v", i, sectionTopic(i+1), tp)
		}
	}
	if fp.callCount() != 4 {
		t.Errorf("expected 4 proposer calls, got %d", fp.callCount())
	}
}

func TestDetector_MalformedChunkSkipped(t *testing.T) {
	fp := &fakeProposer{
		byPart: map[int][]Topic{
			1: {sectionTopic(1)},
			3: {sectionTopic(3)},
			4: {sectionTopic(4)},
		},
		errs: map[int]error{
			2: fmt.Errorf("%w: unexpected token", ErrMalformed),
		},
	}
	d := NewDetector(fp, nil, testConfig())

	var reports []ChunkReport
	got := d.Detect(context.Background(), fourSectionDoc(), func(r ChunkReport) {
		reports = append(reports, r)
	})

	if len(got) != 3 {
		t.Fatalf("expected 3 topics, got %d", len(got))
	}
	if got[1].StartMarker != "SECTION-3" {
		t.Errorf("expected SECTION-3 second, got %q", got[1].StartMarker)
	}
	if len(reports) != 4 {
		t.Fatalf("expected 4 chunk reports, got %d", len(reports))
	}
	failed := 0
	for _, r := range reports {
		if r.Total != 4 {
			t.Errorf("expected total 4, got %d", r.Total)
		}
		if r.Err != nil {
			failed++
			if !errors.Is(r.Err, ErrMalformed) {
				t.Errorf("expected malformed error, got %v", r.Err)
			}
		}
	}
	if failed != 1 {
		t.Errorf("expected 1 failed chunk, got %d", failed)
	}
}

func TestDetector_AllChunksFailYieldsSentinel(t *testing.T) {
	boom := errors.New("connection refused")
	fp := &fakeProposer{errs: map[int]error{1: boom, 2: boom, 3: boom, 4: boom}}
	d := NewDetector(fp, nil, testConfig())

	doc := fourSectionDoc()
	got := d.DetectTopics(context.Background(), doc)
	if len(got) != 1 || !IsFullDocument(got[0]) {
		t.Fatalf("expected sentinel topic, got %+v", got)
	}
	if got[0].StartMarker != doc[:50] {
		t.Errorf("expected sentinel marker to be first 50 chars, got %q", got[0].StartMarker)
	}
}

func TestDetector_EmptyDocument(t *testing.T) {
	fp := &fakeProposer{}
	d := NewDetector(fp, nil, testConfig())

	for _, text := range []string{"", "  \n\n  "} {
		got := d.DetectTopics(context.Background(), text)
		if len(got) != 1 || !IsFullDocument(got[0]) {
			t.Errorf("text=%q: expected sentinel, got %+v", text, got)
		}
	}
	if fp.callCount() != 0 {
		t.Errorf("expected no proposer calls, got %d", fp.callCount())
	}
}

func TestDetector_DeduplicatesAcrossChunks(t *testing.T) {
	dup := sectionTopic(1)
	dup.StartMarker = "SECTION-2"
	fp := &fakeProposer{
		byPart: map[int][]Topic{
			1: {sectionTopic(1)},
			2: {dup},
			3: {sectionTopic(3)},
		},
	}
	d := NewDetector(fp, nil, testConfig())

	got := d.DetectTopics(context.Background(), fourSectionDoc())
	if len(got) != 2 {
		t.Fatalf("expected 2 topics after dedup, got %d: %+v", len(got), got)
	}
	if got[0].StartMarker != "SECTION-1" || got[1].StartMarker != "SECTION-3" {
		t.Errorf("unexpected markers %q, %q", got[0].StartMarker, got[1].StartMarker)
	}
}

func TestDetector_MergesSmallTopics(t *testing.T) {
	fp := &fakeProposer{
		byPart: map[int][]Topic{
			1: {sectionTopic(1)},
			2: {sectionTopic(2)},
		},
	}
	cfg := testConfig()
	cfg.MinWords = 300
	d := NewDetector(fp, nil, cfg)

	got := d.DetectTopics(context.Background(), fourSectionDoc())
	if len(got) != 1 {
		t.Fatalf("expected 1 merged topic, got %d", len(got))
	}
	if got[0].Title != "Distinct Title A & Distinct Title B" {
		t.Errorf("unexpected merged title %q", got[0].Title)
	}
}

func TestNewDetector_Defaults(t *testing.T) {
	d := NewDetector(&fakeProposer{}, nil, Config{})
	if d.cfg != DefaultConfig() {
		t.Errorf("expected defaults %+v, got %+v", DefaultConfig(), d.cfg)
	}
}
