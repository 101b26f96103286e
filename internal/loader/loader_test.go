package loader

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fumiama/go-docx"
)

func load(t *testing.T, filename, input string) *Document {
	t.Helper()
	l, err := ForFile(filename, Options{})
	if err != nil {
		t.Fatalf("ForFile(%q): %v", filename, err)
	}
	doc, err := l.Load(strings.NewReader(input), filename)
	if err != nil {
		t.Fatalf("Load(%q): %v", filename, err)
	}
	return doc
}

func TestForFile(t *testing.T) {
	tests := []struct {
		filename string
		wantErr  bool
	}{
		{"notes.txt", false},
		{"README.MD", false},
		{"book.markdown", false},
		{"page.htm", false},
		{"paper.pdf", false},
		{"report.docx", false},
		{"data.csv", false},
		{"slides.pptx", true},
		{"noext", true},
	}
	for _, tc := range tests {
		_, err := ForFile(tc.filename, Options{})
		if (err != nil) != tc.wantErr {
			t.Errorf("ForFile(%q) error = %v, wantErr %v", tc.filename, err, tc.wantErr)
		}
		if IsSupportedExtension(tc.filename) == tc.wantErr {
			t.Errorf("IsSupportedExtension(%q) disagrees with ForFile", tc.filename)
		}
	}
}

func TestForFile_PDFOptions(t *testing.T) {
	l, err := ForFile("a.pdf", Options{PDFFallbackPdftotext: true})
	if err != nil {
		t.Fatal(err)
	}
	if p, ok := l.(*PDFLoader); !ok || !p.FallbackPdftotext {
		t.Errorf("expected PDF loader with fallback, got %#v", l)
	}
}

func TestTextLoader(t *testing.T) {
	input := "Chapter 1\r\nFirst line.\nSecond line.\n\n\n\n  \nChapter 2\nMore text.\n"
	doc := load(t, "dir/notes.txt", input)

	if doc.Title != "notes" {
		t.Errorf("expected title %q, got %q", "notes", doc.Title)
	}
	want := "Chapter 1\nFirst line.\nSecond line.\n\nChapter 2\nMore text."
	if doc.Text != want {
		t.Errorf("text = %q, want %q", doc.Text, want)
	}
}

func TestTextLoader_Empty(t *testing.T) {
	doc := load(t, "empty.txt", "\n\n  \n")
	if doc.Text != "" {
		t.Errorf("expected empty text, got %q", doc.Text)
	}
}

func TestMarkdownLoader(t *testing.T) {
	input := "# Prompt Engineering\n\nIntro text\nspans lines.\n\n## Zero Shot\n\n- first item\n- second item\n\n> quoted *emphasis*\n\n```go\nfmt.Println(1)\n```\n\n## Few Shot\n\nSee <https://example.com>.\n"
	doc := load(t, "guide.md", input)

	if doc.Title != "Prompt Engineering" {
		t.Errorf("expected title from h1, got %q", doc.Title)
	}
	want := []string{
		"Prompt Engineering",
		"Intro text spans lines.",
		"Zero Shot",
		"first item",
		"second item",
		"quoted emphasis",
		"fmt.Println(1)",
		"Few Shot",
		"See https://example.com.",
	}
	got := strings.Split(doc.Text, "\n\n")
	if len(got) != len(want) {
		t.Fatalf("expected %d paragraphs, got %d: %q", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("paragraph %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestMarkdownLoader_NoHeadingUsesFilename(t *testing.T) {
	doc := load(t, "plain.markdown", "just text\n")
	if doc.Title != "plain" || doc.Text != "just text" {
		t.Errorf("unexpected doc: %+v", doc)
	}
}

func TestHTMLLoader(t *testing.T) {
	input := `<html><head><title>My Page</title><style>p{}</style></head>
<body>
<nav><a href="/">Home</a></nav>
<header>Site header</header>
<h1>Chapter   One</h1>
<p>Hello <b>world</b>!
   Next line.</p>
<ul><li>alpha</li><li>beta</li></ul>
<script>var x = 1;</script>
<footer>Copyright</footer>
</body></html>`
	doc := load(t, "page.html", input)

	if doc.Title != "My Page" {
		t.Errorf("expected title from <title>, got %q", doc.Title)
	}
	want := "Chapter One\n\nHello world! Next line.\n\nalpha\n\nbeta"
	if doc.Text != want {
		t.Errorf("text = %q, want %q", doc.Text, want)
	}
}

func TestCSVLoader(t *testing.T) {
	input := "name,score\nada,10\nbob,7,extra\n"
	doc := load(t, "scores.csv", input)

	if doc.Title != "scores" {
		t.Errorf("expected title %q, got %q", "scores", doc.Title)
	}
	for _, want := range []string{
		"Columns: name, score",
		"Rows 2-3",
		"name: ada, score: 10",
		"name: bob, score: 7, extra",
	} {
		if !strings.Contains(doc.Text, want) {
			t.Errorf("expected text to contain %q, got %q", want, doc.Text)
		}
	}
}

func TestCSVLoader_Batches(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("n\n")
	for i := 0; i < 45; i++ {
		sb.WriteString("x\n")
	}
	doc := load(t, "big.csv", sb.String())
	for _, want := range []string{"Rows 2-21", "Rows 22-41", "Rows 42-46"} {
		if !strings.Contains(doc.Text, want) {
			t.Errorf("expected batch header %q", want)
		}
	}
}

func TestDOCXLoader(t *testing.T) {
	f := docx.New()
	f.AddParagraph().Style("Title").AddText("Study Guide")
	f.AddParagraph().Style("Heading1").AddText("Chapter 1")
	f.AddParagraph().AddText("Body text continues.")
	f.AddParagraph()

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		t.Fatalf("write docx: %v", err)
	}

	doc := load(t, "guide.docx", buf.String())
	if doc.Title != "Study Guide" {
		t.Errorf("expected title from Title style, got %q", doc.Title)
	}
	want := "Study Guide\n\nChapter 1\n\nBody text continues."
	if doc.Text != want {
		t.Errorf("text = %q, want %q", doc.Text, want)
	}
}

func TestPDFLoader_InvalidFile(t *testing.T) {
	l := &PDFLoader{}
	if _, err := l.Load(strings.NewReader("not a pdf"), "bad.pdf"); err == nil {
		t.Fatal("expected error for invalid pdf")
	}
}
