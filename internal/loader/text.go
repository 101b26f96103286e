package loader

import (
	"bufio"
	"io"
	"strings"
)

// TextLoader handles plain text files. Lines within a paragraph are kept;
// runs of blank lines collapse to one.
type TextLoader struct{}

func (l *TextLoader) Load(r io.Reader, filename string) (*Document, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var paras paragraphs
	var current strings.Builder

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			paras.add(current.String())
			current.Reset()
			continue
		}
		if current.Len() > 0 {
			current.WriteString("\n")
		}
		current.WriteString(line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	paras.add(current.String())

	return &Document{
		Title: titleFromFilename(filename),
		Text:  paras.String(),
	}, nil
}
