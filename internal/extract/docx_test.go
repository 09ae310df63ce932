package extract

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"quizzz-service/internal/domain"
)

func buildDocx(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range files {
		f, err := w.Create(name)
		if err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
		if _, err := f.Write([]byte(content)); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

const docxHeader = `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`

const docxFooter = `</w:body></w:document>`

func TestExtractBytesSimpleDocument(t *testing.T) {
	doc := docxHeader +
		`<w:p><w:r><w:t>1. What is 2+2?</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>A. 3</w:t></w:r></w:p>` +
		`<w:p><w:r><w:rPr><w:b/></w:rPr><w:t>B. 4</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>C. 5</w:t></w:r></w:p>` +
		docxFooter

	data := buildDocx(t, map[string]string{"word/document.xml": doc})
	draft, err := New(Config{}).ExtractBytes(data)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(draft.Questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(draft.Questions))
	}
	q := draft.Questions[0]
	if q.Text != "What is 2+2?" {
		t.Fatalf("question text = %q", q.Text)
	}
	if len(q.Choices) != 3 || !q.Choices[1].IsCorrect || q.Choices[1].Text != "4" {
		t.Fatalf("choices = %+v", q.Choices)
	}
	if len(draft.Warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", draft.Warnings)
	}
}

func TestExtractBytesNumberedLists(t *testing.T) {
	listPara := func(level int, runs string) string {
		return `<w:p><w:pPr><w:numPr><w:ilvl w:val="` + string(rune('0'+level)) +
			`"/><w:numId w:val="1"/></w:numPr></w:pPr>` + runs + `</w:p>`
	}
	doc := docxHeader +
		listPara(0, `<w:r><w:t>What is 2+2?</w:t></w:r>`) +
		listPara(1, `<w:r><w:t>3</w:t></w:r>`) +
		listPara(1, `<w:r><w:rPr><w:b/></w:rPr><w:t>4</w:t></w:r>`) +
		listPara(1, `<w:r><w:t>5</w:t></w:r>`) +
		docxFooter

	data := buildDocx(t, map[string]string{"word/document.xml": doc})
	draft, err := New(Config{}).ExtractBytes(data)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(draft.Questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(draft.Questions))
	}
	q := draft.Questions[0]
	if q.Text != "What is 2+2?" || len(q.Choices) != 3 {
		t.Fatalf("question = %+v", q)
	}
	if !q.Choices[1].IsCorrect {
		t.Fatalf("bold list item not marked correct: %+v", q.Choices)
	}
}

func TestExtractBytesListStyleFallback(t *testing.T) {
	styled := func(style, text string) string {
		return `<w:p><w:pPr><w:pStyle w:val="` + style + `"/></w:pPr><w:r><w:t>` + text + `</w:t></w:r></w:p>`
	}
	doc := docxHeader +
		styled("ListNumber", "What is 2+2?") +
		styled("ListNumber2", "3") +
		styled("ListNumber2", "4") +
		docxFooter

	data := buildDocx(t, map[string]string{"word/document.xml": doc})
	draft, err := New(Config{}).ExtractBytes(data)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(draft.Questions) != 1 || len(draft.Questions[0].Choices) != 2 {
		t.Fatalf("style-based list inference failed: %+v", draft.Questions)
	}
}

func TestExtractBytesStyleInheritedBold(t *testing.T) {
	styles := `<?xml version="1.0" encoding="UTF-8"?>
<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:style w:type="character" w:styleId="Strong"><w:rPr><w:b/></w:rPr></w:style>
</w:styles>`
	doc := docxHeader +
		`<w:p><w:r><w:t>1. Pick one</w:t></w:r></w:p>` +
		`<w:p><w:r><w:rPr><w:rStyle w:val="Strong"/></w:rPr><w:t>A. styled bold</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>B. plain</w:t></w:r></w:p>` +
		docxFooter

	data := buildDocx(t, map[string]string{
		"word/document.xml": doc,
		"word/styles.xml":   styles,
	})
	draft, err := New(Config{}).ExtractBytes(data)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	q := draft.Questions[0]
	if !q.Choices[0].IsCorrect || q.Choices[1].IsCorrect {
		t.Fatalf("style-inherited bold not detected: %+v", q.Choices)
	}
}

func TestExtractBytesBoldTurnedOff(t *testing.T) {
	doc := docxHeader +
		`<w:p><w:r><w:t>1. Pick one</w:t></w:r></w:p>` +
		`<w:p><w:r><w:rPr><w:b w:val="0"/></w:rPr><w:t>A. not actually bold</w:t></w:r></w:p>` +
		`<w:p><w:r><w:rPr><w:b w:val="true"/></w:rPr><w:t>B. bold</w:t></w:r></w:p>` +
		docxFooter

	data := buildDocx(t, map[string]string{"word/document.xml": doc})
	draft, err := New(Config{}).ExtractBytes(data)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	q := draft.Questions[0]
	if q.Choices[0].IsCorrect || !q.Choices[1].IsCorrect {
		t.Fatalf("w:val handling wrong: %+v", q.Choices)
	}
}

func TestExtractBytesUnreadable(t *testing.T) {
	if _, err := New(Config{}).ExtractBytes([]byte("not a zip archive")); !errors.Is(err, domain.ErrUnreadableDocument) {
		t.Fatalf("expected ErrUnreadableDocument for garbage, got %v", err)
	}

	// A valid zip without word/document.xml is still unreadable as docx.
	data := buildDocx(t, map[string]string{"mimetype": "text/plain"})
	if _, err := New(Config{}).ExtractBytes(data); !errors.Is(err, domain.ErrUnreadableDocument) {
		t.Fatalf("expected ErrUnreadableDocument for missing document.xml, got %v", err)
	}
}

func TestExtractBytesEmptyDocument(t *testing.T) {
	doc := docxHeader +
		`<w:p></w:p>` +
		`<w:p><w:r><w:t>   </w:t></w:r></w:p>` +
		docxFooter
	data := buildDocx(t, map[string]string{"word/document.xml": doc})
	if _, err := New(Config{}).ExtractBytes(data); !errors.Is(err, domain.ErrEmptyDocument) {
		t.Fatalf("expected ErrEmptyDocument, got %v", err)
	}
}

func TestExtractRejectsOversizedDocument(t *testing.T) {
	e := New(Config{MaxFileSize: 16})
	if _, err := e.Extract(bytes.NewReader(make([]byte, 64))); !errors.Is(err, domain.ErrDocumentTooLarge) {
		t.Fatalf("expected ErrDocumentTooLarge, got %v", err)
	}
}

func TestExtractBytesIdempotent(t *testing.T) {
	doc := docxHeader +
		`<w:p><w:r><w:t>1. Stable?</w:t></w:r></w:p>` +
		`<w:p><w:r><w:rPr><w:b/></w:rPr><w:t>A. yes</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>B. no</w:t></w:r></w:p>` +
		docxFooter
	data := buildDocx(t, map[string]string{"word/document.xml": doc})

	e := New(Config{})
	first, err := e.ExtractBytes(data)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	second, err := e.ExtractBytes(data)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	a, b := mustJSON(t, first), mustJSON(t, second)
	if a != b {
		t.Fatalf("same bytes produced different drafts:\n%s\n%s", a, b)
	}
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(data)
}
