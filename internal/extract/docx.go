package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"quizzz-service/internal/domain"
)

// parseDocx reads a .docx byte stream (a ZIP archive holding
// word/document.xml) and normalizes it to the paragraph abstraction the
// pipeline consumes: text, list metadata, and per-run bold flags with
// style-inherited bold already resolved.
func parseDocx(data []byte) ([]domain.Paragraph, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: open container: %v", domain.ErrUnreadableDocument, err)
	}

	var docFile, stylesFile *zip.File
	for _, f := range zr.File {
		switch f.Name {
		case "word/document.xml":
			docFile = f
		case "word/styles.xml":
			stylesFile = f
		}
	}
	if docFile == nil {
		return nil, fmt.Errorf("%w: word/document.xml not found in archive", domain.ErrUnreadableDocument)
	}

	boldStyles := map[string]bool{}
	if stylesFile != nil {
		// Best effort: a broken styles part degrades to explicit-bold only.
		if rc, err := stylesFile.Open(); err == nil {
			boldStyles = parseBoldStyles(rc)
			rc.Close()
		}
	}

	rc, err := docFile.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: open document.xml: %v", domain.ErrUnreadableDocument, err)
	}
	defer rc.Close()

	return parseDocumentXML(rc, boldStyles)
}

// parseBoldStyles collects the IDs of styles whose definition turns bold on.
// Runs or paragraphs referencing such a style are visually bold without any
// run-level flag.
func parseBoldStyles(r io.Reader) map[string]bool {
	bold := map[string]bool{}
	decoder := xml.NewDecoder(r)
	var styleID string
	for {
		tok, err := decoder.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "style":
				styleID = attrValue(t, "styleId")
			case "b":
				if styleID != "" && boldOn(t) {
					bold[styleID] = true
				}
			}
		case xml.EndElement:
			if t.Name.Local == "style" {
				styleID = ""
			}
		}
	}
	return bold
}

func parseDocumentXML(r io.Reader, boldStyles map[string]bool) ([]domain.Paragraph, error) {
	decoder := xml.NewDecoder(r)

	var paragraphs []domain.Paragraph

	var (
		inParagraph bool
		inParaProps bool
		inNumProps  bool
		inRun       bool
		inRunProps  bool
		inText      bool
	)
	var (
		para      domain.Paragraph
		paraStyle string
		paraText  strings.Builder
		runText   strings.Builder
		runBold   bool
		runStyle  string
	)

	for {
		tok, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				break
			}
			if len(paragraphs) == 0 {
				return nil, fmt.Errorf("%w: malformed document.xml: %v", domain.ErrUnreadableDocument, err)
			}
			// Salvage what was already parsed from a truncated body.
			break
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				inParagraph = true
				para = domain.Paragraph{}
				paraStyle = ""
				paraText.Reset()
			case "pPr":
				if inParagraph && !inRun {
					inParaProps = true
				}
			case "pStyle":
				if inParaProps {
					paraStyle = attrValue(t, "val")
				}
			case "numPr":
				if inParaProps {
					inNumProps = true
					para.ListItem = true
				}
			case "ilvl":
				if inNumProps {
					if lvl, err := strconv.Atoi(attrValue(t, "val")); err == nil {
						para.ListLevel = lvl
					}
				}
			case "r":
				if inParagraph {
					inRun = true
					runBold = false
					runStyle = ""
					runText.Reset()
				}
			case "rPr":
				if inRun {
					inRunProps = true
				}
			case "b":
				if inRunProps && boldOn(t) {
					runBold = true
				}
			case "rStyle":
				if inRunProps {
					runStyle = attrValue(t, "val")
				}
			case "t":
				if inRun {
					inText = true
				}
			}

		case xml.CharData:
			if inText {
				runText.Write(t)
			}

		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "rPr":
				inRunProps = false
			case "r":
				if inRun {
					text := runText.String()
					para.Runs = append(para.Runs, domain.Run{
						Text: text,
						Bold: runBold || boldStyles[runStyle] || boldStyles[paraStyle],
					})
					paraText.WriteString(text)
					inRun = false
				}
			case "numPr":
				inNumProps = false
			case "pPr":
				inParaProps = false
			case "p":
				if inParagraph {
					para.Text = paraText.String()
					if !para.ListItem {
						if lvl, ok := styleListLevel(paraStyle); ok {
							para.ListItem = true
							para.ListLevel = lvl
						}
					}
					paragraphs = append(paragraphs, para)
					inParagraph = false
				}
			}
		}
	}

	return paragraphs, nil
}

// styleListLevel infers list membership from built-in Word list style IDs
// when direct numbering metadata is absent: "ListNumber" is level 0,
// "ListNumber2" is level 1, and so on; same for "ListBullet".
func styleListLevel(styleID string) (int, bool) {
	lower := strings.ToLower(styleID)
	for _, prefix := range []string{"listnumber", "listbullet"} {
		if !strings.HasPrefix(lower, prefix) {
			continue
		}
		rest := lower[len(prefix):]
		if rest == "" {
			return 0, true
		}
		if n, err := strconv.Atoi(rest); err == nil && n >= 1 {
			return n - 1, true
		}
	}
	return 0, false
}

// boldOn reports whether a <w:b> element enables bold. An absent val
// attribute means on; "0"/"false"/"none" mean off.
func boldOn(el xml.StartElement) bool {
	val := attrValue(el, "val")
	switch strings.ToLower(val) {
	case "", "1", "true", "on":
		return true
	}
	return false
}

func attrValue(el xml.StartElement, name string) string {
	for _, attr := range el.Attr {
		if attr.Name.Local == name {
			return attr.Value
		}
	}
	return ""
}
