package extract

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

// parseDOCX extracts the ordered paragraph texts from a DOCX container and
// joins them with newlines. Empty paragraphs are preserved so the output
// mirrors the document's line structure.
func parseDOCX(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse DOCX container: %w", err)
	}
	defer doc.Close()

	paragraphs, err := paragraphsFromDocumentXML(doc.Editable().GetContent())
	if err != nil {
		return "", fmt.Errorf("failed to read document body: %w", err)
	}

	return strings.Join(paragraphs, "\n"), nil
}

// paragraphsFromDocumentXML walks word/document.xml and collects the text of
// each w:p element in order. Only character data inside w:t runs counts as
// paragraph text; w:tab becomes a tab character.
func paragraphsFromDocumentXML(content string) ([]string, error) {
	decoder := xml.NewDecoder(strings.NewReader(content))

	var (
		paragraphs []string
		current    strings.Builder
		inPara     bool
		inText     bool
	)

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				inPara = true
				current.Reset()
			case "t":
				inText = inPara
			case "tab":
				if inPara {
					current.WriteByte('\t')
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "p":
				if inPara {
					paragraphs = append(paragraphs, current.String())
					inPara = false
				}
			case "t":
				inText = false
			}
		case xml.CharData:
			if inText {
				current.Write(t)
			}
		}
	}

	return paragraphs, nil
}
