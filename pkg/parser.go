package symbolcleanup

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"regexp"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/net/html/charset"
)

var (
	encodingDecl = regexp.MustCompile(`encoding\s*=\s*(?:"([^"]*)"|'([^']*)')`)
	// general entities with a literal value; parameter (%) and external entities are not expanded
	entityDecl = regexp.MustCompile(`<!ENTITY\s+([^\s%"']+)\s+(?:"([^"]*)"|'([^']*)')\s*>`)
)

// Parse reads data as strict XML.
// General entities declared in the internal DTD subset are expanded.
func Parse(data []byte) (doc *etree.Document, err error) {
	// 0.0: initialize
	doc = etree.NewDocument()
	doc.ReadSettings = etree.ReadSettings{
		CharsetReader: charset.NewReaderLabel,
		PreserveCData: true,
		Entity:        internalEntities(data),
	}
	doc.WriteSettings.CanonicalText = true

	// 1.0: unmarshal xml
	if err = doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	if doc.Root() == nil {
		return nil, fmt.Errorf("%w: no root element", ErrParse)
	}

	// 2.0: output is always written as UTF-8, so the declaration has to say so
	for _, t := range doc.Child {
		if pi, ok := t.(*etree.ProcInst); ok && pi.Target == "xml" {
			pi.Inst = encodingDecl.ReplaceAllStringFunc(pi.Inst, func(decl string) string {
				m := encodingDecl.FindStringSubmatch(decl)
				if _, name := charset.Lookup(m[1] + m[2]); name == "utf-8" {
					return decl
				}

				return `encoding="UTF-8"`
			})
		}
	}

	// N.N: return
	return doc, nil
}

// internalEntities collects <!ENTITY name "value"> declarations from the
// DOCTYPE preceding the root element. Errors are left for the real parse.
func internalEntities(data []byte) map[string]string {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	decoder.CharsetReader = charset.NewReaderLabel

	var entities map[string]string
	for {
		tok, err := decoder.RawToken()
		if err != nil {
			return entities
		}

		switch t := tok.(type) {
		case xml.StartElement:
			return entities
		case xml.Directive:
			if !strings.HasPrefix(string(t), "DOCTYPE") {
				continue
			}

			for _, m := range entityDecl.FindAllStringSubmatch(string(t), -1) {
				if entities == nil {
					entities = make(map[string]string)
				}

				entities[m[1]] = m[2] + m[3]
			}
		}
	}
}

// Serialize writes doc back to bytes without reformatting.
func Serialize(doc *etree.Document) ([]byte, error) {
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("serializing document: %w", err)
	}

	return out, nil
}
