package xsd

import (
	"encoding/xml"
	"strings"
)

// ParseAnnotations consumes the token stream from just past an
// xs:annotation start tag through the matching end tag and returns the
// text of every nested xs:documentation and xs:appinfo block, in source
// order.
func ParseAnnotations(dec *xml.Decoder) ([]string, error) {
	var (
		values   []string
		current  strings.Builder
		readText bool
	)

	for {
		tok, err := dec.Token()
		if err != nil {
			if isDecoderEOF(err) {
				return nil, NewEOFError("xs:annotation")
			}
			return nil, NewUnexpectedError(err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if isSchema(t.Name, "documentation") || isSchema(t.Name, "appinfo") {
				readText = true
			}
		case xml.CharData:
			if readText {
				// Copies out of the decoder's reusable buffer.
				current.Write(t)
			}
		case xml.EndElement:
			switch {
			case isSchema(t.Name, "documentation"), isSchema(t.Name, "appinfo"):
				readText = false
				if current.Len() > 0 {
					values = append(values, current.String())
					current.Reset()
				}
			case isSchema(t.Name, "annotation"):
				return values, nil
			}
		}
	}
}
