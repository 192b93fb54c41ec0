// Package schema embeds the candidate extraction schema. The same document
// is sent to the crawler's LLM extraction strategy and enforced on every
// row that comes back, so a drifting extractor cannot push malformed
// records into the pipeline.
package schema

import (
	"encoding/json"
	"strings"

	_ "embed"

	"github.com/rotisserie/eris"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed candidate.schema.json
var candidateSchema []byte

var compiled *gojsonschema.Schema

func init() {
	s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(candidateSchema))
	if err != nil {
		panic(eris.Wrap(err, "schema: compile candidate schema"))
	}
	compiled = s
}

// Candidate returns the raw candidate JSON schema for use in extraction
// strategies.
func Candidate() json.RawMessage {
	return json.RawMessage(candidateSchema)
}

// ValidateCandidate checks one extracted row against the candidate schema.
// A non-nil error describes every violated field.
func ValidateCandidate(raw json.RawMessage) error {
	result, err := compiled.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return eris.Wrap(err, "schema: validate candidate")
	}
	if result.Valid() {
		return nil
	}

	var b strings.Builder
	for i, desc := range result.Errors() {
		if i > 0 {
			b.WriteString("; ")
		}
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		b.WriteString(field + ": " + desc.Description())
	}
	return eris.Errorf("schema: candidate rejected: %s", b.String())
}
