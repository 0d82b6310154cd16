package oracle

import (
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const caseSchemaURL = "https://hakim.schemas.local/case.schema.json"

const caseSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["title", "defendantName", "crime", "summary", "prosecutionOpening",
               "defenseOpening", "evidence", "witnesses", "keyPoints", "correctVerdict", "reasoning"],
  "properties": {
    "title": {"type": "string", "minLength": 1},
    "defendantName": {"type": "string", "minLength": 1},
    "crime": {"type": "string", "minLength": 1},
    "summary": {"type": "string", "minLength": 1},
    "prosecutionOpening": {"type": "string", "minLength": 1},
    "defenseOpening": {"type": "string", "minLength": 1},
    "evidence": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["item", "description"],
        "properties": {
          "item": {"type": "string", "minLength": 1},
          "description": {"type": "string"}
        }
      }
    },
    "witnesses": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["name", "role", "testimony", "personality"],
        "properties": {
          "name": {"type": "string", "minLength": 1},
          "role": {"type": "string"},
          "testimony": {"type": "string"},
          "personality": {"type": "string"}
        }
      }
    },
    "keyPoints": {"type": "array", "items": {"type": "string"}},
    "correctVerdict": {"type": "string", "minLength": 1},
    "reasoning": {"type": "string", "minLength": 1}
  }
}`

const evaluationSchemaURL = "https://hakim.schemas.local/evaluation.schema.json"

const evaluationSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["score", "feedback", "title"],
  "properties": {
    "score": {"type": "number"},
    "feedback": {"type": "string"},
    "title": {"type": "string"}
  }
}`

var (
	schemasOnce      sync.Once
	caseSchema       *jsonschema.Schema
	evaluationSchema *jsonschema.Schema
	schemasErr       error
)

func compiledSchemas() (*jsonschema.Schema, *jsonschema.Schema, error) {
	schemasOnce.Do(func() {
		caseSchema, schemasErr = compileSchema(caseSchemaURL, caseSchemaJSON)
		if schemasErr != nil {
			return
		}
		evaluationSchema, schemasErr = compileSchema(evaluationSchemaURL, evaluationSchemaJSON)
	})
	return caseSchema, evaluationSchema, schemasErr
}

func compileSchema(url string, text string) (*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	if err := c.AddResource(url, strings.NewReader(text)); err != nil {
		return nil, fmt.Errorf("load schema %s: %w", url, err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", url, err)
	}
	return compiled, nil
}
