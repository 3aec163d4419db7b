package content

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const manifestSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["categories", "schede"],
  "properties": {
    "categories": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name", "schede"],
        "properties": {
          "name": {"type": "string", "minLength": 1},
          "icon": {"type": "string"},
          "schede": {"type": "array", "items": {"$ref": "#/$defs/id"}}
        }
      }
    },
    "schede": {
      "type": "object",
      "additionalProperties": {
        "type": "object",
        "required": ["title", "exerciseCount"],
        "properties": {
          "title": {"type": "string", "minLength": 1},
          "exerciseCount": {"type": "integer", "minimum": 0}
        }
      }
    }
  },
  "$defs": {
    "id": {"type": ["string", "integer"]}
  }
}`

const schedaSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["meta", "exercises"],
  "properties": {
    "meta": {
      "type": "object",
      "required": ["id", "title"],
      "properties": {
        "id": {"type": ["string", "integer"]},
        "title": {"type": "string", "minLength": 1},
        "subtitle": {"type": "string"}
      }
    },
    "theory": {
      "type": "object",
      "properties": {
        "sections": {
          "type": "array",
          "items": {
            "type": "object",
            "required": ["type"],
            "properties": {"type": {"type": "string"}}
          }
        }
      }
    },
    "exercises": {"type": "array", "items": {"$ref": "#/$defs/exercise"}}
  },
  "$defs": {
    "answer": {
      "oneOf": [
        {"type": "string"},
        {"type": "array", "items": {"type": "string"}, "minItems": 1}
      ]
    },
    "answered": {
      "type": "object",
      "required": ["answer"],
      "properties": {"answer": {"$ref": "#/$defs/answer"}}
    },
    "exercise": {
      "type": "object",
      "required": ["id", "type"],
      "properties": {
        "id": {"type": "string", "minLength": 1},
        "number": {"type": ["string", "integer"]},
        "instruction": {"type": "string"},
        "type": {
          "enum": [
            "fill-in-blank", "multiple-choice", "transformation",
            "sentence-completion", "sentence-rewriting",
            "table-completion", "matching", "open-ended"
          ]
        }
      },
      "allOf": [
        {
          "if": {"properties": {"type": {"enum": ["fill-in-blank", "transformation", "sentence-rewriting"]}}},
          "then": {
            "required": ["items"],
            "properties": {"items": {"type": "array", "items": {"$ref": "#/$defs/answered"}}}
          }
        },
        {
          "if": {"properties": {"type": {"const": "multiple-choice"}}},
          "then": {
            "required": ["items"],
            "properties": {
              "items": {
                "type": "array",
                "items": {
                  "allOf": [{"$ref": "#/$defs/answered"}],
                  "required": ["options"],
                  "properties": {
                    "options": {"type": "array", "items": {"type": "string"}, "minItems": 1}
                  }
                }
              }
            }
          }
        },
        {
          "if": {"properties": {"type": {"const": "sentence-completion"}}},
          "then": {
            "required": ["items"],
            "properties": {
              "items": {
                "type": "array",
                "items": {
                  "type": "object",
                  "required": ["segments"],
                  "properties": {
                    "segments": {
                      "type": "array",
                      "items": {
                        "type": "object",
                        "if": {"required": ["blank"], "properties": {"blank": {"const": true}}},
                        "then": {"$ref": "#/$defs/answered"},
                        "else": {"required": ["text"], "properties": {"text": {"type": "string"}}}
                      }
                    }
                  }
                }
              }
            }
          }
        },
        {
          "if": {"properties": {"type": {"const": "table-completion"}}},
          "then": {
            "required": ["rows"],
            "properties": {
              "headers": {"type": "array", "items": {"type": "string"}},
              "rows": {
                "type": "array",
                "items": {
                  "type": "object",
                  "required": ["cells"],
                  "properties": {
                    "cells": {
                      "type": "array",
                      "items": {
                        "type": "object",
                        "if": {"required": ["editable"], "properties": {"editable": {"const": true}}},
                        "then": {"$ref": "#/$defs/answered"}
                      }
                    }
                  }
                }
              }
            }
          }
        },
        {
          "if": {"properties": {"type": {"const": "matching"}}},
          "then": {
            "required": ["items"],
            "properties": {
              "items": {
                "type": "object",
                "required": ["left", "right", "pairs"],
                "properties": {
                  "left": {"type": "array", "items": {"type": "string"}},
                  "right": {"type": "array", "items": {"type": "string"}},
                  "pairs": {
                    "type": "array",
                    "items": {
                      "type": "array",
                      "items": {"type": "integer", "minimum": 0},
                      "minItems": 2,
                      "maxItems": 2
                    }
                  }
                }
              }
            }
          }
        }
      ]
    }
  }
}`

// schemas compiled on first use.
var (
	schemaOnce      sync.Once
	compiledSchemas map[string]*jsonschema.Schema
	schemaErr       error
)

func compileSchemas() (map[string]*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		defs := map[string]string{
			"schema://manifest.json": manifestSchema,
			"schema://scheda.json":   schedaSchema,
		}
		for url, def := range defs {
			doc, err := jsonschema.UnmarshalJSON(bytes.NewReader([]byte(def)))
			if err != nil {
				schemaErr = fmt.Errorf("parse schema %s: %w", url, err)
				return
			}
			if err := c.AddResource(url, doc); err != nil {
				schemaErr = fmt.Errorf("add resource %s: %w", url, err)
				return
			}
		}

		compiled := make(map[string]*jsonschema.Schema, len(defs))
		for url := range defs {
			sch, err := c.Compile(url)
			if err != nil {
				schemaErr = fmt.Errorf("compile %s: %w", url, err)
				return
			}
			compiled[url] = sch
		}
		compiledSchemas = compiled
	})
	return compiledSchemas, schemaErr
}

// checkSchema validates a raw document against the named schema
// ("manifest" or "scheda").
func checkSchema(name string, raw []byte) error {
	schemas, err := compileSchemas()
	if err != nil {
		return err
	}
	sch, ok := schemas["schema://"+name+".json"]
	if !ok {
		return fmt.Errorf("unknown schema %q", name)
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := sch.Validate(doc); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
