// internal/boards/schema.go
package boards

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Response-shape schemas. A 200 body that fails these is an upstream schema
// problem, not a decode bug on our side.

const boardsResponseSchema = `{
	"type": "object",
	"properties": {
		"data": {
			"type": "object",
			"properties": {
				"boards": {
					"type": "array",
					"items": {
						"type": "object",
						"properties": {
							"id":   {"type": ["string", "number"]},
							"name": {"type": "string"}
						},
						"required": ["id", "name"]
					}
				}
			}
		},
		"errors": {"type": "array"}
	}
}`

const itemsResponseSchema = `{
	"type": "object",
	"properties": {
		"data": {
			"type": "object",
			"properties": {
				"boards": {
					"type": "array",
					"items": {
						"type": "object",
						"properties": {
							"items_page": {
								"type": "object",
								"properties": {
									"items": {
										"type": "array",
										"items": {
											"type": "object",
											"properties": {
												"id":   {"type": ["string", "number"]},
												"name": {"type": ["string", "null"]},
												"column_values": {
													"type": "array",
													"items": {
														"type": "object",
														"properties": {
															"id":    {"type": "string"},
															"text":  {"type": ["string", "null"]},
															"value": {"type": ["string", "null"]}
														},
														"required": ["id"]
													}
												}
											},
											"required": ["id"]
										}
									}
								}
							}
						}
					}
				}
			}
		},
		"errors": {"type": "array"}
	}
}`

var (
	boardsSchema = gojsonschema.NewStringLoader(boardsResponseSchema)
	itemsSchema  = gojsonschema.NewStringLoader(itemsResponseSchema)
)

// validateShape checks body against schema and returns a joined description
// of the violations, or "" when the shape is acceptable.
func validateShape(schema gojsonschema.JSONLoader, body []byte) string {
	result, err := gojsonschema.Validate(schema, gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Sprintf("response is not valid JSON: %v", err)
	}
	if result.Valid() {
		return ""
	}
	descs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		descs = append(descs, e.String())
	}
	return strings.Join(descs, "; ")
}
