package session

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// BuildPromptJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a
// generic map. Operator edits are validated against it before the prompt
// is frozen.
func BuildPromptJSONSchema() map[string]any {
	str := func() map[string]any { return map[string]any{"type": "string"} }

	props := map[string]any{
		"dr_no":               map[string]any{"type": "string", "pattern": `^(\d{5,12})?$`},
		"today_date":          map[string]any{"type": "string", "pattern": `^\d{2}-\d{2}-\d{4}$`},
		"buyers_order_number": str(),
		"quantity":            map[string]any{"type": "string", "pattern": `^\d*$`},
		"vehicle_number":      str(),
		"kanban": map[string]any{
			"type":                 "object",
			"additionalProperties": false,
			"properties": map[string]any{
				"no_of_pieces":   str(),
				"no_of_packages": str(),
				"total_nos":      str(),
				"total_kgs":      str(),
			},
		},
		"bill_details": map[string]any{
			"type":                 "object",
			"additionalProperties": false,
			"properties": map[string]any{
				"party_name": map[string]any{"type": "string", "minLength": 1},
			},
			"required": []string{"party_name"},
		},
		"crate_details": map[string]any{
			"type":                 "object",
			"additionalProperties": false,
			"properties": map[string]any{
				"for_crate":    str(),
				"lid":          str(),
				"dr_reference": str(),
			},
		},
		"part_details": map[string]any{
			"type":                 "object",
			"additionalProperties": false,
			"properties": map[string]any{
				"part_no":   str(),
				"part_name": str(),
				"order_no":  str(),
				"box_type":  str(),
				"unit_size": str(),
			},
		},
	}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
		"required":             []string{"dr_no", "today_date", "bill_details"},
	}
}

// ValidatePromptJSON validates operator-edited prompt JSON against the
// prompt schema.
func ValidatePromptJSON(data []byte) error {
	b, err := json.Marshal(BuildPromptJSONSchema())
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("prompt.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("prompt.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("prompt does not match schema: %w", err)
	}
	return nil
}
