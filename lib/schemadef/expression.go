// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schemadef

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/plutus/lib/plutus"
	"github.com/bureau-foundation/plutus/lib/schema"
)

// builtins are the scalar type expressions. Definitions may not reuse
// these names.
var builtins = map[string]func() schema.Schema{
	"bytes": schema.ByteArray,
	"int":   schema.Integer,
	"bool":  schema.Boolean,
	"data":  schema.Data,
}

func (r *resolver) expression(node *yaml.Node) (schema.Schema, error) {
	node = dealias(node)
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag != "!!str" {
			return nil, errorAt(node, "expected a type name, got %s", node.Value)
		}
		if builtin, ok := builtins[node.Value]; ok {
			return builtin(), nil
		}
		return r.named(node.Value)

	case yaml.MappingNode:
		if len(node.Content) != 2 {
			return nil, errorAt(node, "type expression must have exactly one key, got %d", len(node.Content)/2)
		}
		return r.form(node.Content[0], dealias(node.Content[1]))

	default:
		return nil, errorAt(node, "expected a type name or a single-key mapping")
	}
}

func (r *resolver) form(key, body *yaml.Node) (schema.Schema, error) {
	switch key.Value {
	case "struct":
		return r.structForm(body)

	case "list":
		element, err := r.expression(body)
		if err != nil {
			return nil, err
		}
		return schema.Array(element), nil

	case "tuple":
		elements, err := r.expressionList(body, "tuple")
		if err != nil {
			return nil, err
		}
		return schema.Tuple(elements...), nil

	case "map":
		if err := expectKeys(body, []string{"key", "value"}, []string{"key", "value"}); err != nil {
			return nil, err
		}
		keySchema, err := r.expression(mappingValue(body, "key"))
		if err != nil {
			return nil, err
		}
		valueSchema, err := r.expression(mappingValue(body, "value"))
		if err != nil {
			return nil, err
		}
		return schema.Map(keySchema, valueSchema), nil

	case "union":
		variants, err := r.expressionList(body, "union")
		if err != nil {
			return nil, err
		}
		if len(variants) == 0 {
			return nil, errorAt(body, "union needs at least one variant")
		}
		return schema.Union(variants...), nil

	case "literal":
		return literalForm(body)

	case "nullable":
		inner, err := r.expression(body)
		if err != nil {
			return nil, err
		}
		return schema.NullOr(inner), nil

	case "optional":
		inner, err := r.expression(body)
		if err != nil {
			return nil, err
		}
		return schema.UndefinedOr(inner), nil

	case "bytes":
		return bytesForm(body)

	case "int":
		return intForm(body)

	default:
		return nil, errorAt(key, "unknown type form %q", key.Value)
	}
}

// structForm accepts either a sequence of {name, type} entries or a
// mapping of field names to types. Both keep declaration order.
func (r *resolver) structForm(body *yaml.Node) (schema.Schema, error) {
	var fields []schema.StructField
	seen := make(map[string]int)
	add := func(nameNode, typeNode *yaml.Node) error {
		name := nameNode.Value
		if name == "" {
			return errorAt(nameNode, "struct field name is empty")
		}
		if line, duplicate := seen[name]; duplicate {
			return errorAt(nameNode, "struct field %q is already declared on line %d", name, line)
		}
		seen[name] = nameNode.Line
		fieldSchema, err := r.expression(typeNode)
		if err != nil {
			return fmt.Errorf("field %s: %w", name, err)
		}
		fields = append(fields, schema.Field(name, fieldSchema))
		return nil
	}

	switch body.Kind {
	case yaml.SequenceNode:
		for _, item := range body.Content {
			item = dealias(item)
			if err := expectKeys(item, []string{"name", "type"}, []string{"name", "type"}); err != nil {
				return nil, err
			}
			if err := add(mappingValue(item, "name"), mappingValue(item, "type")); err != nil {
				return nil, err
			}
		}
	case yaml.MappingNode:
		for index := 0; index+1 < len(body.Content); index += 2 {
			if err := add(body.Content[index], body.Content[index+1]); err != nil {
				return nil, err
			}
		}
	default:
		return nil, errorAt(body, "struct expects a list of fields or a mapping of field names to types")
	}
	return schema.Struct(fields...), nil
}

func (r *resolver) expressionList(body *yaml.Node, form string) ([]schema.Schema, error) {
	if body.Kind != yaml.SequenceNode {
		return nil, errorAt(body, "%s expects a list of type expressions", form)
	}
	schemas := make([]schema.Schema, len(body.Content))
	for index, item := range body.Content {
		resolved, err := r.expression(item)
		if err != nil {
			return nil, fmt.Errorf("%s element %d: %w", form, index, err)
		}
		schemas[index] = resolved
	}
	return schemas, nil
}

// literalForm accepts strings, booleans and integers that fit in an
// int64. Integer literals are stored as int64, which is also what host
// values matching them must use.
func literalForm(body *yaml.Node) (schema.Schema, error) {
	if body.Kind != yaml.SequenceNode || len(body.Content) == 0 {
		return nil, errorAt(body, "literal expects a non-empty list of values")
	}
	values := make([]any, 0, len(body.Content))
	for _, item := range body.Content {
		item = dealias(item)
		if item.Kind != yaml.ScalarNode {
			return nil, errorAt(item, "literal values must be scalars")
		}
		var value any
		switch item.Tag {
		case "!!str":
			value = item.Value
		case "!!bool":
			var flag bool
			if err := item.Decode(&flag); err != nil {
				return nil, errorAt(item, "invalid boolean %q", item.Value)
			}
			value = flag
		case "!!int":
			var number int64
			if err := item.Decode(&number); err != nil {
				return nil, errorAt(item, "integer literal %s does not fit in 64 bits", item.Value)
			}
			value = number
		default:
			return nil, errorAt(item, "unsupported literal %s", item.Value)
		}
		for _, previous := range values {
			if previous == value {
				return nil, errorAt(item, "duplicate literal %s", item.Value)
			}
		}
		values = append(values, value)
	}
	return schema.Literal(values...), nil
}

func bytesForm(body *yaml.Node) (schema.Schema, error) {
	if err := expectKeys(body, []string{"size", "max_size"}, nil); err != nil {
		return nil, err
	}
	sizeNode, maxNode := mappingValue(body, "size"), mappingValue(body, "max_size")
	switch {
	case sizeNode != nil && maxNode != nil:
		return nil, errorAt(body, "bytes takes either size or max_size, not both")
	case sizeNode != nil:
		size, err := nonNegative(sizeNode)
		if err != nil {
			return nil, err
		}
		return schema.Filter(schema.ByteArray(), func(value any) bool {
			length, ok := hexLength(value)
			return ok && length == size
		}, fmt.Sprintf("expected exactly %d bytes", size)), nil
	case maxNode != nil:
		limit, err := nonNegative(maxNode)
		if err != nil {
			return nil, err
		}
		return schema.Filter(schema.ByteArray(), func(value any) bool {
			length, ok := hexLength(value)
			return ok && length <= limit
		}, fmt.Sprintf("expected at most %d bytes", limit)), nil
	default:
		return schema.ByteArray(), nil
	}
}

func intForm(body *yaml.Node) (schema.Schema, error) {
	if err := expectKeys(body, []string{"min", "max"}, nil); err != nil {
		return nil, err
	}
	minimum, err := optionalBound(mappingValue(body, "min"))
	if err != nil {
		return nil, err
	}
	maximum, err := optionalBound(mappingValue(body, "max"))
	if err != nil {
		return nil, err
	}

	var message string
	switch {
	case minimum != nil && maximum != nil:
		if minimum.Cmp(maximum) > 0 {
			return nil, errorAt(body, "int min %s is greater than max %s", minimum, maximum)
		}
		message = fmt.Sprintf("expected an integer in [%s, %s]", minimum, maximum)
	case minimum != nil:
		message = fmt.Sprintf("expected an integer >= %s", minimum)
	case maximum != nil:
		message = fmt.Sprintf("expected an integer <= %s", maximum)
	default:
		return schema.Integer(), nil
	}

	return schema.Filter(schema.Integer(), func(value any) bool {
		number, ok := integerValue(value)
		if !ok {
			return false
		}
		if minimum != nil && number.Cmp(minimum) < 0 {
			return false
		}
		return maximum == nil || number.Cmp(maximum) <= 0
	}, message), nil
}

func optionalBound(node *yaml.Node) (*big.Int, error) {
	if node == nil {
		return nil, nil
	}
	node = dealias(node)
	if node.Kind != yaml.ScalarNode || node.Tag != "!!int" {
		return nil, errorAt(node, "expected an integer bound, got %s", node.Value)
	}
	bound, ok := new(big.Int).SetString(node.Value, 0)
	if !ok {
		return nil, errorAt(node, "invalid integer bound %s", node.Value)
	}
	return bound, nil
}

func nonNegative(node *yaml.Node) (int, error) {
	node = dealias(node)
	size, err := strconv.Atoi(node.Value)
	if err != nil || node.Kind != yaml.ScalarNode || size < 0 {
		return 0, errorAt(node, "expected a non-negative byte count, got %s", node.Value)
	}
	return size, nil
}

// hexLength reports the byte length of a hex host value. Malformed hex
// is left for the inner ByteArray schema to reject.
func hexLength(value any) (int, bool) {
	text, ok := value.(string)
	if !ok {
		return 0, false
	}
	return len(text) / 2, true
}

func integerValue(value any) (*big.Int, bool) {
	if number, ok := value.(json.Number); ok {
		parsed, err := plutus.ParseJSONNumber(number)
		return parsed, err == nil
	}
	integer, err := plutus.MakeInteger(value)
	if err != nil {
		return nil, false
	}
	return integer.Value(), true
}

// expectKeys checks that node is a mapping whose keys are all in
// allowed and include every key in required.
func expectKeys(node *yaml.Node, allowed, required []string) error {
	if node.Kind != yaml.MappingNode {
		return errorAt(node, "expected a mapping with keys %v", allowed)
	}
	present := make(map[string]bool)
	for index := 0; index+1 < len(node.Content); index += 2 {
		key := node.Content[index]
		known := false
		for _, name := range allowed {
			if key.Value == name {
				known = true
				break
			}
		}
		if !known {
			return errorAt(key, "unexpected key %q (allowed: %v)", key.Value, allowed)
		}
		present[key.Value] = true
	}
	for _, name := range required {
		if !present[name] {
			return errorAt(node, "missing required key %q", name)
		}
	}
	return nil
}

func mappingValue(node *yaml.Node, key string) *yaml.Node {
	for index := 0; index+1 < len(node.Content); index += 2 {
		if node.Content[index].Value == key {
			return node.Content[index+1]
		}
	}
	return nil
}

func dealias(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}
