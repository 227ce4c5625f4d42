// Package record converts typed records to and from store items. Conversion
// goes through DynamoDB attribute values so every backend sees the same
// attribute names and value shapes regardless of where the item is kept.
package record

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/mc-parking-api/internal/domain"
)

// ToItem converts v (a struct with dynamodbav tags) into a store item.
func ToItem(v interface{}) (domain.Item, error) {
	av, err := attributevalue.MarshalMap(v)
	if err != nil {
		return nil, fmt.Errorf("marshal record: %w", err)
	}
	item := domain.Item{}
	if err := attributevalue.UnmarshalMap(av, &item); err != nil {
		return nil, fmt.Errorf("unmarshal record: %w", err)
	}
	return item, nil
}

// FromItem decodes item into out, which must be a pointer to a struct.
func FromItem(item domain.Item, out interface{}) error {
	av, err := attributevalue.MarshalMap(map[string]interface{}(item))
	if err != nil {
		return fmt.Errorf("marshal item: %w", err)
	}
	if err := attributevalue.UnmarshalMap(av, out); err != nil {
		return fmt.Errorf("unmarshal item: %w", err)
	}
	return nil
}

// FromItems decodes a list of items into typed records.
func FromItems[T any](items []domain.Item) ([]T, error) {
	out := make([]T, 0, len(items))
	for _, item := range items {
		var v T
		if err := FromItem(item, &v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Normalize reshapes a single value the way ToItem would, so that values
// supplied by callers compare equal to values read back from a store.
func Normalize(v interface{}) (interface{}, error) {
	av, err := attributevalue.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal value: %w", err)
	}
	var out interface{}
	if err := attributevalue.Unmarshal(av, &out); err != nil {
		return nil, fmt.Errorf("unmarshal value: %w", err)
	}
	return out, nil
}

// NormalizeMap applies Normalize to every value of m.
func NormalizeMap(m map[string]interface{}) (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		n, err := Normalize(v)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", k, err)
		}
		out[k] = n
	}
	return out, nil
}
