package dynamo

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/mc-parking-api/internal/domain"
)

// expr is a DynamoDB expression string plus its placeholder maps.
type expr struct {
	Expr   string
	Names  map[string]string
	Values map[string]types.AttributeValue
}

// buildUpdateExpr converts a map of field->value into a DynamoDB update
// expression. Nil values become REMOVE actions, everything else is SET.
// Keys are sorted so the same input always yields the same expression.
func buildUpdateExpr(updates map[string]interface{}) (expr, error) {
	set := make(map[string]interface{}, len(updates))
	var remove []string
	for k, v := range updates {
		if v == nil {
			remove = append(remove, k)
			continue
		}
		set[k] = v
	}
	parts, names, values, err := placeholders(set, "f", "v", "%s = %s")
	if err != nil {
		return expr{}, err
	}
	if len(parts) == 0 && len(remove) == 0 {
		return expr{}, fmt.Errorf("no fields to update")
	}

	var clauses []string
	if len(parts) > 0 {
		clauses = append(clauses, "SET "+strings.Join(parts, ", "))
	}
	if len(remove) > 0 {
		sort.Strings(remove)
		removed := make([]string, 0, len(remove))
		for i, k := range remove {
			nameKey := fmt.Sprintf("#r%d", i)
			names[nameKey] = k
			removed = append(removed, nameKey)
		}
		clauses = append(clauses, "REMOVE "+strings.Join(removed, ", "))
	}
	if len(values) == 0 {
		// DynamoDB rejects an empty ExpressionAttributeValues map.
		values = nil
	}
	return expr{Expr: strings.Join(clauses, " "), Names: names, Values: values}, nil
}

// buildFilterExpr converts an equality filter into a FilterExpression joined with AND.
// An empty filter yields an empty expr.
func buildFilterExpr(filter domain.Filter) (expr, error) {
	parts, names, values, err := placeholders(filter, "q", "w", "%s = %s")
	if err != nil {
		return expr{}, err
	}
	if len(parts) == 0 {
		return expr{}, nil
	}
	return expr{Expr: strings.Join(parts, " AND "), Names: names, Values: values}, nil
}

func placeholders(m map[string]interface{}, namePrefix, valuePrefix, format string) ([]string, map[string]string, map[string]types.AttributeValue, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	names := make(map[string]string, len(keys))
	values := make(map[string]types.AttributeValue, len(keys))
	parts := make([]string, 0, len(keys))
	for i, k := range keys {
		nameKey := fmt.Sprintf("#%s%d", namePrefix, i)
		valueKey := fmt.Sprintf(":%s%d", valuePrefix, i)
		av, err := attributevalue.Marshal(m[k])
		if err != nil {
			return nil, nil, nil, fmt.Errorf("marshal field %s: %w", k, err)
		}
		names[nameKey] = k
		values[valueKey] = av
		parts = append(parts, fmt.Sprintf(format, nameKey, valueKey))
	}
	return parts, names, values, nil
}

func marshalItem(item domain.Item) (map[string]types.AttributeValue, error) {
	av, err := attributevalue.MarshalMap(map[string]interface{}(item))
	if err != nil {
		return nil, fmt.Errorf("marshal item: %w", err)
	}
	return av, nil
}

func unmarshalItem(av map[string]types.AttributeValue) (domain.Item, error) {
	item := domain.Item{}
	if err := attributevalue.UnmarshalMap(av, &item); err != nil {
		return nil, fmt.Errorf("unmarshal item: %w", err)
	}
	return item, nil
}

// withoutKey returns a copy of updates with the key attributes removed;
// DynamoDB rejects SET on key attributes.
func withoutKey(updates map[string]interface{}, key domain.Item) map[string]interface{} {
	out := make(map[string]interface{}, len(updates))
	for k, v := range updates {
		if _, isKey := key[k]; !isKey {
			out[k] = v
		}
	}
	return out
}

// firstKeyName returns the lexically first key attribute, used in existence conditions.
func firstKeyName(key domain.Item) string {
	names := make([]string, 0, len(key))
	for k := range key {
		names = append(names, k)
	}
	sort.Strings(names)
	if len(names) == 0 {
		return ""
	}
	return names[0]
}
