package main

import (
	"fmt"
	"strconv"
	"strings"
)

// parseValue turns user input into a Set argument: one number, or a list
// of numbers separated by commas or spaces, optionally in brackets.
func parseValue(input string) (any, error) {
	input = strings.TrimSpace(input)
	input = strings.TrimPrefix(input, "[")
	input = strings.TrimSuffix(input, "]")

	parts := strings.FieldsFunc(input, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(parts) == 0 {
		return nil, fmt.Errorf("empty value")
	}

	nums := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("component %d: %q is not a number", i, p)
		}
		nums[i] = v
	}
	if len(nums) == 1 && !strings.ContainsAny(input, ", \t") {
		return nums[0], nil
	}
	return nums, nil
}

func formatValue(v any) string {
	switch x := v.(type) {
	case []float32:
		return joinNumbers(x)
	case []int32:
		return joinNumbers(x)
	case []uint32:
		return joinNumbers(x)
	default:
		return fmt.Sprint(v)
	}
}

func joinNumbers[T float32 | int32 | uint32](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, ", ")
}
