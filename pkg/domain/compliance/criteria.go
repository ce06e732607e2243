package compliance

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// CriteriaOperator is the comparison a ValidationCriteria performs.
type CriteriaOperator string

const (
	OperatorContains    CriteriaOperator = "contains"
	OperatorEquals      CriteriaOperator = "equals"
	OperatorMatches     CriteriaOperator = "matches"
	OperatorGreaterThan CriteriaOperator = "greater_than"
	OperatorLessThan    CriteriaOperator = "less_than"
	OperatorBetween     CriteriaOperator = "between"
)

// EvaluateCriteria checks a single requirement criterion against a map
// of document fields (e.g. "content", "signatures"). A missing field
// evaluates to false rather than erroring; an unknown operator or a
// malformed expected value is a rule-definition bug and errors.
func EvaluateCriteria(c ValidationCriteria, fields map[string]interface{}) (bool, error) {
	raw, ok := fields[c.Field]
	if !ok {
		return false, nil
	}

	switch c.Operator {
	case OperatorContains:
		have, ok1 := asString(raw)
		want, ok2 := asString(c.Value)
		if !ok1 || !ok2 {
			return false, fmt.Errorf("contains requires string field and value")
		}
		return strings.Contains(strings.ToLower(have), strings.ToLower(want)), nil

	case OperatorEquals:
		return fmt.Sprintf("%v", raw) == fmt.Sprintf("%v", c.Value), nil

	case OperatorMatches:
		have, ok1 := asString(raw)
		pattern, ok2 := asString(c.Value)
		if !ok1 || !ok2 {
			return false, fmt.Errorf("matches requires string field and pattern")
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			return false, fmt.Errorf("compile criteria pattern %q: %w", pattern, err)
		}
		return re.MatchString(have), nil

	case OperatorGreaterThan:
		have, want, err := numericPair(raw, c.Value)
		if err != nil {
			return false, err
		}
		return have > want, nil

	case OperatorLessThan:
		have, want, err := numericPair(raw, c.Value)
		if err != nil {
			return false, err
		}
		return have < want, nil

	case OperatorBetween:
		bounds, ok := c.Value.([]interface{})
		if !ok || len(bounds) != 2 {
			return false, fmt.Errorf("between requires a two-element bounds list")
		}
		have, lo, err := numericPair(raw, bounds[0])
		if err != nil {
			return false, err
		}
		hi, ok := asFloat(bounds[1])
		if !ok {
			return false, fmt.Errorf("between upper bound is not numeric: %v", bounds[1])
		}
		return have >= lo && have <= hi, nil

	default:
		return false, fmt.Errorf("unknown criteria operator: %s", c.Operator)
	}
}

func asString(v interface{}) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func numericPair(have, want interface{}) (float64, float64, error) {
	h, ok := asFloat(have)
	if !ok {
		return 0, 0, fmt.Errorf("field value is not numeric: %v", have)
	}
	w, ok := asFloat(want)
	if !ok {
		return 0, 0, fmt.Errorf("expected value is not numeric: %v", want)
	}
	return h, w, nil
}
