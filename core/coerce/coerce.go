package coerce

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"audience-sync/core/schema"
	"audience-sync/core/utils"
)

// dateLayouts are tried in order when parsing datetime values.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

var errUnsupported = errors.New("unsupported value")

// FromRemote converts a decoded remote value into the typed row value for f.
func FromRemote(f schema.Field, raw any) (any, error) {
	if raw == nil {
		return nil, nil
	}
	if s, ok := raw.(string); ok && s == "" && f.Type != schema.String {
		return nil, nil
	}

	switch f.Type {
	case schema.String:
		return utils.ToString(raw), nil
	case schema.StringArray:
		v, err := toStringSlice(raw)
		if err != nil {
			return nil, newError(f, raw, err)
		}
		return v, nil
	case schema.Integer:
		v, err := toInt64(raw)
		if err != nil {
			return nil, newError(f, raw, err)
		}
		return v, nil
	case schema.Number:
		v, err := toFloat64(raw)
		if err != nil {
			return nil, newError(f, raw, err)
		}
		return v, nil
	case schema.Boolean:
		v, err := toBool(raw)
		if err != nil {
			return nil, newError(f, raw, err)
		}
		return v, nil
	case schema.DateTime:
		v, err := toTime(raw)
		if err != nil {
			return nil, newError(f, raw, err)
		}
		return v, nil
	}

	return nil, newError(f, raw, fmt.Errorf("unknown value type %s", f.Type))
}

// ToRemote converts a typed row value into the JSON value sent for f.
func ToRemote(f schema.Field, value any) (any, error) {
	if value == nil {
		return nil, nil
	}

	switch f.Type {
	case schema.DateTime:
		if s, ok := value.(string); ok && s == "" {
			return nil, nil
		}
		t, err := toTime(value)
		if err != nil {
			return nil, newError(f, value, err)
		}
		return t.UTC().Format(time.RFC3339), nil
	case schema.StringArray:
		v, err := toStringSlice(value)
		if err != nil {
			return nil, newError(f, value, err)
		}
		return v, nil
	default:
		return FromRemote(f, value)
	}
}

// Equal reports whether two row values for f would be sent identically.
// String arrays compare as sets.
func Equal(f schema.Field, a, b any) bool {
	ra, errA := ToRemote(f, a)
	rb, errB := ToRemote(f, b)
	if errA != nil || errB != nil {
		return reflect.DeepEqual(a, b)
	}

	if f.Type == schema.StringArray {
		sa, _ := ra.([]string)
		sb, _ := rb.([]string)
		return reflect.DeepEqual(StringSet(sa), StringSet(sb))
	}

	return reflect.DeepEqual(ra, rb)
}

// StringSet returns values as a set. Convert row values with ToRemote first.
func StringSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, s := range values {
		set[s] = struct{}{}
	}
	return set
}

// SortedStrings returns a sorted copy of values.
func SortedStrings(values []string) []string {
	out := make([]string, len(values))
	copy(out, values)
	sort.Strings(out)
	return out
}

func toStringSlice(v any) ([]string, error) {
	switch t := v.(type) {
	case []string:
		out := make([]string, len(t))
		copy(out, t)
		return out, nil
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if item == nil {
				continue
			}
			out = append(out, utils.ToString(item))
		}
		return out, nil
	case string:
		if strings.TrimSpace(t) == "" {
			return []string{}, nil
		}
		parts := strings.Split(t, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out, nil
	}
	return nil, errUnsupported
}

func toInt64(v any) (int64, error) {
	switch t := v.(type) {
	case int:
		return int64(t), nil
	case int8:
		return int64(t), nil
	case int16:
		return int64(t), nil
	case int32:
		return int64(t), nil
	case int64:
		return t, nil
	case uint:
		return int64(t), nil
	case uint8:
		return int64(t), nil
	case uint16:
		return int64(t), nil
	case uint32:
		return int64(t), nil
	case uint64:
		if t > math.MaxInt64 {
			return 0, strconv.ErrRange
		}
		return int64(t), nil
	case float32:
		return integral(float64(t))
	case float64:
		return integral(t)
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i, nil
		}
		f, err := t.Float64()
		if err != nil {
			return 0, err
		}
		return integral(f)
	case string:
		return strconv.ParseInt(strings.TrimSpace(t), 10, 64)
	}
	return 0, errUnsupported
}

func integral(f float64) (int64, error) {
	if f != math.Trunc(f) || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, fmt.Errorf("%v is not an integer", f)
	}
	return int64(f), nil
}

func toFloat64(v any) (float64, error) {
	switch t := v.(type) {
	case float64:
		return t, nil
	case float32:
		return float64(t), nil
	case json.Number:
		return t.Float64()
	case string:
		return strconv.ParseFloat(strings.TrimSpace(t), 64)
	}
	if i, err := toInt64(v); err == nil {
		return float64(i), nil
	}
	return 0, errUnsupported
}

func toBool(v any) (bool, error) {
	switch t := v.(type) {
	case bool:
		return t, nil
	case string:
		return strconv.ParseBool(strings.TrimSpace(t))
	}
	i, err := toInt64(v)
	if err != nil {
		return false, errUnsupported
	}
	switch i {
	case 0:
		return false, nil
	case 1:
		return true, nil
	}
	return false, fmt.Errorf("%d is not a boolean", i)
}

func toTime(v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case *time.Time:
		if t == nil {
			return time.Time{}, errUnsupported
		}
		return *t, nil
	case string:
		s := strings.TrimSpace(t)
		var lastErr error
		for _, layout := range dateLayouts {
			parsed, err := time.Parse(layout, s)
			if err == nil {
				return parsed, nil
			}
			lastErr = err
		}
		return time.Time{}, lastErr
	}
	return time.Time{}, errUnsupported
}
