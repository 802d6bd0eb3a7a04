package enum

import (
	"encoding/json"
	"fmt"
)

// nameOf returns names[i], or fallback when i is out of range
func nameOf(names []string, i int, fallback string) string {
	if i < 0 || i >= len(names) {
		return fallback
	}
	return names[i]
}

// decodeEnum accepts either the string name or the raw integer value
func decodeEnum(data []byte, names []string) (int, error) {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return 0, err
		}
		return i, nil
	}
	for i, name := range names {
		if name == str {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown value %q", str)
}

// scanEnum converts a database column into an enum ordinal
func scanEnum(value interface{}) int {
	switch v := value.(type) {
	case int64:
		return int(v)
	case int32:
		return int(v)
	case int:
		return v
	}
	return 0
}
