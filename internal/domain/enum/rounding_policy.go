package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// RoundingPolicy selects how a total that is not a multiple of five cents is settled
type RoundingPolicy int

const (
	RoundingNone         RoundingPolicy = 0
	RoundingDropPennies  RoundingPolicy = 1
	RoundingUpToGratuity RoundingPolicy = 2
)

var roundingPolicyNames = []string{"None", "DropPennies", "RoundUpGratuity"}

func (p RoundingPolicy) String() string {
	return nameOf(roundingPolicyNames, int(p), "None")
}

// ParseRoundingPolicy maps a configuration string onto a policy, defaulting to none
func ParseRoundingPolicy(s string) RoundingPolicy {
	for i, name := range roundingPolicyNames {
		if name == s {
			return RoundingPolicy(i)
		}
	}
	return RoundingNone
}

func (p RoundingPolicy) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

func (p *RoundingPolicy) UnmarshalJSON(data []byte) error {
	i, err := decodeEnum(data, roundingPolicyNames)
	if err != nil {
		return err
	}
	*p = RoundingPolicy(i)
	return nil
}

func (p RoundingPolicy) Value() (driver.Value, error) {
	return int64(p), nil
}

func (p *RoundingPolicy) Scan(value interface{}) error {
	*p = RoundingPolicy(scanEnum(value))
	return nil
}
