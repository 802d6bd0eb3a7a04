package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// Qualifier modifies how an ordered item is prepared
type Qualifier int

const (
	QualifierNone  Qualifier = 0
	QualifierNo    Qualifier = 1 // item not wanted, costs nothing
	QualifierExtra Qualifier = 2
	QualifierLite  Qualifier = 3
	QualifierSide  Qualifier = 4
	QualifierOnly  Qualifier = 5
)

var qualifierNames = []string{"None", "No", "Extra", "Lite", "Side", "Only"}

func (q Qualifier) String() string {
	return nameOf(qualifierNames, int(q), "None")
}

// NotWanted reports whether the qualifier negates the item
func (q Qualifier) NotWanted() bool {
	return q == QualifierNo
}

func (q Qualifier) MarshalJSON() ([]byte, error) {
	return json.Marshal(q.String())
}

func (q *Qualifier) UnmarshalJSON(data []byte) error {
	i, err := decodeEnum(data, qualifierNames)
	if err != nil {
		return err
	}
	*q = Qualifier(i)
	return nil
}

func (q Qualifier) Value() (driver.Value, error) {
	return int64(q), nil
}

func (q *Qualifier) Scan(value interface{}) error {
	*q = Qualifier(scanEnum(value))
	return nil
}
