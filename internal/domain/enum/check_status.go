package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// CheckStatus represents the settlement status of a subcheck
type CheckStatus int

const (
	CheckStatusOpen   CheckStatus = 0
	CheckStatusClosed CheckStatus = 1
	CheckStatusVoided CheckStatus = 2
)

var checkStatusNames = []string{"Open", "Closed", "Voided"}

func (s CheckStatus) String() string {
	return nameOf(checkStatusNames, int(s), "Open")
}

func (s CheckStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *CheckStatus) UnmarshalJSON(data []byte) error {
	i, err := decodeEnum(data, checkStatusNames)
	if err != nil {
		return err
	}
	*s = CheckStatus(i)
	return nil
}

func (s CheckStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *CheckStatus) Scan(value interface{}) error {
	*s = CheckStatus(scanEnum(value))
	return nil
}
