package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// OrderStatus represents the kitchen status of an ordered item
type OrderStatus int

const (
	OrderStatusPending OrderStatus = 0
	OrderStatusSent    OrderStatus = 1
	OrderStatusVoided  OrderStatus = 2
)

var orderStatusNames = []string{"Pending", "Sent", "Voided"}

func (s OrderStatus) String() string {
	return nameOf(orderStatusNames, int(s), "Pending")
}

func (s OrderStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *OrderStatus) UnmarshalJSON(data []byte) error {
	i, err := decodeEnum(data, orderStatusNames)
	if err != nil {
		return err
	}
	*s = OrderStatus(i)
	return nil
}

func (s OrderStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *OrderStatus) Scan(value interface{}) error {
	if value == nil {
		*s = OrderStatusPending
		return nil
	}
	*s = OrderStatus(scanEnum(value))
	return nil
}
