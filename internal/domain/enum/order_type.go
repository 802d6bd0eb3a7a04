package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// OrderType describes how the guest receives the check's items
type OrderType int

const (
	OrderTypeDineIn   OrderType = 0
	OrderTypeTakeout  OrderType = 1
	OrderTypeDelivery OrderType = 2
	OrderTypeBar      OrderType = 3
)

var orderTypeNames = []string{"DineIn", "Takeout", "Delivery", "Bar"}

func (t OrderType) String() string {
	return nameOf(orderTypeNames, int(t), "DineIn")
}

func (t OrderType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *OrderType) UnmarshalJSON(data []byte) error {
	i, err := decodeEnum(data, orderTypeNames)
	if err != nil {
		return err
	}
	*t = OrderType(i)
	return nil
}

func (t OrderType) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *OrderType) Scan(value interface{}) error {
	*t = OrderType(scanEnum(value))
	return nil
}
