package entity

// ReceiptHeader holds the store header printed at the top of a guest receipt.
type ReceiptHeader struct {
	StoreName string `json:"store_name"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// ReceiptLine is one labelled amount on a receipt, in cents.
type ReceiptLine struct {
	Label  string `json:"label"`
	Count  int64  `json:"count,omitempty"`
	Amount int64  `json:"amount"`
}

// Receipt is a value object composed from a reconciled subcheck at print
// time. It is not stored.
type Receipt struct {
	Header     ReceiptHeader `json:"header"`
	CheckNo    string        `json:"check_no"`
	SubCheck   int           `json:"sub_check"`
	TableLabel string        `json:"table_label,omitempty"`
	Server     string        `json:"server,omitempty"`
	Date       string        `json:"date"`
	Items      []ReceiptLine `json:"items"`
	Taxes      []ReceiptLine `json:"taxes"`
	Payments   []ReceiptLine `json:"payments"`
	Subtotal   int64         `json:"subtotal"`
	TaxExempt  bool          `json:"tax_exempt"`
	Total      int64         `json:"total"`
	Balance    int64         `json:"balance"`
}
