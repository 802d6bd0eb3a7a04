package request

// PrintReceiptRequest is the request body for printing a guest receipt.
type PrintReceiptRequest struct {
	SubCheckID string `json:"sub_check_id" binding:"required,uuid"`
}
