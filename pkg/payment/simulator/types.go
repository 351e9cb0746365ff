package simulator

// Method identifies how the customer pays.
type Method string

const (
	MethodCard Method = "cartao"
	MethodPix  Method = "pix"
)

// CardDetails holds the raw card fields collected at checkout. None of
// them are validated beyond presence; nothing here ever reaches a real
// acquirer.
type CardDetails struct {
	Number     string `json:"number"`
	HolderName string `json:"holder_name"`
	Expiry     string `json:"expiry"`
	CVV        string `json:"cvv"`
}

// ChargeRequest describes a payment to process.
type ChargeRequest struct {
	Method      Method       `json:"method"`
	Amount      float64      `json:"amount"`
	OrderNumber string       `json:"order_number"`
	Card        *CardDetails `json:"card,omitempty"`
}

// ChargeResponse is the processing result. Approved is always true in
// this simulator once the request passes validation.
type ChargeResponse struct {
	TransactionID string  `json:"transaction_id"`
	Approved      bool    `json:"approved"`
	Amount        float64 `json:"amount"`
}
