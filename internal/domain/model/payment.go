package model

import "encoding/json"

// PaymentStatusSuccess is the gateway's terminal success status.
const PaymentStatusSuccess = "success"

// Payment is the authoritative verification result for a transaction
// reference. AmountMinor is expressed in the gateway's minor currency units
// (pesewas) and must be divided by 100 before storage or display.
type Payment struct {
	Reference   string
	Status      string
	AmountMinor int64
	Metadata    json.RawMessage
}
