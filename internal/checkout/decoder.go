// Package checkout recovers order-construction data from the payment
// gateway's metadata field. The checkout client can only attach strings to
// the gateway popup, so items and address arrive JSON-encoded inside the
// metadata object, and the gateway itself sometimes round-trips the whole
// object through string encoding. Each decoding stage is named so failures
// can be diagnosed without dumping the raw payload.
package checkout

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/darkahs/storefront/internal/domain/model"
)

// Stage identifies the decoding step that failed.
type Stage string

const (
	StageEnvelope Stage = "envelope"
	StageItems    Stage = "items"
	StageAddress  Stage = "address"
	StageFields   Stage = "fields"
)

// ErrMissingField marks a required metadata field absent after decoding.
var ErrMissingField = errors.New("required field missing")

// DecodeError reports which stage of the metadata pipeline failed.
type DecodeError struct {
	Stage Stage
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("metadata %s stage: %v", e.Stage, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Details carries everything the materializer needs to build an order.
type Details struct {
	BuyerID string
	Items   []model.LineItem
	Address model.Address
}

// envelope is the metadata shape populated by the checkout client.
type envelope struct {
	UserID  string          `json:"userId"`
	Items   json.RawMessage `json:"items"`
	Address json.RawMessage `json:"address"`
}

// Decode runs the staged pipeline: unwrap the envelope (which may itself be
// a string-encoded document), then independently unwrap and parse the items
// and address fields, then require userId, items and address to be present.
func Decode(raw json.RawMessage) (*Details, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, &DecodeError{Stage: StageEnvelope, Err: errors.New("metadata is empty")}
	}

	unwrapped, err := unwrapString(raw)
	if err != nil {
		return nil, &DecodeError{Stage: StageEnvelope, Err: err}
	}

	var env envelope
	if err := json.Unmarshal(unwrapped, &env); err != nil {
		return nil, &DecodeError{Stage: StageEnvelope, Err: err}
	}

	details := &Details{BuyerID: env.UserID}

	if len(env.Items) > 0 && string(env.Items) != "null" {
		itemsRaw, err := unwrapString(env.Items)
		if err != nil {
			return nil, &DecodeError{Stage: StageItems, Err: err}
		}
		if err := json.Unmarshal(itemsRaw, &details.Items); err != nil {
			return nil, &DecodeError{Stage: StageItems, Err: err}
		}
	}

	addressPresent := len(env.Address) > 0 && string(env.Address) != "null"
	if addressPresent {
		addressRaw, err := unwrapString(env.Address)
		if err != nil {
			return nil, &DecodeError{Stage: StageAddress, Err: err}
		}
		if err := json.Unmarshal(addressRaw, &details.Address); err != nil {
			return nil, &DecodeError{Stage: StageAddress, Err: err}
		}
	}

	switch {
	case details.BuyerID == "":
		return nil, &DecodeError{Stage: StageFields, Err: fmt.Errorf("%w: userId", ErrMissingField)}
	case len(details.Items) == 0:
		return nil, &DecodeError{Stage: StageFields, Err: fmt.Errorf("%w: items", ErrMissingField)}
	case !addressPresent:
		return nil, &DecodeError{Stage: StageFields, Err: fmt.Errorf("%w: address", ErrMissingField)}
	}

	return details, nil
}

// unwrapString peels one layer of string encoding: if raw is a JSON string,
// its contents are returned for reparsing; otherwise raw passes through.
func unwrapString(raw json.RawMessage) (json.RawMessage, error) {
	if len(raw) == 0 || raw[0] != '"' {
		return raw, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	return json.RawMessage(s), nil
}
