package types

import (
	"encoding/json"

	"github.com/ethereum/go-ethereum/common"
)

// PayloadAttributes carries the parameters of a payload build request
// issued alongside a fork choice update. Withdrawals arrive with V2
// requests and the parent beacon block root with V3; both keys are
// omitted entirely when unset.
type PayloadAttributes struct {
	Timestamp             Quantity       `json:"timestamp"`
	PrevRandao            common.Hash    `json:"prevRandao"`
	SuggestedFeeRecipient common.Address `json:"suggestedFeeRecipient"`
	Withdrawals           []Withdrawal   `json:"withdrawals,omitempty"`
	ParentBeaconBlockRoot *common.Hash   `json:"parentBeaconBlockRoot,omitempty"`
}

type payloadAttributesJSON struct {
	Timestamp             *Quantity       `json:"timestamp"`
	PrevRandao            *common.Hash    `json:"prevRandao"`
	SuggestedFeeRecipient *common.Address `json:"suggestedFeeRecipient"`
	Withdrawals           *[]Withdrawal   `json:"withdrawals"`
	ParentBeaconBlockRoot *common.Hash    `json:"parentBeaconBlockRoot"`
}

// MarshalJSON encodes the attributes. A present-but-empty withdrawal
// list stays distinguishable from an absent one.
func (a PayloadAttributes) MarshalJSON() ([]byte, error) {
	type marshal struct {
		Timestamp             Quantity       `json:"timestamp"`
		PrevRandao            common.Hash    `json:"prevRandao"`
		SuggestedFeeRecipient common.Address `json:"suggestedFeeRecipient"`
		Withdrawals           *[]Withdrawal  `json:"withdrawals,omitempty"`
		ParentBeaconBlockRoot *common.Hash   `json:"parentBeaconBlockRoot,omitempty"`
	}
	m := marshal{
		Timestamp:             a.Timestamp,
		PrevRandao:            a.PrevRandao,
		SuggestedFeeRecipient: a.SuggestedFeeRecipient,
		ParentBeaconBlockRoot: a.ParentBeaconBlockRoot,
	}
	if a.Withdrawals != nil {
		ws := a.Withdrawals
		m.Withdrawals = &ws
	}
	return json.Marshal(m)
}

func (a *PayloadAttributes) UnmarshalJSON(input []byte) error {
	var dec payloadAttributesJSON
	if err := json.Unmarshal(input, &dec); err != nil {
		return err
	}
	if dec.Timestamp == nil {
		return &MissingFieldError{Type: "PayloadAttributes", Field: "timestamp"}
	}
	if dec.PrevRandao == nil {
		return &MissingFieldError{Type: "PayloadAttributes", Field: "prevRandao"}
	}
	if dec.SuggestedFeeRecipient == nil {
		return &MissingFieldError{Type: "PayloadAttributes", Field: "suggestedFeeRecipient"}
	}
	a.Timestamp = *dec.Timestamp
	a.PrevRandao = *dec.PrevRandao
	a.SuggestedFeeRecipient = *dec.SuggestedFeeRecipient
	if dec.Withdrawals != nil {
		ws := *dec.Withdrawals
		if ws == nil {
			ws = []Withdrawal{}
		}
		a.Withdrawals = ws
	} else {
		a.Withdrawals = nil
	}
	a.ParentBeaconBlockRoot = dec.ParentBeaconBlockRoot
	return nil
}
