package response

import (
	"time"

	"rategrid/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/shopspring/decimal"
)

type AppliedAdjustmentResponse struct {
	Layer  string          `json:"layer"`
	Type   string          `json:"type"`
	Value  decimal.Decimal `json:"value"`
	Result decimal.Decimal `json:"result"`
}

type PricedResponse struct {
	PerNightRate       decimal.Decimal             `json:"perNightRate"`
	TotalBeforeTax     decimal.Decimal             `json:"totalBeforeTax"`
	Currency           string                      `json:"currency"`
	Nights             int                         `json:"nights"`
	BreakfastIncluded  bool                        `json:"breakfastIncluded"`
	TaxIncluded        bool                        `json:"taxIncluded"`
	AppliedAdjustments []AppliedAdjustmentResponse `json:"appliedAdjustments"`
}

type UnavailableResponse struct {
	Reason string    `json:"reason"`
	Date   time.Time `json:"date"`
}

// QuoteResponse carries exactly one of priced or unavailable.
type QuoteResponse struct {
	RateID      uuid.UUID            `json:"rateId"`
	Priced      *PricedResponse      `json:"priced,omitempty"`
	Unavailable *UnavailableResponse `json:"unavailable,omitempty"`
}

func FromQuoteView(view *queries.QuoteView) (*QuoteResponse, error) {
	var resp QuoteResponse
	if err := copier.Copy(&resp, view); err != nil {
		return nil, err
	}
	return &resp, nil
}
