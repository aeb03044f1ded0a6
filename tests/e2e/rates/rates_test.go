//go:build e2e

package rates_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"rategrid/internal/domain/identity"
	reqdto "rategrid/internal/handler/dto/request"
	"rategrid/internal/handler/dto/response"
	"rategrid/tests/common/authtest"
	"rategrid/tests/common/dbtest"
	"rategrid/tests/common/httptest"
	"rategrid/tests/e2e"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	ratesURL      = "/api/rates"
	quotesURL     = "/api/quotes"
	transitionURL = "/api/rates/%s/transition"
)

type rateSuite struct {
	e2e.SharedSuite
	auth *authtest.JWTHelper
}

func TestRateSuite(t *testing.T) {
	suite.Run(t, new(rateSuite))
}

func (s *rateSuite) SetupSuite() {
	s.SetupSharedSuite(s.T())
	s.auth = authtest.NewJWTHelper(s.Config.JWT)
}

func (s *rateSuite) token(role identity.Role) string {
	return s.auth.GenerateToken(s.T(), identity.Principal{UserID: uuid.New(), Role: role})
}

func dateStr(t time.Time) string {
	return t.Format("2006-01-02")
}

// newRateRequest builds a BAR rate on the downtown standard room with a
// +20% room-type adjustment and a +15% booking.com markup.
func newRateRequest(name string, priority int, start, end time.Time) reqdto.CreateRateRequest {
	return reqdto.CreateRateRequest{
		GroupID:  dbtest.SeedGroupID,
		Name:     name,
		RateType: "bar",
		Priority: priority,
		Pricing: reqdto.PricingRequest{
			BasePrice: decimal.NewFromInt(100),
			Currency:  "EUR",
		},
		RoomTypes: []reqdto.RoomTypeRateRequest{{
			RoomTypeID: dbtest.SeedDowntownStandardID,
			Adjustment: &reqdto.AdjustmentRequest{Type: "percentage", Value: decimal.NewFromInt(20)},
		}},
		Validity: reqdto.ValidityRequest{Start: dateStr(start), End: dateStr(end)},
		Channels: []reqdto.ChannelConfigRequest{{
			Channel: "booking.com",
			Markup:  reqdto.AdjustmentRequest{Type: "percentage", Value: decimal.NewFromInt(15)},
		}},
	}
}

func (s *rateSuite) createRate(req reqdto.CreateRateRequest) response.RateResponse {
	w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, ratesURL, req, s.token(identity.RoleRevenueManager))
	var resp response.RateResponse
	httptest.AssertSuccessResponse(s.T(), w, http.StatusCreated, &resp)
	return resp
}

func (s *rateSuite) transition(rateID uuid.UUID, action string) response.RateResponse {
	body := reqdto.TransitionRateRequest{Action: action}
	w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, fmt.Sprintf(transitionURL, rateID), body, s.token(identity.RoleRevenueManager))
	var resp response.RateResponse
	httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
	return resp
}

func (s *rateSuite) approvedRate(req reqdto.CreateRateRequest) response.RateResponse {
	created := s.createRate(req)
	s.transition(created.ID, "submit")
	return s.transition(created.ID, "approve")
}

func (s *rateSuite) getRate(rateID uuid.UUID) response.RateResponse {
	w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, ratesURL+"/"+rateID.String(), nil, s.token(identity.RoleFrontDesk))
	var resp response.RateResponse
	httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
	return resp
}

func (s *rateSuite) TestRateLifecycle() {
	start := time.Now().AddDate(0, 0, 7)
	end := start.AddDate(0, 6, 0)

	s.Run("create starts in draft", func() {
		created := s.createRate(newRateRequest("Lifecycle BAR", 5, start, end))

		require.Equal(s.T(), "draft", created.ApprovalStatus)
		require.Equal(s.T(), dbtest.SeedGroupID, created.GroupID)
		require.Equal(s.T(), "bar", created.RateType)
		require.GreaterOrEqual(s.T(), created.Version, int64(1))

		fetched := s.getRate(created.ID)
		require.Equal(s.T(), created.ID, fetched.ID)
		require.Equal(s.T(), "draft", fetched.ApprovalStatus)
	})

	s.Run("submit and approve move through the state machine", func() {
		created := s.createRate(newRateRequest("Lifecycle BAR", 5, start, end))

		pending := s.transition(created.ID, "submit")
		require.Equal(s.T(), "pending", pending.ApprovalStatus)
		require.Greater(s.T(), pending.Version, created.Version)

		approved := s.transition(created.ID, "approve")
		require.Equal(s.T(), "approved", approved.ApprovalStatus)
		require.Greater(s.T(), approved.Version, pending.Version)
	})

	s.Run("approved rates cannot be deleted", func() {
		approved := s.approvedRate(newRateRequest("Sticky BAR", 5, start, end))

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodDelete, ratesURL+"/"+approved.ID.String(), nil, s.token(identity.RoleRevenueManager))
		httptest.AssertErrorResponse(s.T(), w, http.StatusConflict, "")

		draft := s.createRate(newRateRequest("Disposable BAR", 5, start, end))
		w = httptest.PerformRequest(s.T(), s.Router, http.MethodDelete, ratesURL+"/"+draft.ID.String(), nil, s.token(identity.RoleRevenueManager))
		require.Equal(s.T(), http.StatusNoContent, w.Code)
	})

	s.Run("pricing change sends an approved rate back to pending", func() {
		approved := s.approvedRate(newRateRequest("Repriced BAR", 5, start, end))

		newPrice := reqdto.PricingRequest{BasePrice: decimal.NewFromInt(130), Currency: "EUR"}
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPatch, ratesURL+"/"+approved.ID.String(),
			reqdto.UpdateRateRequest{Pricing: &newPrice}, s.token(identity.RoleRevenueManager))
		var updated response.RateResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &updated)

		require.Equal(s.T(), "pending", updated.ApprovalStatus)
		require.Equal(s.T(), approved.Version+1, updated.Version)
		require.True(s.T(), updated.Pricing.BasePrice.Equal(decimal.NewFromInt(130)))
	})

	s.Run("description change keeps approval", func() {
		approved := s.approvedRate(newRateRequest("Documented BAR", 5, start, end))

		desc := "Best available rate for the downtown standard room."
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPatch, ratesURL+"/"+approved.ID.String(),
			reqdto.UpdateRateRequest{Description: &desc}, s.token(identity.RoleRevenueManager))
		var updated response.RateResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &updated)

		require.Equal(s.T(), "approved", updated.ApprovalStatus)
		require.Equal(s.T(), approved.Version+1, updated.Version)
		require.Equal(s.T(), desc, updated.Description)
	})

	s.Run("history grows one entry per mutation", func() {
		created := s.createRate(newRateRequest("Audited BAR", 5, start, end))
		s.transition(created.ID, "submit")
		s.transition(created.ID, "approve")

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, ratesURL+"/"+created.ID.String()+"/history", nil, s.token(identity.RoleFrontDesk))
		var history response.RateHistoryResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &history)

		require.Len(s.T(), history.Entries, 3)
		for i := 1; i < len(history.Entries); i++ {
			require.Equal(s.T(), history.Entries[i-1].ToVersion, history.Entries[i].FromVersion)
		}
	})

	s.Run("rate mutations need the revenue manager role", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, ratesURL,
			newRateRequest("Forbidden BAR", 5, start, end), s.token(identity.RoleFrontDesk))
		require.Equal(s.T(), http.StatusForbidden, w.Code)
	})
}

func (s *rateSuite) TestQuote() {
	start := time.Now().AddDate(0, 0, -1)
	end := start.AddDate(0, 6, 0)
	checkIn := time.Now().AddDate(0, 0, 30)
	checkOut := checkIn.AddDate(0, 0, 3)

	quoteReq := func(rateID uuid.UUID, channel string) reqdto.QuoteRequest {
		return reqdto.QuoteRequest{
			RateID:     rateID,
			PropertyID: dbtest.SeedDowntownID,
			RoomTypeID: dbtest.SeedDowntownStandardID,
			CheckIn:    dateStr(checkIn),
			CheckOut:   dateStr(checkOut),
			Guests:     2,
			Channel:    channel,
		}
	}

	s.Run("room type and channel layers compound in order", func() {
		approved := s.approvedRate(newRateRequest("Quoted BAR", 5, start, end))

		// 100 * 1.20 * 1.15 = 138 per night, 3 nights.
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, quotesURL, quoteReq(approved.ID, "booking.com"), s.token(identity.RoleFrontDesk))
		var resp response.QuoteResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)

		require.NotNil(s.T(), resp.Priced)
		require.Nil(s.T(), resp.Unavailable)
		require.True(s.T(), resp.Priced.PerNightRate.Equal(decimal.NewFromInt(138)),
			"perNight = %s", resp.Priced.PerNightRate)
		require.True(s.T(), resp.Priced.TotalBeforeTax.Equal(decimal.NewFromInt(414)),
			"total = %s", resp.Priced.TotalBeforeTax)
		require.Equal(s.T(), "EUR", resp.Priced.Currency)
		require.Equal(s.T(), 3, resp.Priced.Nights)
		require.Len(s.T(), resp.Priced.AppliedAdjustments, 2)
		require.Equal(s.T(), "room_type", resp.Priced.AppliedAdjustments[0].Layer)
		require.Equal(s.T(), "channel_markup", resp.Priced.AppliedAdjustments[1].Layer)
	})

	s.Run("direct channel carries no markup", func() {
		approved := s.approvedRate(newRateRequest("Quoted BAR", 5, start, end))

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, quotesURL, quoteReq(approved.ID, "direct"), s.token(identity.RoleFrontDesk))
		var resp response.QuoteResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)

		require.NotNil(s.T(), resp.Priced)
		require.True(s.T(), resp.Priced.PerNightRate.Equal(decimal.NewFromInt(120)))
	})

	s.Run("stay outside validity is rejected with the reason", func() {
		shortEnd := time.Now().AddDate(0, 0, 10)
		approved := s.approvedRate(newRateRequest("Short BAR", 5, start, shortEnd))

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, quotesURL, quoteReq(approved.ID, "direct"), s.token(identity.RoleFrontDesk))
		var resp response.QuoteResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)

		require.Nil(s.T(), resp.Priced)
		require.NotNil(s.T(), resp.Unavailable)
		require.Equal(s.T(), "OutsideValidity", resp.Unavailable.Reason)
	})

	s.Run("one night under the minimum stay is rejected", func() {
		req := newRateRequest("MinStay BAR", 5, start, end)
		req.Stay = &reqdto.StayRequest{MinStay: 2}
		approved := s.approvedRate(req)

		qr := quoteReq(approved.ID, "direct")
		qr.CheckOut = dateStr(checkIn.AddDate(0, 0, 1))
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, quotesURL, qr, s.token(identity.RoleFrontDesk))
		var resp response.QuoteResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)

		require.NotNil(s.T(), resp.Unavailable)
		require.Equal(s.T(), "BelowMinStay", resp.Unavailable.Reason)
	})

	s.Run("a room type the rate does not carry is rejected", func() {
		approved := s.approvedRate(newRateRequest("Narrow BAR", 5, start, end))

		qr := quoteReq(approved.ID, "direct")
		qr.RoomTypeID = dbtest.SeedDowntownDeluxeID
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, quotesURL, qr, s.token(identity.RoleFrontDesk))
		var resp response.QuoteResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)

		require.NotNil(s.T(), resp.Unavailable)
		require.Equal(s.T(), "RoomTypeNotOffered", resp.Unavailable.Reason)
	})

	s.Run("draft rates are not quotable", func() {
		draft := s.createRate(newRateRequest("Hidden BAR", 5, start, end))

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, quotesURL, quoteReq(draft.ID, "direct"), s.token(identity.RoleFrontDesk))
		httptest.AssertErrorResponse(s.T(), w, http.StatusConflict, "")
	})
}
