//go:build e2e

package rates_test

import (
	"net/http"
	"time"

	"rategrid/internal/domain/identity"
	"rategrid/internal/domain/rate"
	reqdto "rategrid/internal/handler/dto/request"
	"rategrid/internal/handler/dto/response"
	"rategrid/internal/usecase/commands"
	"rategrid/tests/common/dbtest"
	"rategrid/tests/common/httptest"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func (s *rateSuite) distribute(rateID uuid.UUID, req reqdto.DistributeRequest) commands.DistributionResult {
	w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, ratesURL+"/"+rateID.String()+"/distribute", req, s.token(identity.RoleRevenueManager))
	var result commands.DistributionResult
	httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &result)
	return result
}

func (s *rateSuite) TestDistribution() {
	start := time.Now().AddDate(0, 0, -1)
	end := start.AddDate(0, 2, 0)

	s.Run("broadcast syncs every property in the group", func() {
		approved := s.approvedRate(newRateRequest("Broadcast BAR", 5, start, end))

		result := s.distribute(approved.ID, reqdto.DistributeRequest{Mode: "broadcast"})

		require.Equal(s.T(), rate.SyncSynced, result.Overall)
		require.ElementsMatch(s.T(), []uuid.UUID{dbtest.SeedDowntownID, dbtest.SeedSeasideID}, result.Success)
		require.Empty(s.T(), result.Failed)
		require.Empty(s.T(), result.Conflicts)

		fetched := s.getRate(approved.ID)
		require.Equal(s.T(), "synced", fetched.SyncState)
		require.Len(s.T(), fetched.Properties, 2)
		for _, pr := range fetched.Properties {
			require.Equal(s.T(), "synced", pr.SyncState)
			require.NotNil(s.T(), pr.LastSyncAt)
		}
	})

	s.Run("a repeated distribution without force is a no-op", func() {
		approved := s.approvedRate(newRateRequest("Steady BAR", 5, start, end))

		first := s.distribute(approved.ID, reqdto.DistributeRequest{Mode: "broadcast"})
		require.Equal(s.T(), rate.SyncSynced, first.Overall)
		version := s.getRate(approved.ID).Version

		second := s.distribute(approved.ID, reqdto.DistributeRequest{Mode: "broadcast"})
		require.Equal(s.T(), rate.SyncSynced, second.Overall)
		require.Equal(s.T(), version, s.getRate(approved.ID).Version)
	})

	s.Run("exclusions shrink the target set", func() {
		approved := s.approvedRate(newRateRequest("Partial BAR", 5, start, end))

		result := s.distribute(approved.ID, reqdto.DistributeRequest{
			Mode:       "broadcast",
			Exclusions: []uuid.UUID{dbtest.SeedSeasideID},
		})

		require.ElementsMatch(s.T(), []uuid.UUID{dbtest.SeedDowntownID}, result.Success)
		require.Empty(s.T(), result.Failed)
	})

	s.Run("a selective target outside the group is rejected", func() {
		approved := s.approvedRate(newRateRequest("Selective BAR", 5, start, end))

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, ratesURL+"/"+approved.ID.String()+"/distribute",
			reqdto.DistributeRequest{Mode: "selective", Targets: []uuid.UUID{uuid.New()}}, s.token(identity.RoleRevenueManager))
		httptest.AssertErrorResponse(s.T(), w, http.StatusUnprocessableEntity, "")
	})

	s.Run("a draft rate cannot be distributed", func() {
		draft := s.createRate(newRateRequest("Draft BAR", 5, start, end))

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, ratesURL+"/"+draft.ID.String()+"/distribute",
			reqdto.DistributeRequest{Mode: "broadcast"}, s.token(identity.RoleRevenueManager))
		httptest.AssertErrorResponse(s.T(), w, http.StatusConflict, "")
	})

	s.Run("preview resolves targets without touching state", func() {
		approved := s.approvedRate(newRateRequest("Previewed BAR", 5, start, end))

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, ratesURL+"/"+approved.ID.String()+"/preview",
			reqdto.DistributeRequest{Mode: "broadcast"}, s.token(identity.RoleRevenueManager))
		var result commands.DistributionResult
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &result)

		require.ElementsMatch(s.T(), []uuid.UUID{dbtest.SeedDowntownID, dbtest.SeedSeasideID}, result.Success)
		require.Equal(s.T(), "pending", s.getRate(approved.ID).SyncState)
	})
}

func (s *rateSuite) TestConflicts() {
	start := time.Now().AddDate(0, 0, -1)
	end := start.AddDate(0, 2, 0)
	innerStart := start.AddDate(0, 0, 14)
	innerEnd := start.AddDate(0, 0, 19)

	s.Run("an overlapping higher-priority rate surfaces an alert", func() {
		low := s.approvedRate(newRateRequest("Season BAR", 5, start, end))
		s.distribute(low.ID, reqdto.DistributeRequest{Mode: "broadcast"})

		highReq := newRateRequest("Event BAR", 7, innerStart, innerEnd)
		highReq.Pricing.BasePrice = decimal.NewFromInt(150)
		high := s.approvedRate(highReq)

		result := s.distribute(high.ID, reqdto.DistributeRequest{Mode: "broadcast"})

		require.Equal(s.T(), rate.SyncSynced, result.Overall)
		require.Len(s.T(), result.Conflicts, 1)
		conflict := result.Conflicts[0]
		require.Equal(s.T(), low.ID, conflict.OtherRateID)
		require.Equal(s.T(), "overlap", conflict.Kind)
		require.Equal(s.T(), "alert", conflict.Action)
		require.False(s.T(), conflict.AutoResolved)
	})

	s.Run("failOnConflict blocks every target until the conflict is settled", func() {
		low := s.approvedRate(newRateRequest("Season BAR", 5, start, end))
		s.distribute(low.ID, reqdto.DistributeRequest{Mode: "broadcast"})

		highReq := newRateRequest("Event BAR", 7, innerStart, innerEnd)
		highReq.Pricing.BasePrice = decimal.NewFromInt(150)
		high := s.approvedRate(highReq)

		result := s.distribute(high.ID, reqdto.DistributeRequest{Mode: "broadcast", FailOnConflict: true})

		require.Equal(s.T(), rate.SyncFailed, result.Overall)
		require.Empty(s.T(), result.Success)
		require.Len(s.T(), result.Failed, 2)
		for _, f := range result.Failed {
			require.Equal(s.T(), "conflict_unresolved", f.Reason)
		}

		// The blocked run lands in the stored rate, not just the response.
		stored := s.getRate(high.ID)
		require.Equal(s.T(), "failed", stored.SyncState)
		require.Len(s.T(), stored.Properties, 2)
		for _, pr := range stored.Properties {
			require.Equal(s.T(), "failed", pr.SyncState)
			require.NotEmpty(s.T(), pr.SyncError)
		}
	})

	s.Run("create_exception carves the overlap out of the losing rate", func() {
		low := s.approvedRate(newRateRequest("Season BAR", 5, start, end))
		s.distribute(low.ID, reqdto.DistributeRequest{Mode: "broadcast"})

		highReq := newRateRequest("Event BAR", 7, innerStart, innerEnd)
		highReq.Pricing.BasePrice = decimal.NewFromInt(150)
		high := s.approvedRate(highReq)
		s.distribute(high.ID, reqdto.DistributeRequest{Mode: "broadcast"})

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/rates/conflicts/resolve",
			reqdto.ResolveConflictRequest{RateID: high.ID, OtherRateID: low.ID, Resolution: "create_exception"},
			s.token(identity.RoleRevenueManager))
		var summary commands.ConflictSummary
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &summary)

		require.Equal(s.T(), low.ID, summary.OtherRateID)
		require.Equal(s.T(), "overlap", summary.Kind)
		require.Equal(s.T(), "merge", summary.Action)

		carved := s.getRate(low.ID)
		require.Len(s.T(), carved.Validity.Excluded, 1)
		require.Empty(s.T(), s.getRate(high.ID).Validity.Excluded)

		// The lower-priority rate no longer quotes inside the carved window.
		quoteReq := reqdto.QuoteRequest{
			RateID:     low.ID,
			PropertyID: dbtest.SeedDowntownID,
			RoomTypeID: dbtest.SeedDowntownStandardID,
			CheckIn:    dateStr(innerStart.AddDate(0, 0, 2)),
			CheckOut:   dateStr(innerStart.AddDate(0, 0, 4)),
			Guests:     2,
			Channel:    "direct",
		}
		qw := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, quotesURL, quoteReq, s.token(identity.RoleFrontDesk))
		var quote response.QuoteResponse
		httptest.AssertSuccessResponse(s.T(), qw, http.StatusOK, &quote)
		require.NotNil(s.T(), quote.Unavailable)
		require.Equal(s.T(), "OutsideValidity", quote.Unavailable.Reason)
	})

	s.Run("accept_property flags a per-property override on the centralized rate", func() {
		low := s.approvedRate(newRateRequest("Season BAR", 5, start, end))
		s.distribute(low.ID, reqdto.DistributeRequest{Mode: "broadcast"})

		highReq := newRateRequest("Event BAR", 7, innerStart, innerEnd)
		highReq.Pricing.BasePrice = decimal.NewFromInt(150)
		high := s.approvedRate(highReq)
		s.distribute(high.ID, reqdto.DistributeRequest{Mode: "broadcast"})

		downtown := dbtest.SeedDowntownID
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/rates/conflicts/resolve",
			reqdto.ResolveConflictRequest{RateID: high.ID, OtherRateID: low.ID, Resolution: "accept_property", PropertyID: &downtown},
			s.token(identity.RoleRevenueManager))
		var summary commands.ConflictSummary
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &summary)
		require.Equal(s.T(), "ignore", summary.Action)

		var overridden bool
		for _, pr := range s.getRate(high.ID).Properties {
			if pr.PropertyID == downtown {
				overridden = pr.IsOverride
			}
		}
		require.True(s.T(), overridden)

		// Inheritance pushes now skip the property that kept its local rate.
		result := s.distribute(high.ID, reqdto.DistributeRequest{Mode: "inheritance", Force: true})
		require.Equal(s.T(), []uuid.UUID{dbtest.SeedSeasideID}, result.Success)

		// Both validity windows stay intact.
		require.Empty(s.T(), s.getRate(low.ID).Validity.Excluded)
		require.Empty(s.T(), s.getRate(high.ID).Validity.Excluded)
	})

	s.Run("accept_property without a property is rejected", func() {
		low := s.approvedRate(newRateRequest("Season BAR", 5, start, end))
		high := s.approvedRate(newRateRequest("Event BAR", 7, innerStart, innerEnd))

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/rates/conflicts/resolve",
			reqdto.ResolveConflictRequest{RateID: high.ID, OtherRateID: low.ID, Resolution: "accept_property"},
			s.token(identity.RoleRevenueManager))
		httptest.AssertErrorResponse(s.T(), w, http.StatusUnprocessableEntity, "")
	})

	s.Run("autoResolve carves the loser during distribution", func() {
		low := s.approvedRate(newRateRequest("Season BAR", 5, start, end))
		s.distribute(low.ID, reqdto.DistributeRequest{Mode: "broadcast"})

		highReq := newRateRequest("Event BAR", 7, innerStart, innerEnd)
		highReq.Pricing.BasePrice = decimal.NewFromInt(150)
		high := s.approvedRate(highReq)

		result := s.distribute(high.ID, reqdto.DistributeRequest{Mode: "broadcast", AutoResolve: true})

		require.Equal(s.T(), rate.SyncSynced, result.Overall)
		require.Len(s.T(), result.Conflicts, 1)
		require.True(s.T(), result.Conflicts[0].AutoResolved)
		require.Equal(s.T(), "merge", result.Conflicts[0].Action)

		require.Len(s.T(), s.getRate(low.ID).Validity.Excluded, 1)
	})

	s.Run("a duplicate is superseded by the higher-priority copy", func() {
		low := s.approvedRate(newRateRequest("Twin BAR", 5, start, end))
		high := s.approvedRate(newRateRequest("Twin BAR Copy", 7, start, end))

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, ratesURL+"/"+low.ID.String()+"/distribute",
			reqdto.DistributeRequest{Mode: "broadcast"}, s.token(identity.RoleRevenueManager))
		httptest.AssertErrorResponse(s.T(), w, http.StatusConflict, "")

		result := s.distribute(high.ID, reqdto.DistributeRequest{Mode: "broadcast"})
		require.Equal(s.T(), rate.SyncSynced, result.Overall)
		require.Len(s.T(), result.Conflicts, 1)
		require.Equal(s.T(), "duplicate", result.Conflicts[0].Kind)
		require.True(s.T(), result.Conflicts[0].AutoResolved)
		require.Equal(s.T(), "override", result.Conflicts[0].Action)
	})
}

func (s *rateSuite) TestGroupSync() {
	start := time.Now().AddDate(0, 0, -1)

	s.Run("sync re-distributes every approved rate of the group", func() {
		first := s.approvedRate(newRateRequest("Spring BAR", 5, start, start.AddDate(0, 0, 10)))
		second := s.approvedRate(newRateRequest("Summer BAR", 5, start.AddDate(0, 0, 20), start.AddDate(0, 0, 30)))
		s.createRate(newRateRequest("Ignored draft", 5, start, start.AddDate(0, 0, 10)))

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/groups/"+dbtest.SeedGroupID.String()+"/sync",
			reqdto.SyncGroupRequest{}, s.token(identity.RoleRevenueManager))
		var resp struct {
			GroupID uuid.UUID                     `json:"groupId"`
			Results []commands.DistributionResult `json:"results"`
		}
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)

		require.Equal(s.T(), dbtest.SeedGroupID, resp.GroupID)
		require.Len(s.T(), resp.Results, 2)
		for _, res := range resp.Results {
			require.Equal(s.T(), rate.SyncSynced, res.Overall)
		}
		require.ElementsMatch(s.T(),
			[]uuid.UUID{first.ID, second.ID},
			[]uuid.UUID{resp.Results[0].RateID, resp.Results[1].RateID})
	})

	s.Run("an unknown group is rejected", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/groups/"+uuid.NewString()+"/sync",
			reqdto.SyncGroupRequest{}, s.token(identity.RoleRevenueManager))
		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "")
	})
}
