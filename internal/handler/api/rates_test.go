//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"rategrid/internal/domain/identity"
	"rategrid/internal/domain/rate"
	"rategrid/internal/handler/api"
	reqdto "rategrid/internal/handler/dto/request"
	resdto "rategrid/internal/handler/dto/response"
	"rategrid/internal/pkg/errs"
	"rategrid/internal/usecase/commands"
	"rategrid/internal/usecase/queries"
	"rategrid/tests/common/builder"
	"rategrid/tests/common/httptest"
	"rategrid/tests/common/testutil"
	commandsmock "rategrid/tests/mock/commands"
	queriesmock "rategrid/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type RateHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockRateCommands
	mockQueries  *queriesmock.MockRateQueries
	handler      *api.RateHandler
}

func (s *RateHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockRateCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockRateQueries(s.mockCtrl)
	s.handler = api.NewRateHandler(s.mockCommands, s.mockQueries)

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		// Mock authenticated revenue manager
		c.Set("principal", identity.Principal{UserID: uuid.New(), Role: identity.RoleRevenueManager})
		c.Next()
	}

	// Setup routes
	s.router.POST("/rates", authMiddleware, s.handler.Create)
	s.router.GET("/rates", s.handler.List)
	s.router.GET("/rates/:id", s.handler.Get)
	s.router.PATCH("/rates/:id", authMiddleware, s.handler.Update)
	s.router.DELETE("/rates/:id", authMiddleware, s.handler.Delete)
	s.router.POST("/rates/:id/duplicate", authMiddleware, s.handler.Duplicate)
	s.router.POST("/rates/:id/transition", authMiddleware, s.handler.Transition)
	s.router.GET("/rates/:id/history", s.handler.History)
}

func (s *RateHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestRateHandlerSuite(t *testing.T) {
	suite.Run(t, new(RateHandlerTestSuite))
}

type testCaseRate struct {
	name         string
	mutate       func(m map[string]any)
	expectCode   int
	expectInBody string
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *RateHandlerTestSuite) TestCreate() {
	url := "/rates"

	reqBody := builder.NewRateBuilder().BuildCreateRequestDTO()
	returnView := builder.NewRateBuilder().BuildViewQuery()

	// Validation boundary cases
	bound := []testCaseRate{
		{name: "priority boundary OK (1)", mutate: testutil.Field("priority", 1), expectCode: http.StatusCreated},
		{name: "priority boundary OK (10)", mutate: testutil.Field("priority", 10), expectCode: http.StatusCreated},
		{name: "priority boundary invalid (0)", mutate: testutil.Field("priority", 0), expectCode: http.StatusBadRequest},
		{name: "priority boundary invalid (11)", mutate: testutil.Field("priority", 11), expectCode: http.StatusBadRequest},
		{name: "name length OK (200 chars)", mutate: testutil.Field("name", strings.Repeat("a", 200)), expectCode: http.StatusCreated},
		{name: "name length invalid (201 chars)", mutate: testutil.Field("name", strings.Repeat("a", 201)), expectCode: http.StatusBadRequest},
	}

	missing := []testCaseRate{
		{name: "missing field: groupId (required)", mutate: testutil.Field("groupId", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: name (required)", mutate: testutil.Field("name", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: rateType (required)", mutate: testutil.Field("rateType", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: priority (required)", mutate: testutil.Field("priority", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: pricing (required)", mutate: testutil.Field("pricing", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: roomTypes (required)", mutate: testutil.Field("roomTypes", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: validity (required)", mutate: testutil.Field("validity", nil), expectCode: http.StatusBadRequest},
	}

	nested := []testCaseRate{
		{
			name: "currency must be 3 letters",
			mutate: func(m map[string]any) {
				m["pricing"].(map[string]any)["currency"] = "EURO"
			},
			expectCode: http.StatusBadRequest,
		},
		{
			name:       "empty roomTypes array",
			mutate:     testutil.Field("roomTypes", []any{}),
			expectCode: http.StatusBadRequest,
		},
		{
			name: "unknown channel name",
			mutate: func(m map[string]any) {
				m["channels"] = []map[string]any{{
					"channel": "airbnb",
					"markup":  map[string]any{"type": "percentage", "value": "5"},
				}}
			},
			expectCode: http.StatusBadRequest,
		},
		{
			name: "weekday out of range",
			mutate: func(m map[string]any) {
				m["validity"].(map[string]any)["weekdays"] = []int{7}
			},
			expectCode: http.StatusBadRequest,
		},
	}

	allValidationTestCases := [][]testCaseRate{bound, missing, nested}

	s.Run("success: returns 201 Created for valid request", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(returnView, nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var response resdto.RateResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(returnView.ID, response.ID)
		s.Equal(returnView.Name, response.Name)
		httptest.AssertHeaders(s.T(), rec, map[string]string{"Location": "/api/rates/" + returnView.ID.String()})
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		for _, testCaseGroup := range allValidationTestCases {
			for _, tc := range testCaseGroup {
				s.Run(tc.name, func() {
					requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)

					if tc.expectCode == http.StatusCreated {
						s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
							Return(returnView, nil).Times(1)
					}
					rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "bearer-token")
					if tc.expectCode == http.StatusCreated {
						httptest.AssertSuccessResponse(s.T(), rec, tc.expectCode, nil)
					} else {
						httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
					}
				})
			}
		}
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "domain validation rejected",
				commandsError:  errs.Mark(errs.New("base price must not be negative"), errs.ErrValidation),
				expectedStatus: http.StatusUnprocessableEntity,
				expectedMsg:    "Validation failed",
			},
			{
				name:           "unknown group",
				commandsError:  commands.ErrGroupNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Group not found",
			},
			{
				name:           "duplicate name in group",
				commandsError:  errs.Mark(errs.New("rate name already used"), errs.ErrValidation),
				expectedStatus: http.StatusUnprocessableEntity,
				expectedMsg:    "Validation failed",
			},
			{
				name:           "internal server error",
				commandsError:  errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Create(gomock.Any(), reqBody, gomock.Any()).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestGet
// ================================================================================

func (s *RateHandlerTestSuite) TestGet() {
	rateID := uuid.New()
	url := "/rates/" + rateID.String()

	returnView := builder.NewRateBuilder().BuildViewQuery()
	returnView.ID = rateID

	s.Run("success: returns 200 OK with RateResponse", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), rateID).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var response resdto.RateResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(rateID, response.ID)
		s.Equal(returnView.Name, response.Name)
		s.Equal(returnView.ApprovalStatus, response.ApprovalStatus)
		s.Equal(returnView.Priority, response.Priority)
	})

	s.Run("error: 400 Bad Request for invalid UUID", func() {
		invalidURL := "/rates/invalid-uuid"
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, invalidURL, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid rate id")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			queriesError   error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "rate not found",
				queriesError:   errs.ErrRateNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Rate not found",
			},
			{
				name:           "internal server error",
				queriesError:   errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockQueries.EXPECT().GetByID(gomock.Any(), rateID).
					Return(nil, tc.queriesError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestList
// ================================================================================

func (s *RateHandlerTestSuite) TestList() {
	baseURL := "/rates"

	items := []*queries.RateListItem{
		builder.NewRateBuilder().WithPriority(8).BuildListItem(),
		builder.NewRateBuilder().AsCorporate().BuildListItem(),
		builder.NewRateBuilder().BuildListItem(),
	}

	s.Run("success: returns rate list with defaults", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), queries.RateListFilter{}, (*queries.Cursor)(nil), 20).
			Return(items, nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, baseURL, nil, "")

		var response map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		rates, ok := response["rates"].([]any)
		s.True(ok)
		s.Equal(len(items), len(rates))
	})

	s.Run("success: pagination and filters work", func() {
		groupID := uuid.New()
		propertyID := uuid.New()
		url := baseURL + "?groupId=" + groupID.String() + "&propertyId=" + propertyID.String() +
			"&status=approved&rateType=bar&activeOn=2026-06-15&limit=10&after=cursor123"

		status := "approved"
		rateType := "bar"
		activeOn := time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)
		expectedFilter := queries.RateListFilter{
			GroupID:    &groupID,
			PropertyID: &propertyID,
			Status:     &status,
			RateType:   &rateType,
			ActiveOn:   &activeOn,
		}
		expectedCursor := &queries.Cursor{After: "cursor123"}
		nextCursor := &queries.Cursor{After: "next_cursor456"}

		s.mockQueries.EXPECT().List(gomock.Any(), expectedFilter, expectedCursor, 10).
			Return(items[:2], nextCursor, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var response map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		rates, ok := response["rates"].([]any)
		s.True(ok)
		s.Equal(2, len(rates))
		s.Equal("next_cursor456", response["nextCursor"])
	})

	s.Run("success: limit is clamped to the maximum", func() {
		url := baseURL + "?limit=500"
		s.mockQueries.EXPECT().List(gomock.Any(), queries.RateListFilter{}, (*queries.Cursor)(nil), queries.MaxListLimit).
			Return(items, nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 400 Bad Request for malformed filters", func() {
		testCases := []struct {
			name   string
			params string
		}{
			{name: "groupId is not a UUID", params: "?groupId=not-a-uuid"},
			{name: "propertyId is not a UUID", params: "?propertyId=42"},
			{name: "activeOn is not a date", params: "?activeOn=June-15"},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, baseURL+tc.params, nil, "")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid filter")
			})
		}
	})

	s.Run("error: 400 Bad Request for undecodable cursor", func() {
		url := baseURL + "?after=garbage"
		s.mockQueries.EXPECT().List(gomock.Any(), queries.RateListFilter{}, &queries.Cursor{After: "garbage"}, 20).
			Return(nil, nil, queries.ErrInvalidCursor).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid cursor")
	})

	s.Run("error: returns 500 Internal Server Error on query error", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), queries.RateListFilter{}, (*queries.Cursor)(nil), 20).
			Return(nil, nil, errors.New("database error")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, baseURL, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})
}

// ================================================================================
// TestUpdate
// ================================================================================

func (s *RateHandlerTestSuite) TestUpdate() {
	rateID := uuid.New()
	url := "/rates/" + rateID.String()

	reqBody := builder.NewRateBuilder().BuildUpdateRequestDTO()
	returnView := builder.NewRateBuilder().BuildViewQuery()
	returnView.ID = rateID

	testCases := []testCaseRate{
		{name: "priority boundary OK (1)", mutate: testutil.Field("priority", 1), expectCode: http.StatusOK},
		{name: "priority boundary OK (10)", mutate: testutil.Field("priority", 10), expectCode: http.StatusOK},
		{name: "priority boundary invalid (0)", mutate: testutil.Field("priority", 0), expectCode: http.StatusBadRequest},
		{name: "priority boundary invalid (11)", mutate: testutil.Field("priority", 11), expectCode: http.StatusBadRequest},
		{name: "name length invalid (201 chars)", mutate: testutil.Field("name", strings.Repeat("a", 201)), expectCode: http.StatusBadRequest},
	}

	s.Run("success: returns 200 OK with updated rate", func() {
		s.mockCommands.EXPECT().Update(gomock.Any(), rateID, gomock.Any(), gomock.Any()).
			Return(returnView, nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, reqBody, "bearer-token")

		var response resdto.RateResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(rateID, response.ID)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)

				if tc.expectCode == http.StatusOK {
					s.mockCommands.EXPECT().Update(gomock.Any(), rateID, gomock.Any(), gomock.Any()).
						Return(returnView, nil).Times(1)
				}
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, requestMap, "bearer-token")
				if tc.expectCode == http.StatusOK {
					httptest.AssertSuccessResponse(s.T(), rec, tc.expectCode, nil)
				} else {
					httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
				}
			})
		}
	})

	s.Run("error: 400 Bad Request for invalid UUID", func() {
		invalidURL := "/rates/invalid-uuid"
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, invalidURL, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid rate id")
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "rate not editable in current status",
				commandsError:  errs.Mark(rate.ErrNotEditable, errs.ErrStateViolation),
				expectedStatus: http.StatusConflict,
				expectedMsg:    "Operation not allowed in the current state",
			},
			{
				name:           "rate not found",
				commandsError:  errs.ErrRateNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Rate not found",
			},
			{
				name:           "version conflict after retries",
				commandsError:  errs.Mark(commands.ErrRateVersionConflict, errs.ErrTransient),
				expectedStatus: http.StatusServiceUnavailable,
				expectedMsg:    "Temporarily unavailable, retry later",
			},
			{
				name:           "internal server error",
				commandsError:  errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Update(gomock.Any(), rateID, reqBody, gomock.Any()).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, reqBody, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestDelete
// ================================================================================

func (s *RateHandlerTestSuite) TestDelete() {
	rateID := uuid.New()
	url := "/rates/" + rateID.String()

	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().Delete(gomock.Any(), rateID, gomock.Any()).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 400 Bad Request for invalid UUID", func() {
		invalidURL := "/rates/invalid-uuid"
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, invalidURL, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid rate id")
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "only draft or rejected rates can be deleted",
				commandsError:  errs.Mark(rate.ErrNotDeletable, errs.ErrStateViolation),
				expectedStatus: http.StatusConflict,
				expectedMsg:    "Operation not allowed in the current state",
			},
			{
				name:           "rate not found",
				commandsError:  errs.ErrRateNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Rate not found",
			},
			{
				name:           "internal server error",
				commandsError:  errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Delete(gomock.Any(), rateID, gomock.Any()).
					Return(tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestDuplicate
// ================================================================================

func (s *RateHandlerTestSuite) TestDuplicate() {
	rateID := uuid.New()
	url := "/rates/" + rateID.String() + "/duplicate"

	reqBody := reqdto.DuplicateRateRequest{Name: "Summer BAR copy"}
	returnView := builder.NewRateBuilder().WithName("Summer BAR copy").BuildViewQuery()

	s.Run("success: returns 201 Created with the copy", func() {
		s.mockCommands.EXPECT().Duplicate(gomock.Any(), rateID, reqBody, gomock.Any()).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var response resdto.RateResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal("Summer BAR copy", response.Name)
		httptest.AssertHeaders(s.T(), rec, map[string]string{"Location": "/api/rates/" + returnView.ID.String()})
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		testCases := []testCaseRate{
			{name: "missing field: name (required)", mutate: testutil.Field("name", nil), expectCode: http.StatusBadRequest},
			{name: "name length invalid (201 chars)", mutate: testutil.Field("name", strings.Repeat("a", 201)), expectCode: http.StatusBadRequest},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
			})
		}
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: 404 Not Found for missing source rate", func() {
		s.mockCommands.EXPECT().Duplicate(gomock.Any(), rateID, reqBody, gomock.Any()).
			Return(nil, errs.ErrRateNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Rate not found")
	})
}

// ================================================================================
// TestTransition
// ================================================================================

func (s *RateHandlerTestSuite) TestTransition() {
	rateID := uuid.New()
	url := "/rates/" + rateID.String() + "/transition"

	reqBody := reqdto.TransitionRateRequest{Action: "approve"}
	returnView := builder.NewRateBuilder().AsApproved().BuildViewQuery()
	returnView.ID = rateID

	s.Run("success: returns 200 OK with the transitioned rate", func() {
		s.mockCommands.EXPECT().Transition(gomock.Any(), rateID, reqBody, gomock.Any()).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var response resdto.RateResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("approved", response.ApprovalStatus)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		testCases := []testCaseRate{
			{name: "missing field: action (required)", mutate: testutil.Field("action", nil), expectCode: http.StatusBadRequest},
			{name: "unknown action", mutate: testutil.Field("action", "publish"), expectCode: http.StatusBadRequest},
			{name: "reason length invalid (501 chars)", mutate: testutil.Field("reason", strings.Repeat("a", 501)), expectCode: http.StatusBadRequest},
			{name: "reason length OK (500 chars)", mutate: testutil.Field("reason", strings.Repeat("a", 500)), expectCode: http.StatusOK},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)

				if tc.expectCode == http.StatusOK {
					s.mockCommands.EXPECT().Transition(gomock.Any(), rateID, gomock.Any(), gomock.Any()).
						Return(returnView, nil).Times(1)
				}
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "bearer-token")
				if tc.expectCode == http.StatusOK {
					httptest.AssertSuccessResponse(s.T(), rec, tc.expectCode, nil)
				} else {
					httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
				}
			})
		}
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "transition not allowed from current status",
				commandsError:  errs.Mark(rate.ErrInvalidTransition, errs.ErrStateViolation),
				expectedStatus: http.StatusConflict,
				expectedMsg:    "Operation not allowed in the current state",
			},
			{
				name:           "rate not found",
				commandsError:  errs.ErrRateNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Rate not found",
			},
			{
				name:           "internal server error",
				commandsError:  errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Transition(gomock.Any(), rateID, reqBody, gomock.Any()).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestHistory
// ================================================================================

func (s *RateHandlerTestSuite) TestHistory() {
	rateID := uuid.New()
	url := "/rates/" + rateID.String() + "/history"

	entries := []*queries.HistoryEntry{
		{At: time.Date(2026, time.May, 1, 10, 0, 0, 0, time.UTC), Actor: uuid.New(), Action: "created", FromVersion: 0, ToVersion: 1},
		{At: time.Date(2026, time.May, 2, 9, 30, 0, 0, time.UTC), Actor: uuid.New(), Action: "transitioned", Detail: "submit", FromVersion: 1, ToVersion: 2},
	}

	s.Run("success: returns 200 OK with the change log", func() {
		s.mockQueries.EXPECT().History(gomock.Any(), rateID).
			Return(entries, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var response resdto.RateHistoryResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response.Entries, 2)
		s.Equal("created", response.Entries[0].Action)
		s.Equal(int64(2), response.Entries[1].ToVersion)
	})

	s.Run("error: 400 Bad Request for invalid UUID", func() {
		invalidURL := "/rates/invalid-uuid/history"
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, invalidURL, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid rate id")
	})

	s.Run("error: 404 Not Found for missing rate", func() {
		s.mockQueries.EXPECT().History(gomock.Any(), rateID).
			Return(nil, errs.ErrRateNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Rate not found")
	})
}
