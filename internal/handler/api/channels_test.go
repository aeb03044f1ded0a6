//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"rategrid/internal/domain/inventory"
	"rategrid/internal/handler/api"
	reqdto "rategrid/internal/handler/dto/request"
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

type ChannelHandlerTestSuite struct {
	suite.Suite
	router              *gin.Engine
	mockCtrl            *gomock.Controller
	mockInvCommands     *commandsmock.MockInventoryCommands
	mockBookingCommands *commandsmock.MockBookingCommands
	mockInvQueries      *queriesmock.MockInventoryQueries
	handler             *api.ChannelHandler
}

func (s *ChannelHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockInvCommands = commandsmock.NewMockInventoryCommands(s.mockCtrl)
	s.mockBookingCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockInvQueries = queriesmock.NewMockInventoryQueries(s.mockCtrl)
	s.handler = api.NewChannelHandler(s.mockInvCommands, s.mockBookingCommands, s.mockInvQueries)

	// Setup routes
	s.router.GET("/channel/snapshot", s.handler.Snapshot)
	s.router.POST("/channel/ack", s.handler.Ack)
	s.router.POST("/webhooks/:channel", s.handler.Webhook)
}

func (s *ChannelHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestChannelHandlerSuite(t *testing.T) {
	suite.Run(t, new(ChannelHandlerTestSuite))
}

type testCaseChannel struct {
	name         string
	mutate       func(m map[string]any)
	expectCode   int
	expectInBody string
}

// ================================================================================
// TestSnapshot
// ================================================================================

func (s *ChannelHandlerTestSuite) TestSnapshot() {
	url := "/channel/snapshot"

	records := []*queries.SyncRecord{
		builder.NewInventoryBuilder().BuildSyncRecord(),
		builder.NewInventoryBuilder().WithSold(5).AsStopSell().BuildSyncRecord(),
	}

	s.Run("success: returns the first dirty page with defaults", func() {
		s.mockInvQueries.EXPECT().SnapshotForSync(gomock.Any(), (*uuid.UUID)(nil), (*queries.Cursor)(nil), 20).
			Return(records, nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var response map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		rows, ok := response["records"].([]any)
		s.True(ok)
		s.Equal(len(records), len(rows))
	})

	s.Run("success: property filter and pagination work", func() {
		propertyID := uuid.New()
		pagedURL := url + "?propertyId=" + propertyID.String() + "&limit=50&after=cursor123"
		expectedCursor := &queries.Cursor{After: "cursor123"}
		nextCursor := &queries.Cursor{After: "next_cursor456"}

		s.mockInvQueries.EXPECT().SnapshotForSync(gomock.Any(), &propertyID, expectedCursor, 50).
			Return(records[:1], nextCursor, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, pagedURL, nil, "")

		var response map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		rows, ok := response["records"].([]any)
		s.True(ok)
		s.Equal(1, len(rows))
		s.Equal("next_cursor456", response["nextCursor"])
	})

	s.Run("error: 400 Bad Request for malformed propertyId", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?propertyId=42", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid propertyId")
	})

	s.Run("error: 400 Bad Request for undecodable cursor", func() {
		s.mockInvQueries.EXPECT().SnapshotForSync(gomock.Any(), (*uuid.UUID)(nil), &queries.Cursor{After: "garbage"}, 20).
			Return(nil, nil, queries.ErrInvalidCursor).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?after=garbage", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid cursor")
	})

	s.Run("error: returns 500 Internal Server Error on query error", func() {
		s.mockInvQueries.EXPECT().SnapshotForSync(gomock.Any(), (*uuid.UUID)(nil), (*queries.Cursor)(nil), 20).
			Return(nil, nil, errors.New("database error")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})
}

// ================================================================================
// TestAck
// ================================================================================

func (s *ChannelHandlerTestSuite) TestAck() {
	url := "/channel/ack"

	propertyID := uuid.New()
	roomTypeID := uuid.New()
	reqBody := reqdto.ChannelAckRequest{
		PropertyID: propertyID,
		RoomTypeID: roomTypeID,
		Date:       "2026-06-10",
		Channel:    "booking.com",
	}
	expectedInput := inventory.ClearDirtyInput{
		PropertyID: propertyID,
		RoomTypeID: roomTypeID,
		Date:       time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC),
		Channel:    "booking.com",
	}

	validationTestCases := []testCaseChannel{
		{name: "missing field: propertyId (required)", mutate: testutil.Field("propertyId", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: date (required)", mutate: testutil.Field("date", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: channel (required)", mutate: testutil.Field("channel", nil), expectCode: http.StatusBadRequest},
	}

	s.Run("success: returns 204 No Content after clearing the dirty flag", func() {
		s.mockInvCommands.EXPECT().ClearDirty(gomock.Any(), expectedInput).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		for _, tc := range validationTestCases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
			})
		}
	})

	s.Run("error: 400 Bad Request for a malformed date", func() {
		requestMap := testutil.DtoMap(s.T(), reqBody, testutil.Field("date", "junk"))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid date format")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "date not materialized",
				commandsError:  errs.Mark(commands.ErrSpanNotMaterialized, errs.ErrInsufficientInventory),
				expectedStatus: http.StatusConflict,
				expectedMsg:    "Insufficient inventory",
			},
			{
				name:           "retries exhausted",
				commandsError:  errs.Mark(errs.New("max retries exceeded"), errs.ErrTransient),
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
				s.mockInvCommands.EXPECT().ClearDirty(gomock.Any(), expectedInput).
					Return(tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestWebhook
// ================================================================================

func (s *ChannelHandlerTestSuite) TestWebhook() {
	url := "/webhooks/booking.com"

	reqBody := builder.NewBookingBuilder().BuildChannelEventDTO("new_booking")

	validationTestCases := []testCaseChannel{
		{name: "missing field: eventType (required)", mutate: testutil.Field("eventType", nil), expectCode: http.StatusBadRequest},
		{name: "eventType outside the allowed set", mutate: testutil.Field("eventType", "refund"), expectCode: http.StatusBadRequest},
		{name: "missing field: externalBookingId (required)", mutate: testutil.Field("externalBookingId", nil), expectCode: http.StatusBadRequest},
		{name: "externalBookingId too long (129)", mutate: testutil.Field("externalBookingId", strings.Repeat("x", 129)), expectCode: http.StatusBadRequest},
		{name: "missing field: propertyId (required)", mutate: testutil.Field("propertyId", nil), expectCode: http.StatusBadRequest},
		{name: "guest country must be 2 letters", mutate: testutil.Field("guestCountry", "DEU"), expectCode: http.StatusBadRequest},
	}

	s.Run("success: returns 200 OK with the processed outcome", func() {
		result := &commands.ChannelEventResult{
			BookingID: uuid.New(),
			EventType: "new_booking",
			Outcome:   "processed",
		}
		s.mockBookingCommands.EXPECT().HandleChannelEvent(gomock.Any(), "booking.com", reqBody).
			Return(result, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var response map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(result.BookingID.String(), response["bookingId"])
		s.Equal("new_booking", response["eventType"])
		s.Equal("processed", response["outcome"])
	})

	s.Run("success: replayed event returns the stored outcome", func() {
		result := &commands.ChannelEventResult{
			BookingID: uuid.New(),
			EventType: "new_booking",
			Outcome:   "replayed",
		}
		s.mockBookingCommands.EXPECT().HandleChannelEvent(gomock.Any(), "booking.com", reqBody).
			Return(result, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var response map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("replayed", response["outcome"])
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		for _, tc := range validationTestCases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
			})
		}
	})

	s.Run("error: 422 Unprocessable Entity for an unknown channel", func() {
		s.mockBookingCommands.EXPECT().HandleChannelEvent(gomock.Any(), "whatsapp", reqBody).
			Return(nil, errs.Mark(commands.ErrUnknownChannel, errs.ErrValidation)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/webhooks/whatsapp", reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "Validation failed")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "unmapped room code",
				commandsError:  errs.Mark(commands.ErrUnknownRoomCode, errs.ErrValidation),
				expectedStatus: http.StatusUnprocessableEntity,
				expectedMsg:    "No room type mapped for this room code",
			},
			{
				name:           "cancellation for an unknown booking",
				commandsError:  errs.ErrBookingNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Booking not found",
			},
			{
				name:           "concurrent replay race",
				commandsError:  errs.Mark(errs.New("duplicate webhook event"), errs.ErrTransient),
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
				s.mockBookingCommands.EXPECT().HandleChannelEvent(gomock.Any(), "booking.com", reqBody).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}
