package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"vyapkart/internal/delivery/api/response"
	domainerrors "vyapkart/internal/domain/errors"
	"vyapkart/internal/errors"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMiddleware_HandleHTTPError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantDetails any
	}{
		{
			name:        "client error keeps details",
			err:         errors.WithStack(domainerrors.ErrInvalidSellerData.WithDetails("taxId has an invalid format")),
			wantStatus:  http.StatusBadRequest,
			wantCode:    "INVALID_SELLER_DATA",
			wantDetails: "taxId has an invalid format",
		},
		{
			name:       "wrapped app error",
			err:        errors.Wrap(domainerrors.ErrEmailAlreadyLinked.WrapMessage("asha@example.com"), "reconcile"),
			wantStatus: http.StatusBadRequest,
			wantCode:   "EMAIL_ALREADY_LINKED",
		},
		{
			name:       "forbidden drops details",
			err:        domainerrors.ErrAccountBlocked.WithDetails("status BLOCKED"),
			wantStatus: http.StatusForbidden,
			wantCode:   "ACCOUNT_BLOCKED",
		},
		{
			name:       "database error is internal",
			err:        domainerrors.NewDatabaseExecuteError(errors.New("pq: connection reset"), "insert account"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_ERROR",
		},
		{
			name:       "wrapped database error is internal",
			err:        errors.Wrap(domainerrors.NewDatabaseExecuteError(errors.New("pq: connection reset"), "link account"), "failed to link external id"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_ERROR",
		},
		{
			name:       "echo http error",
			err:        echo.NewHTTPError(http.StatusMethodNotAllowed, "method not allowed"),
			wantStatus: http.StatusMethodNotAllowed,
			wantCode:   "HTTP_ERROR",
		},
		{
			name:       "unknown error",
			err:        errors.New("pq: connection reset"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_ERROR",
		},
	}

	m := NewErrorMiddleware(newDiscardLogger())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c := echo.New().NewContext(httptest.NewRequest(http.MethodPost, "/auth/register", nil), rec)

			m.HandleHTTPError(tt.err, c)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var body response.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.wantCode, body.Error.Code)
			assert.Equal(t, tt.wantDetails, body.Error.Details)
			assert.NotContains(t, rec.Body.String(), "connection reset")
		})
	}
}

func TestErrorMiddleware_SkipsCommittedResponse(t *testing.T) {
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)
	require.NoError(t, c.String(http.StatusOK, "ok"))

	NewErrorMiddleware(newDiscardLogger()).HandleHTTPError(errors.New("late failure"), c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}
