package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"alcyxob/gym-management/internal/concurrency"
	"alcyxob/gym-management/internal/schedule"
	"alcyxob/gym-management/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		check  func(t *testing.T, body ErrorResponse)
	}{
		{
			name:   "validation",
			err:    &service.ValidationError{FieldErrors: map[string]string{"Phone": "Enter a valid 10-digit phone number with no spaces."}},
			status: http.StatusBadRequest,
			check: func(t *testing.T, body ErrorResponse) {
				assert.Equal(t, "Enter a valid 10-digit phone number with no spaces.", body.FieldErrors["Phone"])
			},
		},
		{
			name: "schedule conflict",
			err: &service.ScheduleConflictError{Result: schedule.ConflictResult{
				IsConflict: true, Type: schedule.ConflictInstructor, Reason: "double booked",
			}},
			status: http.StatusConflict,
			check: func(t *testing.T, body ErrorResponse) {
				require.NotNil(t, body.Conflict)
				assert.Equal(t, schedule.ConflictInstructor, body.Conflict.Type)
				assert.Equal(t, "double booked", body.FieldErrors[""])
			},
		},
		{
			name: "lost edit",
			err: &service.ConcurrencyError{Diff: &concurrency.Diff{
				Entity:         "Client",
				Notice:         "modified",
				Fields:         []concurrency.FieldDiff{{Field: "Phone", CurrentValue: "(905) 555-0101"}},
				CurrentVersion: "v2",
			}},
			status: http.StatusConflict,
			check: func(t *testing.T, body ErrorResponse) {
				assert.Equal(t, "Current value: (905) 555-0101", body.FieldErrors["Phone"])
				assert.Equal(t, "modified", body.FieldErrors[""])
				assert.Equal(t, "v2", body.CurrentVersion)
				assert.Len(t, body.Changes, 1)
			},
		},
		{
			name:   "deleted underneath",
			err:    &service.ConcurrencyError{Diff: &concurrency.Diff{Entity: "Client", EntityDeleted: true, Notice: "gone"}},
			status: http.StatusGone,
			check: func(t *testing.T, body ErrorResponse) {
				assert.True(t, body.EntityDeleted)
				assert.Empty(t, body.CurrentVersion)
			},
		},
		{
			name:   "constraint",
			err:    &service.ConstraintError{Field: "MembershipNumber", Message: "dup"},
			status: http.StatusConflict,
			check: func(t *testing.T, body ErrorResponse) {
				assert.Equal(t, "dup", body.FieldErrors["MembershipNumber"])
			},
		},
		{name: "not found", err: service.ErrNotFound, status: http.StatusNotFound},
		{name: "not creator", err: service.ErrNotCreator, status: http.StatusForbidden},
		{name: "bad upload", err: service.ErrInvalidUpload, status: http.StatusBadRequest},
		{
			name:   "anything else",
			err:    errors.New("connection reset"),
			status: http.StatusInternalServerError,
			check: func(t *testing.T, body ErrorResponse) {
				assert.Equal(t, service.MsgSaveFailed, body.Error)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodPut, "/x", nil)

			respondError(c, tt.err)

			assert.Equal(t, tt.status, w.Code)
			assert.True(t, c.IsAborted())
			var body ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.NotEmpty(t, body.Error)
			if tt.check != nil {
				tt.check(t, body)
			}
		})
	}
}
