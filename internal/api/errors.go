package api

import (
	"alcyxob/gym-management/internal/concurrency"
	"alcyxob/gym-management/internal/schedule"
	"alcyxob/gym-management/internal/service"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every failed request. FieldErrors keys are
// field names; the "" key carries messages about the record as a whole.
type ErrorResponse struct {
	Error          string                   `json:"error"`
	FieldErrors    map[string]string        `json:"fieldErrors,omitempty"`
	Conflict       *schedule.ConflictResult `json:"conflict,omitempty"`
	Changes        []concurrency.FieldDiff  `json:"changes,omitempty"`
	EntityDeleted  bool                     `json:"entityDeleted,omitempty"`
	CurrentVersion string                   `json:"currentVersion,omitempty"`
}

// Helper to return JSON error response and abort request
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, ErrorResponse{Error: message})
}

// respondError maps a service error onto a status code and body. Anything
// unrecognised is logged and reported as a transient failure.
func respondError(c *gin.Context, err error) {
	var (
		verr *service.ValidationError
		serr *service.ScheduleConflictError
		cerr *service.ConcurrencyError
		kerr *service.ConstraintError
	)

	switch {
	case errors.As(err, &verr):
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: verr.Error(), FieldErrors: verr.FieldErrors})

	case errors.As(err, &serr):
		result := serr.Result
		c.AbortWithStatusJSON(http.StatusConflict, ErrorResponse{
			Error:       result.Reason,
			FieldErrors: map[string]string{"": result.Reason},
			Conflict:    &result,
		})

	case errors.As(err, &cerr):
		resp := ErrorResponse{
			Error:          cerr.Diff.Notice,
			FieldErrors:    map[string]string{"": cerr.Diff.Notice},
			Changes:        cerr.Diff.Fields,
			EntityDeleted:  cerr.Diff.EntityDeleted,
			CurrentVersion: cerr.Diff.CurrentVersion,
		}
		for _, f := range cerr.Diff.Fields {
			resp.FieldErrors[f.Field] = "Current value: " + f.CurrentValue
		}
		status := http.StatusConflict
		if cerr.Deleted() {
			status = http.StatusGone
		}
		c.AbortWithStatusJSON(status, resp)

	case errors.As(err, &kerr):
		c.AbortWithStatusJSON(http.StatusConflict, ErrorResponse{
			Error:       kerr.Message,
			FieldErrors: map[string]string{kerr.Field: kerr.Message},
		})

	case errors.Is(err, service.ErrNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrForbidden), errors.Is(err, service.ErrNotCreator):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrInvalidUpload), errors.Is(err, service.ErrMissingEndTime):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrFileMissing):
		abortWithError(c, http.StatusNotFound, err.Error())

	default:
		log.Printf("ERROR: %s %s: %v", c.Request.Method, c.FullPath(), err)
		abortWithError(c, http.StatusInternalServerError, service.MsgSaveFailed)
	}
}
