package api

import (
	"alcyxob/gym-management/internal/repository"
	"alcyxob/gym-management/internal/service"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type WorkoutHandler struct {
	workoutService service.WorkoutService
	paging         Paging
}

func NewWorkoutHandler(workoutService service.WorkoutService, paging Paging) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService, paging: paging}
}

// WorkoutRequest books or reschedules a workout. Without endTime the
// workout runs for durationMinutes, or the default length when that is
// zero too.
type WorkoutRequest struct {
	ClientID        string     `json:"clientId"`
	InstructorID    string     `json:"instructorId"`
	StartTime       time.Time  `json:"startTime"`
	EndTime         *time.Time `json:"endTime"`
	DurationMinutes int        `json:"durationMinutes"`
	Notes           string     `json:"notes"`
	ExerciseIDs     []string   `json:"exerciseIds"`
}

func (r WorkoutRequest) input() (service.WorkoutInput, error) {
	verr := &service.ValidationError{}
	clientID, err := parseID(r.ClientID)
	if err != nil {
		verr.Add("ClientID", "You must select the Client.")
	}
	var instructorID *primitive.ObjectID
	if r.InstructorID != "" {
		id, err := primitive.ObjectIDFromHex(r.InstructorID)
		if err != nil {
			verr.Add("InstructorID", "The selected Instructor does not exist.")
		}
		instructorID = &id
	}
	exerciseIDs, err := parseIDs(r.ExerciseIDs)
	if err != nil {
		verr.Add("ExerciseIDs", "One of the selected exercises does not exist.")
	}
	if err := verr.Err(); err != nil {
		return service.WorkoutInput{}, err
	}

	return service.WorkoutInput{
		ClientID:        clientID,
		InstructorID:    instructorID,
		StartTime:       r.StartTime,
		EndTime:         r.EndTime,
		DurationMinutes: r.DurationMinutes,
		Notes:           r.Notes,
		ExerciseIDs:     exerciseIDs,
	}, nil
}

// GetWorkoutsForClient godoc
// @Summary List a client's workouts
// @Tags Workouts
// @Produce json
// @Security BearerAuth
// @Param clientId path string true "Client's ObjectID Hex"
// @Param instructorId query string false "Instructor filter"
// @Param search query string false "Matches notes"
// @Success 200 {object} service.Paged[service.WorkoutDetails]
// @Router /clients/{clientId}/workouts [get]
func (h *WorkoutHandler) GetWorkoutsForClient(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	clientID, ok := pathID(c, "clientId")
	if !ok {
		return
	}
	instructorID, ok := queryID(c, "instructorId")
	if !ok {
		return
	}
	filter := repository.WorkoutFilter{InstructorID: instructorID, Search: c.Query("search")}

	workouts, err := h.workoutService.ListForClient(c.Request.Context(), actor, clientID, filter, h.paging.page(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, workouts)
}

func (h *WorkoutHandler) GetWorkout(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "workoutId")
	if !ok {
		return
	}
	workout, err := h.workoutService.Get(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, workout)
}

// CreateWorkout godoc
// @Summary Book a workout
// @Description Fails with 409 when the client or instructor already has an
// @Description overlapping workout that day.
// @Tags Workouts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param workout body WorkoutRequest true "Workout details"
// @Success 201 {object} domain.Workout
// @Failure 400 {object} ErrorResponse "Field errors"
// @Failure 409 {object} ErrorResponse "Scheduling conflict"
// @Router /workouts [post]
func (h *WorkoutHandler) CreateWorkout(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	var req WorkoutRequest
	if !bindJSON(c, &req) {
		return
	}
	input, err := req.input()
	if err != nil {
		respondError(c, err)
		return
	}

	workout, err := h.workoutService.Create(c.Request.Context(), actor, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, workout)
}

func (h *WorkoutHandler) UpdateWorkout(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "workoutId")
	if !ok {
		return
	}
	var req WorkoutRequest
	if !bindJSON(c, &req) {
		return
	}
	input, err := req.input()
	if err != nil {
		respondError(c, err)
		return
	}

	workout, err := h.workoutService.Update(c.Request.Context(), actor, id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, workout)
}

func (h *WorkoutHandler) DeleteWorkout(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "workoutId")
	if !ok {
		return
	}
	if err := h.workoutService.Delete(c.Request.Context(), actor, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetExerciseChoices returns the exercises of a workout next to the ones it
// could add. Use "new" as the id for a workout not booked yet.
func (h *WorkoutHandler) GetExerciseChoices(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	var id primitive.ObjectID
	if c.Param("workoutId") != "new" {
		if id, ok = pathID(c, "workoutId"); !ok {
			return
		}
	}
	selected, available, err := h.workoutService.ExerciseChoices(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SelectionResponse{Selected: selected, Available: available})
}
