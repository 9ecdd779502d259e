package api

import (
	"alcyxob/gym-management/internal/domain"
	"alcyxob/gym-management/internal/repository"
	"alcyxob/gym-management/internal/service"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type GroupClassHandler struct {
	classService service.GroupClassService
	paging       Paging
}

func NewGroupClassHandler(classService service.GroupClassService, paging Paging) *GroupClassHandler {
	return &GroupClassHandler{classService: classService, paging: paging}
}

// GroupClassRequest is the body of create and edit. dow is 0 (Sunday)
// through 6 (Saturday).
type GroupClassRequest struct {
	Description       string   `json:"description"`
	DOW               *int     `json:"dow"`
	FitnessCategoryID string   `json:"fitnessCategoryId"`
	InstructorID      string   `json:"instructorId"`
	ClassTimeID       string   `json:"classTimeId"`
	ClientIDs         []string `json:"clientIds"`
	RowVersion        string   `json:"rowVersion"`
}

func (r GroupClassRequest) input() (service.GroupClassInput, error) {
	verr := &service.ValidationError{}
	ids := map[string]primitive.ObjectID{}
	for field, hex := range map[string]string{
		"FitnessCategoryID": r.FitnessCategoryID,
		"InstructorID":      r.InstructorID,
		"ClassTimeID":       r.ClassTimeID,
	} {
		id, err := parseID(hex)
		if err != nil {
			verr.Add(field, "Invalid "+field+" format.")
		}
		ids[field] = id
	}
	clientIDs, err := parseIDs(r.ClientIDs)
	if err != nil {
		verr.Add("ClientIDs", "One of the selected clients does not exist.")
	}
	if err := verr.Err(); err != nil {
		return service.GroupClassInput{}, err
	}

	input := service.GroupClassInput{
		Description:       r.Description,
		FitnessCategoryID: ids["FitnessCategoryID"],
		InstructorID:      ids["InstructorID"],
		ClassTimeID:       ids["ClassTimeID"],
		ClientIDs:         clientIDs,
		RowVersion:        r.RowVersion,
	}
	if r.DOW != nil {
		dow := domain.DOW(*r.DOW)
		input.DOW = &dow
	}
	return input, nil
}

// groupClassFilter reads the list filters. dow accepts either the number
// or the short day name.
func groupClassFilter(c *gin.Context) (repository.GroupClassFilter, bool) {
	filter := repository.GroupClassFilter{Search: c.Query("search")}
	var ok bool
	if filter.ClassTimeID, ok = queryID(c, "classTimeId"); !ok {
		return filter, false
	}
	if filter.FitnessCategoryID, ok = queryID(c, "fitnessCategoryId"); !ok {
		return filter, false
	}
	if filter.InstructorID, ok = queryID(c, "instructorId"); !ok {
		return filter, false
	}
	if filter.ClientID, ok = queryID(c, "clientId"); !ok {
		return filter, false
	}
	if raw := c.Query("dow"); raw != "" {
		dow, known := domain.ParseDOW(raw)
		if n, err := strconv.Atoi(raw); err == nil {
			dow, known = domain.DOW(n), domain.DOW(n).Valid()
		}
		if !known {
			abortWithError(c, http.StatusBadRequest, "Invalid dow value.")
			return filter, false
		}
		filter.DOW = &dow
	}
	return filter, true
}

// ListGroupClasses godoc
// @Summary List group classes
// @Tags GroupClasses
// @Produce json
// @Security BearerAuth
// @Param search query string false "Matches description"
// @Param dow query string false "Day of week, 0-6 or Sun..Sat"
// @Success 200 {object} service.Paged[service.GroupClassDetails]
// @Router /group-classes [get]
func (h *GroupClassHandler) ListGroupClasses(c *gin.Context) {
	filter, ok := groupClassFilter(c)
	if !ok {
		return
	}
	classes, err := h.classService.List(c.Request.Context(), filter, h.paging.page(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, classes)
}

func (h *GroupClassHandler) GetGroupClass(c *gin.Context) {
	id, ok := pathID(c, "classId")
	if !ok {
		return
	}
	class, err := h.classService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, class)
}

func (h *GroupClassHandler) CreateGroupClass(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	var req GroupClassRequest
	if !bindJSON(c, &req) {
		return
	}
	input, err := req.input()
	if err != nil {
		respondError(c, err)
		return
	}

	class, err := h.classService.Create(c.Request.Context(), actor, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, class)
}

// UpdateGroupClass godoc
// @Summary Edit a group class
// @Tags GroupClasses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param classId path string true "Group class ObjectID Hex"
// @Param class body GroupClassRequest true "Class details"
// @Success 200 {object} domain.GroupClass
// @Failure 409 {object} ErrorResponse "Edited by another user, or instructor double booked"
// @Failure 410 {object} ErrorResponse "Deleted by another user"
// @Router /group-classes/{classId} [put]
func (h *GroupClassHandler) UpdateGroupClass(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "classId")
	if !ok {
		return
	}
	var req GroupClassRequest
	if !bindJSON(c, &req) {
		return
	}
	input, err := req.input()
	if err != nil {
		respondError(c, err)
		return
	}

	class, err := h.classService.Update(c.Request.Context(), actor, id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, class)
}

func (h *GroupClassHandler) DeleteGroupClass(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "classId")
	if !ok {
		return
	}
	if err := h.classService.Delete(c.Request.Context(), actor, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetEnrollmentChoices splits clients into enrolled and not enrolled. Use
// "new" as the id for a class not created yet.
func (h *GroupClassHandler) GetEnrollmentChoices(c *gin.Context) {
	var id primitive.ObjectID
	if c.Param("classId") != "new" {
		var ok bool
		if id, ok = pathID(c, "classId"); !ok {
			return
		}
	}
	selected, available, err := h.classService.EnrollmentChoices(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SelectionResponse{Selected: selected, Available: available})
}
