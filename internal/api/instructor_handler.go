package api

import (
	"alcyxob/gym-management/internal/repository"
	"alcyxob/gym-management/internal/service"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type InstructorHandler struct {
	instructorService service.InstructorService
	paging            Paging
}

func NewInstructorHandler(instructorService service.InstructorService, paging Paging) *InstructorHandler {
	return &InstructorHandler{instructorService: instructorService, paging: paging}
}

type InstructorRequest struct {
	FirstName  string    `json:"firstName"`
	MiddleName string    `json:"middleName"`
	LastName   string    `json:"lastName"`
	HireDate   time.Time `json:"hireDate"`
	Phone      string    `json:"phone"`
	Email      string    `json:"email"`
	IsActive   bool      `json:"isActive"`
	RowVersion string    `json:"rowVersion"`
}

func (r InstructorRequest) input() service.InstructorInput {
	return service.InstructorInput{
		FirstName:  r.FirstName,
		MiddleName: r.MiddleName,
		LastName:   r.LastName,
		HireDate:   r.HireDate,
		Phone:      r.Phone,
		Email:      r.Email,
		IsActive:   r.IsActive,
		RowVersion: r.RowVersion,
	}
}

type DocumentDescriptionRequest struct {
	Description string `json:"description"`
}

// optionalBool reads a true/false query value; anything else is unset.
func optionalBool(c *gin.Context, name string) *bool {
	b, err := strconv.ParseBool(c.Query(name))
	if err != nil {
		return nil
	}
	return &b
}

// ListInstructors godoc
// @Summary List instructors
// @Tags Instructors
// @Produce json
// @Security BearerAuth
// @Param search query string false "Matches first or last name"
// @Param phone query string false "Phone number"
// @Param active query bool false "Active instructors only"
// @Success 200 {object} service.Paged[service.InstructorDetails]
// @Router /instructors [get]
func (h *InstructorHandler) ListInstructors(c *gin.Context) {
	filter := repository.InstructorFilter{
		Search:   c.Query("search"),
		Phone:    c.Query("phone"),
		IsActive: optionalBool(c, "active"),
	}
	instructors, err := h.instructorService.List(c.Request.Context(), filter, h.paging.page(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, instructors)
}

// GetInstructorOptions lists instructors for dropdowns.
func (h *InstructorHandler) GetInstructorOptions(c *gin.Context) {
	activeOnly := c.Query("active") != "false"
	options, err := h.instructorService.Options(c.Request.Context(), activeOnly)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, options)
}

func (h *InstructorHandler) GetInstructor(c *gin.Context) {
	id, ok := pathID(c, "instructorId")
	if !ok {
		return
	}
	instructor, err := h.instructorService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, instructor)
}

func (h *InstructorHandler) CreateInstructor(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	var req InstructorRequest
	if !bindJSON(c, &req) {
		return
	}
	instructor, err := h.instructorService.Create(c.Request.Context(), actor, req.input())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, instructor)
}

func (h *InstructorHandler) UpdateInstructor(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "instructorId")
	if !ok {
		return
	}
	var req InstructorRequest
	if !bindJSON(c, &req) {
		return
	}
	instructor, err := h.instructorService.Update(c.Request.Context(), actor, id, req.input())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, instructor)
}

func (h *InstructorHandler) DeleteInstructor(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "instructorId")
	if !ok {
		return
	}
	if err := h.instructorService.Delete(c.Request.Context(), actor, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Documents ---

// RequestDocumentUploadURL godoc
// @Summary Get a presigned URL for uploading an instructor document
// @Tags Instructors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param instructorId path string true "Instructor's ObjectID Hex"
// @Param upload body UploadURLRequest true "File name and content type"
// @Success 200 {object} service.UploadURLResponse
// @Router /instructors/{instructorId}/documents/upload-url [post]
func (h *InstructorHandler) RequestDocumentUploadURL(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "instructorId")
	if !ok {
		return
	}
	var req UploadURLRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.instructorService.RequestDocumentUpload(c.Request.Context(), actor, id, req.FileName, req.ContentType)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InstructorHandler) ConfirmDocumentUpload(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "instructorId")
	if !ok {
		return
	}
	var req ConfirmUploadRequest
	if !bindJSON(c, &req) {
		return
	}
	doc, err := h.instructorService.ConfirmDocument(c.Request.Context(), actor, id, req.ObjectKey, req.FileName, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, doc)
}

// ListDocuments lists documents, optionally for one instructor
// (instructorId) or matching a file name (fileName).
func (h *InstructorHandler) ListDocuments(c *gin.Context) {
	instructorID, ok := queryID(c, "instructorId")
	if !ok {
		return
	}
	filter := repository.InstructorDocumentFilter{InstructorID: instructorID, FileName: c.Query("fileName")}
	docs, err := h.instructorService.ListDocuments(c.Request.Context(), filter, h.paging.page(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, docs)
}

func (h *InstructorHandler) GetDocumentURL(c *gin.Context) {
	id, ok := pathID(c, "documentId")
	if !ok {
		return
	}
	url, err := h.instructorService.DocumentURL(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"downloadUrl": url})
}

func (h *InstructorHandler) UpdateDocumentDescription(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "documentId")
	if !ok {
		return
	}
	var req DocumentDescriptionRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.instructorService.UpdateDocumentDescription(c.Request.Context(), actor, id, req.Description); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *InstructorHandler) DeleteDocument(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "documentId")
	if !ok {
		return
	}
	if err := h.instructorService.DeleteDocument(c.Request.Context(), actor, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
