package api

import (
	"alcyxob/gym-management/internal/repository"
	"alcyxob/gym-management/internal/service"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type ClientHandler struct {
	clientService service.ClientService
	paging        Paging
}

func NewClientHandler(clientService service.ClientService, paging Paging) *ClientHandler {
	return &ClientHandler{clientService: clientService, paging: paging}
}

// --- DTOs ---

// ClientRequest is the body of create and edit. Field rules are enforced
// by the service so every message comes back keyed by field.
type ClientRequest struct {
	MembershipNumber    int       `json:"membershipNumber"`
	FirstName           string    `json:"firstName"`
	MiddleName          string    `json:"middleName"`
	LastName            string    `json:"lastName"`
	Phone               string    `json:"phone"`
	Email               string    `json:"email"`
	DOB                 time.Time `json:"dob"`
	PostalCode          string    `json:"postalCode"`
	HealthCondition     string    `json:"healthCondition"`
	Notes               string    `json:"notes"`
	MembershipStartDate time.Time `json:"membershipStartDate"`
	MembershipEndDate   time.Time `json:"membershipEndDate"`
	MembershipFee       float64   `json:"membershipFee"`
	FeePaid             bool      `json:"feePaid"`
	MembershipTypeID    string    `json:"membershipTypeId"`
	RowVersion          string    `json:"rowVersion"`
}

func (r ClientRequest) input() (service.ClientInput, error) {
	typeID, err := parseID(r.MembershipTypeID)
	if err != nil {
		return service.ClientInput{}, &service.ValidationError{FieldErrors: map[string]string{"MembershipTypeID": "You must select a Membership Type."}}
	}
	return service.ClientInput{
		MembershipNumber:    r.MembershipNumber,
		FirstName:           r.FirstName,
		MiddleName:          r.MiddleName,
		LastName:            r.LastName,
		Phone:               r.Phone,
		Email:               r.Email,
		DOB:                 r.DOB,
		PostalCode:          r.PostalCode,
		HealthCondition:     r.HealthCondition,
		Notes:               r.Notes,
		MembershipStartDate: r.MembershipStartDate,
		MembershipEndDate:   r.MembershipEndDate,
		MembershipFee:       r.MembershipFee,
		FeePaid:             r.FeePaid,
		MembershipTypeID:    typeID,
		RowVersion:          r.RowVersion,
	}, nil
}

// UploadURLRequest asks for a presigned PUT URL.
type UploadURLRequest struct {
	FileName    string `json:"fileName" binding:"required"`
	ContentType string `json:"contentType" binding:"required"`
}

// ConfirmUploadRequest reports a finished upload back.
type ConfirmUploadRequest struct {
	ObjectKey   string `json:"objectKey" binding:"required"`
	FileName    string `json:"fileName"`
	Description string `json:"description"`
}

// --- Handler Methods ---

// ListClients godoc
// @Summary List clients
// @Tags Clients
// @Produce json
// @Security BearerAuth
// @Param search query string false "Matches first or last name"
// @Param membershipTypeId query string false "Membership type filter"
// @Success 200 {object} service.Paged[service.ClientDetails]
// @Router /clients [get]
func (h *ClientHandler) ListClients(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	typeID, ok := queryID(c, "membershipTypeId")
	if !ok {
		return
	}
	filter := repository.ClientFilter{Search: c.Query("search"), MembershipTypeID: typeID}

	clients, err := h.clientService.List(c.Request.Context(), actor, filter, h.paging.page(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, clients)
}

func (h *ClientHandler) GetClient(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "clientId")
	if !ok {
		return
	}
	client, err := h.clientService.Get(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

// CreateClient godoc
// @Summary Create a client
// @Tags Clients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param client body ClientRequest true "Client details"
// @Success 201 {object} service.ClientDetails
// @Failure 400 {object} ErrorResponse "Field errors"
// @Failure 409 {object} ErrorResponse "Duplicate membership number"
// @Router /clients [post]
func (h *ClientHandler) CreateClient(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	var req ClientRequest
	if !bindJSON(c, &req) {
		return
	}
	input, err := req.input()
	if err != nil {
		respondError(c, err)
		return
	}

	client, err := h.clientService.Create(c.Request.Context(), actor, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, client)
}

// UpdateClient godoc
// @Summary Edit a client
// @Description rowVersion must be the token read with the client. A lost race
// @Description answers 409 with the current values, or 410 if the client is gone.
// @Tags Clients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param clientId path string true "Client's ObjectID Hex"
// @Param client body ClientRequest true "Client details"
// @Success 200 {object} service.ClientDetails
// @Failure 409 {object} ErrorResponse "Edited by another user"
// @Failure 410 {object} ErrorResponse "Deleted by another user"
// @Router /clients/{clientId} [put]
func (h *ClientHandler) UpdateClient(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "clientId")
	if !ok {
		return
	}
	var req ClientRequest
	if !bindJSON(c, &req) {
		return
	}
	input, err := req.input()
	if err != nil {
		respondError(c, err)
		return
	}

	client, err := h.clientService.Update(c.Request.Context(), actor, id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

func (h *ClientHandler) DeleteClient(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "clientId")
	if !ok {
		return
	}
	if err := h.clientService.Delete(c.Request.Context(), actor, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Photo ---

// RequestPhotoUploadURL godoc
// @Summary Get a presigned URL for uploading a client photo
// @Tags Clients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param clientId path string true "Client's ObjectID Hex"
// @Param upload body UploadURLRequest true "File name and content type"
// @Success 200 {object} service.UploadURLResponse
// @Router /clients/{clientId}/photo/upload-url [post]
func (h *ClientHandler) RequestPhotoUploadURL(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "clientId")
	if !ok {
		return
	}
	var req UploadURLRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.clientService.RequestPhotoUpload(c.Request.Context(), actor, id, req.FileName, req.ContentType)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ClientHandler) ConfirmPhotoUpload(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "clientId")
	if !ok {
		return
	}
	var req ConfirmUploadRequest
	if !bindJSON(c, &req) {
		return
	}

	photo, err := h.clientService.ConfirmPhoto(c.Request.Context(), actor, id, req.ObjectKey, req.FileName)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, photo)
}

func (h *ClientHandler) GetPhotoURL(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "clientId")
	if !ok {
		return
	}
	url, err := h.clientService.PhotoURL(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"downloadUrl": url})
}

func (h *ClientHandler) RemovePhoto(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "clientId")
	if !ok {
		return
	}
	if err := h.clientService.RemovePhoto(c.Request.Context(), actor, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
