package service

import (
	"alcyxob/gym-management/internal/concurrency"
	"alcyxob/gym-management/internal/domain"
	"alcyxob/gym-management/internal/repository"
	"alcyxob/gym-management/internal/storage"
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	msgDuplicateMembershipNumber = "Unable to save changes. Remember, you cannot have duplicate Membership Numbers."
	msgClientEnrolled            = "Unable to Delete Client. Remember, you cannot delete a Client that is enrolled in any Group Classes."
)

// ClientInput is the editable part of a client. RowVersion is the token
// the caller read; it is ignored on create.
type ClientInput struct {
	MembershipNumber    int
	FirstName           string
	MiddleName          string
	LastName            string
	Phone               string
	Email               string
	DOB                 time.Time
	PostalCode          string
	HealthCondition     string
	Notes               string
	MembershipStartDate time.Time
	MembershipEndDate   time.Time
	MembershipFee       float64
	FeePaid             bool
	MembershipTypeID    primitive.ObjectID
	RowVersion          string
}

// ClientDetails is a client with the derived values list and detail views show.
type ClientDetails struct {
	domain.Client
	Summary          string `json:"summary"`
	FormalName       string `json:"formalName"`
	Age              int    `json:"age"`
	PhoneFormatted   string `json:"phoneFormatted"`
	MembershipType   string `json:"membershipType"`
	MembershipStatus string `json:"membershipStatus"`
	// FeeNote warns when an unpaid fee differs from the plan's standard fee.
	FeeNote string `json:"feeNote,omitempty"`
}

type ClientService interface {
	List(ctx context.Context, actor domain.Actor, filter repository.ClientFilter, page repository.Page) (Paged[ClientDetails], error)
	Get(ctx context.Context, actor domain.Actor, id primitive.ObjectID) (*ClientDetails, error)
	Create(ctx context.Context, actor domain.Actor, input ClientInput) (*ClientDetails, error)
	Update(ctx context.Context, actor domain.Actor, id primitive.ObjectID, input ClientInput) (*ClientDetails, error)
	Delete(ctx context.Context, actor domain.Actor, id primitive.ObjectID) error

	// Photo upload process
	RequestPhotoUpload(ctx context.Context, actor domain.Actor, id primitive.ObjectID, fileName, contentType string) (*UploadURLResponse, error)
	ConfirmPhoto(ctx context.Context, actor domain.Actor, id primitive.ObjectID, objectKey, fileName string) (*domain.StoredFile, error)
	PhotoURL(ctx context.Context, actor domain.Actor, id primitive.ObjectID) (string, error)
	RemovePhoto(ctx context.Context, actor domain.Actor, id primitive.ObjectID) error
}

// clientService implements the ClientService interface.
type clientService struct {
	clientRepo repository.ClientRepository
	lookupRepo repository.LookupRepository
	photos     files
	reconciler *concurrency.Reconciler[domain.Client]
}

// NewClientService creates a new instance of clientService.
func NewClientService(
	clientRepo repository.ClientRepository,
	lookupRepo repository.LookupRepository,
	fileStorage storage.FileStorage,
	fileOpts FileOptions,
) ClientService {
	s := &clientService{
		clientRepo: clientRepo,
		lookupRepo: lookupRepo,
		photos:     newFiles(fileStorage, storage.ClientPhotoPrefix, fileOpts),
	}
	s.reconciler = &concurrency.Reconciler[domain.Client]{
		Entity: domain.KindClient,
		Fields: []concurrency.Field[domain.Client]{
			concurrency.Value("MembershipNumber", func(c *domain.Client) int { return c.MembershipNumber }, strconv.Itoa),
			concurrency.Text("FirstName", func(c *domain.Client) string { return c.FirstName }),
			concurrency.Text("MiddleName", func(c *domain.Client) string { return c.MiddleName }),
			concurrency.Text("LastName", func(c *domain.Client) string { return c.LastName }),
			concurrency.Value("Phone", func(c *domain.Client) string { return c.Phone }, domain.FormatPhone),
			concurrency.Text("Email", func(c *domain.Client) string { return c.Email }),
			concurrency.Date("DOB", func(c *domain.Client) time.Time { return c.DOB }),
			concurrency.Text("PostalCode", func(c *domain.Client) string { return c.PostalCode }),
			concurrency.Text("HealthCondition", func(c *domain.Client) string { return c.HealthCondition }),
			concurrency.Text("Notes", func(c *domain.Client) string { return c.Notes }),
			concurrency.Date("MembershipStartDate", func(c *domain.Client) time.Time { return c.MembershipStartDate }),
			concurrency.Date("MembershipEndDate", func(c *domain.Client) time.Time { return c.MembershipEndDate }),
			concurrency.Currency("MembershipFee", func(c *domain.Client) float64 { return c.MembershipFee }),
			concurrency.Flag("FeePaid", func(c *domain.Client) bool { return c.FeePaid }),
			concurrency.Reference("MembershipTypeID", func(c *domain.Client) primitive.ObjectID { return c.MembershipTypeID }, s.membershipTypeName),
		},
	}
	return s
}

// List returns a page of clients. A client login only ever sees itself.
func (s *clientService) List(ctx context.Context, actor domain.Actor, filter repository.ClientFilter, page repository.Page) (Paged[ClientDetails], error) {
	if actor.Role == domain.RoleClient {
		filter.Email = actor.Email
	}
	clients, total, err := s.clientRepo.List(ctx, filter, page)
	if err != nil {
		return Paged[ClientDetails]{}, err
	}

	types, err := s.membershipTypes(ctx)
	if err != nil {
		return Paged[ClientDetails]{}, err
	}
	today := now()
	items := make([]ClientDetails, 0, len(clients))
	for i := range clients {
		items = append(items, clientDetails(&clients[i], types[clients[i].MembershipTypeID], today))
	}
	return NewPaged(items, total, page), nil
}

func (s *clientService) Get(ctx context.Context, actor domain.Actor, id primitive.ObjectID) (*ClientDetails, error) {
	if err := checkClientAccess(ctx, s.clientRepo, actor, id); err != nil {
		return nil, err
	}
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return s.details(ctx, client)
}

func (s *clientService) Create(ctx context.Context, actor domain.Actor, input ClientInput) (*ClientDetails, error) {
	if !actor.HasRole(domain.StaffRoles...) {
		return nil, ErrForbidden
	}
	client := &domain.Client{}
	if err := s.apply(ctx, client, input); err != nil {
		return nil, err
	}

	id, err := s.clientRepo.Create(ctx, client)
	if err != nil {
		return nil, constraint(err, "MembershipNumber", msgDuplicateMembershipNumber, "")
	}
	client.ID = id
	return s.details(ctx, client)
}

// Update saves an edit made against input.RowVersion. The photo is managed
// through its own operations and is never touched here.
func (s *clientService) Update(ctx context.Context, actor domain.Actor, id primitive.ObjectID, input ClientInput) (*ClientDetails, error) {
	if !actor.HasRole(domain.StaffRoles...) {
		return nil, ErrForbidden
	}
	client, err := s.clientRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, &ConcurrencyError{Diff: s.reconciler.Deleted()}
	}
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, client, input); err != nil {
		return nil, err
	}

	saved, err := saveEdit(ctx, s.reconciler, client, input.RowVersion, s.clientRepo.UpdateIfVersion,
		func(ctx context.Context, c *domain.Client) (*domain.Client, error) {
			return s.clientRepo.GetByID(ctx, c.ID)
		})
	if err != nil {
		return nil, constraint(err, "MembershipNumber", msgDuplicateMembershipNumber, "")
	}
	return s.details(ctx, saved)
}

// Delete removes a client and their workouts. Clients still enrolled in a
// group class are kept.
func (s *clientService) Delete(ctx context.Context, actor domain.Actor, id primitive.ObjectID) error {
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		return notFound(err)
	}
	if err := canDelete(actor, client.Audit); err != nil {
		return err
	}
	if err := s.clientRepo.Delete(ctx, id); err != nil {
		return constraint(err, "", "", msgClientEnrolled)
	}
	if client.Photo != nil {
		s.photos.remove(ctx, client.Photo.ObjectKey)
	}
	return nil
}

// === Photo Upload Process ===

// RequestPhotoUpload issues a presigned PUT URL for a new client photo.
func (s *clientService) RequestPhotoUpload(ctx context.Context, actor domain.Actor, id primitive.ObjectID, fileName, contentType string) (*UploadURLResponse, error) {
	if !actor.HasRole(domain.StaffRoles...) {
		return nil, ErrForbidden
	}
	if !strings.HasPrefix(strings.ToLower(contentType), "image/") {
		return nil, &ValidationError{FieldErrors: map[string]string{"ContentType": "Only image files can be used as a client photo."}}
	}
	if _, err := s.clientRepo.GetByID(ctx, id); err != nil {
		return nil, notFound(err)
	}
	return s.photos.requestUpload(ctx, id.Hex(), fileName, contentType)
}

// ConfirmPhoto records an uploaded photo and deletes the one it replaces.
func (s *clientService) ConfirmPhoto(ctx context.Context, actor domain.Actor, id primitive.ObjectID, objectKey, fileName string) (*domain.StoredFile, error) {
	if !actor.HasRole(domain.StaffRoles...) {
		return nil, ErrForbidden
	}
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}

	photo, err := s.photos.confirm(ctx, id.Hex(), objectKey, fileName)
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(strings.ToLower(photo.ContentType), "image/") {
		s.photos.remove(ctx, objectKey)
		return nil, ErrInvalidUpload
	}

	if err := s.clientRepo.SetPhoto(ctx, id, photo); err != nil {
		return nil, notFound(err)
	}
	if client.Photo != nil && client.Photo.ObjectKey != objectKey {
		s.photos.remove(ctx, client.Photo.ObjectKey)
	}
	return photo, nil
}

func (s *clientService) PhotoURL(ctx context.Context, actor domain.Actor, id primitive.ObjectID) (string, error) {
	if err := checkClientAccess(ctx, s.clientRepo, actor, id); err != nil {
		return "", err
	}
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		return "", notFound(err)
	}
	if client.Photo == nil {
		return "", ErrFileMissing
	}
	return s.photos.downloadURL(ctx, client.Photo.ObjectKey)
}

func (s *clientService) RemovePhoto(ctx context.Context, actor domain.Actor, id primitive.ObjectID) error {
	if !actor.HasRole(domain.StaffRoles...) {
		return ErrForbidden
	}
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		return notFound(err)
	}
	if client.Photo == nil {
		return nil
	}
	if err := s.clientRepo.SetPhoto(ctx, id, nil); err != nil {
		return notFound(err)
	}
	s.photos.remove(ctx, client.Photo.ObjectKey)
	return nil
}

// apply validates input and copies it onto client.
func (s *clientService) apply(ctx context.Context, client *domain.Client, input ClientInput) error {
	today := domain.CalendarDay(now())
	verr := &ValidationError{}

	if input.MembershipNumber == 0 {
		verr.Add("MembershipNumber", "You cannot leave the membership number blank.")
	} else if input.MembershipNumber < 10000 || input.MembershipNumber > 99999 {
		verr.Add("MembershipNumber", "The membership number must be between 10,000 and 99,999.")
	}

	verr.required("FirstName", input.FirstName, "You cannot leave the first name blank.")
	verr.maxLen("FirstName", input.FirstName, 50, "First name cannot be more than 50 characters long.")
	verr.maxLen("MiddleName", input.MiddleName, 50, "Middle name cannot be more than 50 characters long.")
	verr.required("LastName", input.LastName, "You cannot leave the last name blank.")
	verr.maxLen("LastName", input.LastName, 100, "Last name cannot be more than 100 characters long.")

	verr.required("Phone", input.Phone, "Phone number is required.")
	verr.matches("Phone", input.Phone, phonePattern, msgPhone)
	verr.required("Email", input.Email, "Email address is required.")
	verr.matches("Email", strings.TrimSpace(input.Email), emailPattern, msgEmail)

	if input.DOB.IsZero() {
		verr.Add("DOB", "Date of Birth is required.")
	} else if dob := domain.CalendarDay(input.DOB); dob.After(today.AddDate(-16, 0, 0)) {
		verr.Add("DOB", "Client must be at least 16 years old.")
	} else if dob.Before(today.AddDate(-100, 0, 0)) {
		verr.Add("DOB", "Client cannot be over 100 years old.")
	}

	verr.required("PostalCode", input.PostalCode, "Postal code is required.")
	verr.matches("PostalCode", strings.TrimSpace(input.PostalCode), postalCodePattern, "Invalid postal code.")

	verr.required("HealthCondition", input.HealthCondition, "You must enter comments about the client's health condition.")
	verr.maxLen("HealthCondition", input.HealthCondition, 255, "Limit of 255 characters for health condition.")
	verr.maxLen("Notes", input.Notes, 2000, "Limit of 2000 characters for notes.")

	if input.MembershipStartDate.IsZero() {
		verr.Add("MembershipStartDate", "Membership start date is required.")
	}
	if input.MembershipEndDate.IsZero() {
		verr.Add("MembershipEndDate", "Membership end date is required.")
	} else if input.MembershipEndDate.Before(input.MembershipStartDate) {
		verr.Add("MembershipEndDate", "Membership end date cannot be earlier than the start date.")
	} else if domain.CalendarDay(input.MembershipEndDate).After(today.AddDate(5, 0, 0)) {
		verr.Add("MembershipEndDate", "Membership end date cannot be more than 5 years in the future.")
	}

	if input.MembershipFee < 0 {
		verr.Add("MembershipFee", "The membership fee cannot be negative.")
	}

	if input.MembershipTypeID.IsZero() {
		verr.Add("MembershipTypeID", "You must select the membership type.")
	} else if _, err := s.lookupRepo.MembershipType(ctx, input.MembershipTypeID); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		verr.Add("MembershipTypeID", "You must select the membership type.")
	}

	if err := verr.Err(); err != nil {
		return err
	}

	client.MembershipNumber = input.MembershipNumber
	client.FirstName = strings.TrimSpace(input.FirstName)
	client.MiddleName = strings.TrimSpace(input.MiddleName)
	client.LastName = strings.TrimSpace(input.LastName)
	client.Phone = input.Phone
	client.Email = strings.ToLower(strings.TrimSpace(input.Email))
	client.DOB = input.DOB
	client.PostalCode = normalizePostalCode(input.PostalCode)
	client.HealthCondition = input.HealthCondition
	client.Notes = input.Notes
	client.MembershipStartDate = input.MembershipStartDate
	client.MembershipEndDate = input.MembershipEndDate
	client.MembershipFee = input.MembershipFee
	client.FeePaid = input.FeePaid
	client.MembershipTypeID = input.MembershipTypeID
	return nil
}

func (s *clientService) details(ctx context.Context, client *domain.Client) (*ClientDetails, error) {
	membershipType, err := s.lookupRepo.MembershipType(ctx, client.MembershipTypeID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	d := clientDetails(client, membershipType, now())
	return &d, nil
}

func (s *clientService) membershipTypes(ctx context.Context) (map[primitive.ObjectID]*domain.MembershipType, error) {
	types, err := s.lookupRepo.MembershipTypes(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[primitive.ObjectID]*domain.MembershipType, len(types))
	for i := range types {
		out[types[i].ID] = &types[i]
	}
	return out, nil
}

func (s *clientService) membershipTypeName(ctx context.Context, id primitive.ObjectID) string {
	t, err := s.lookupRepo.MembershipType(ctx, id)
	if err != nil {
		return ""
	}
	return t.Summary()
}

func clientDetails(client *domain.Client, membershipType *domain.MembershipType, today time.Time) ClientDetails {
	d := ClientDetails{
		Client:           *client,
		FormalName:       client.FormalName(),
		Age:              client.Age(today),
		PhoneFormatted:   client.PhoneFormatted(),
		MembershipStatus: client.MembershipStatus(today),
		Summary:          client.FullName(),
	}
	if membershipType != nil {
		d.MembershipType = membershipType.Type
		d.Summary = client.Summary(membershipType.Type)
		d.FeeNote = FeeNote(client, membershipType)
	}
	return d
}

// FeeNote is the reminder shown when an unpaid fee is not the plan's
// standard fee. It is advisory and never blocks a save.
func FeeNote(client *domain.Client, membershipType *domain.MembershipType) string {
	if client.FeePaid || membershipType == nil || client.MembershipFee == membershipType.StandardFee {
		return ""
	}
	return "Note that the fee does not match the standard fee of: " + domain.FormatCurrency(membershipType.StandardFee)
}
