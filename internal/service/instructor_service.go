package service

import (
	"alcyxob/gym-management/internal/concurrency"
	"alcyxob/gym-management/internal/domain"
	"alcyxob/gym-management/internal/repository"
	"alcyxob/gym-management/internal/storage"
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	msgDuplicateInstructorEmail = "Unable to save changes. Remember, you cannot have duplicate Email addresses for Instructors."
	msgInstructorTeaches        = "Unable to Delete Instructor. Remember, you cannot delete a Instructor that teaches Group Classes."
)

// InstructorInput is the editable part of an instructor. RowVersion is the
// token the caller read; it is ignored on create.
type InstructorInput struct {
	FirstName  string
	MiddleName string
	LastName   string
	HireDate   time.Time
	Phone      string
	Email      string
	IsActive   bool
	RowVersion string
}

type InstructorDetails struct {
	domain.Instructor
	Summary        string `json:"summary"`
	FormalName     string `json:"formalName"`
	Seniority      string `json:"seniority"`
	PhoneFormatted string `json:"phoneFormatted"`
}

// DocumentDetails is document metadata plus the owning instructor's name.
type DocumentDetails struct {
	domain.InstructorDocument
	Instructor string `json:"instructor"`
}

type InstructorService interface {
	List(ctx context.Context, filter repository.InstructorFilter, page repository.Page) (Paged[InstructorDetails], error)
	Get(ctx context.Context, id primitive.ObjectID) (*InstructorDetails, error)
	Create(ctx context.Context, actor domain.Actor, input InstructorInput) (*InstructorDetails, error)
	Update(ctx context.Context, actor domain.Actor, id primitive.ObjectID, input InstructorInput) (*InstructorDetails, error)
	// Delete removes an instructor with their documents. Instructors still
	// teaching a group class are kept.
	Delete(ctx context.Context, actor domain.Actor, id primitive.ObjectID) error
	// Options lists instructors for dropdowns, formal name first.
	Options(ctx context.Context, activeOnly bool) ([]domain.Option, error)

	// Documents
	RequestDocumentUpload(ctx context.Context, actor domain.Actor, instructorID primitive.ObjectID, fileName, contentType string) (*UploadURLResponse, error)
	ConfirmDocument(ctx context.Context, actor domain.Actor, instructorID primitive.ObjectID, objectKey, fileName, description string) (*domain.InstructorDocument, error)
	ListDocuments(ctx context.Context, filter repository.InstructorDocumentFilter, page repository.Page) (Paged[DocumentDetails], error)
	DocumentURL(ctx context.Context, id primitive.ObjectID) (string, error)
	UpdateDocumentDescription(ctx context.Context, actor domain.Actor, id primitive.ObjectID, description string) error
	DeleteDocument(ctx context.Context, actor domain.Actor, id primitive.ObjectID) error
}

// instructorService implements the InstructorService interface.
type instructorService struct {
	instructorRepo repository.InstructorRepository
	documentRepo   repository.InstructorDocumentRepository
	documents      files
	reconciler     *concurrency.Reconciler[domain.Instructor]
}

// NewInstructorService creates a new instance of instructorService.
func NewInstructorService(
	instructorRepo repository.InstructorRepository,
	documentRepo repository.InstructorDocumentRepository,
	fileStorage storage.FileStorage,
	fileOpts FileOptions,
) InstructorService {
	return &instructorService{
		instructorRepo: instructorRepo,
		documentRepo:   documentRepo,
		documents:      newFiles(fileStorage, storage.InstructorDocumentPrefix, fileOpts),
		reconciler: &concurrency.Reconciler[domain.Instructor]{
			Entity: domain.KindInstructor,
			Fields: []concurrency.Field[domain.Instructor]{
				concurrency.Text("FirstName", func(i *domain.Instructor) string { return i.FirstName }),
				concurrency.Text("MiddleName", func(i *domain.Instructor) string { return i.MiddleName }),
				concurrency.Text("LastName", func(i *domain.Instructor) string { return i.LastName }),
				concurrency.Date("HireDate", func(i *domain.Instructor) time.Time { return i.HireDate }),
				concurrency.Value("Phone", func(i *domain.Instructor) string { return i.Phone }, domain.FormatPhone),
				concurrency.Text("Email", func(i *domain.Instructor) string { return i.Email }),
				concurrency.Flag("IsActive", func(i *domain.Instructor) bool { return i.IsActive }),
			},
		},
	}
}

func (s *instructorService) List(ctx context.Context, filter repository.InstructorFilter, page repository.Page) (Paged[InstructorDetails], error) {
	instructors, total, err := s.instructorRepo.List(ctx, filter, page)
	if err != nil {
		return Paged[InstructorDetails]{}, err
	}
	today := now()
	items := make([]InstructorDetails, 0, len(instructors))
	for i := range instructors {
		items = append(items, instructorDetails(&instructors[i], today))
	}
	return NewPaged(items, total, page), nil
}

func (s *instructorService) Get(ctx context.Context, id primitive.ObjectID) (*InstructorDetails, error) {
	instructor, err := s.instructorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	d := instructorDetails(instructor, now())
	return &d, nil
}

func (s *instructorService) Create(ctx context.Context, actor domain.Actor, input InstructorInput) (*InstructorDetails, error) {
	if !actor.HasRole(domain.RoleSupervisor, domain.RoleAdmin) {
		return nil, ErrForbidden
	}
	instructor := &domain.Instructor{}
	if err := applyInstructor(instructor, input); err != nil {
		return nil, err
	}

	id, err := s.instructorRepo.Create(ctx, instructor)
	if err != nil {
		return nil, constraint(err, "Email", msgDuplicateInstructorEmail, "")
	}
	instructor.ID = id
	d := instructorDetails(instructor, now())
	return &d, nil
}

func (s *instructorService) Update(ctx context.Context, actor domain.Actor, id primitive.ObjectID, input InstructorInput) (*InstructorDetails, error) {
	if !actor.HasRole(domain.RoleSupervisor, domain.RoleAdmin) {
		return nil, ErrForbidden
	}
	instructor, err := s.instructorRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, &ConcurrencyError{Diff: s.reconciler.Deleted()}
	}
	if err != nil {
		return nil, err
	}
	if err := applyInstructor(instructor, input); err != nil {
		return nil, err
	}

	saved, err := saveEdit(ctx, s.reconciler, instructor, input.RowVersion, s.instructorRepo.UpdateIfVersion,
		func(ctx context.Context, i *domain.Instructor) (*domain.Instructor, error) {
			return s.instructorRepo.GetByID(ctx, i.ID)
		})
	if err != nil {
		return nil, constraint(err, "Email", msgDuplicateInstructorEmail, "")
	}
	d := instructorDetails(saved, now())
	return &d, nil
}

func (s *instructorService) Delete(ctx context.Context, actor domain.Actor, id primitive.ObjectID) error {
	if actor.Role != domain.RoleAdmin {
		return ErrForbidden
	}
	if _, err := s.instructorRepo.GetByID(ctx, id); err != nil {
		return notFound(err)
	}
	docs, _, err := s.documentRepo.List(ctx, repository.InstructorDocumentFilter{InstructorID: &id}, repository.Page{})
	if err != nil {
		return err
	}

	if err := s.instructorRepo.Delete(ctx, id); err != nil {
		return constraint(err, "", "", msgInstructorTeaches)
	}

	if err := s.documentRepo.DeleteByInstructor(ctx, id); err != nil {
		log.Printf("WARN: instructor %s deleted but its documents were not: %v", id.Hex(), err)
		return nil
	}
	for _, doc := range docs {
		s.documents.remove(ctx, doc.ObjectKey)
	}
	return nil
}

func (s *instructorService) Options(ctx context.Context, activeOnly bool) ([]domain.Option, error) {
	filter := repository.InstructorFilter{}
	if activeOnly {
		active := true
		filter.IsActive = &active
	}
	instructors, _, err := s.instructorRepo.List(ctx, filter, repository.Page{SortField: "name"})
	if err != nil {
		return nil, err
	}
	options := make([]domain.Option, 0, len(instructors))
	for i := range instructors {
		options = append(options, domain.Option{ID: instructors[i].ID, Text: instructors[i].FormalName()})
	}
	return options, nil
}

// === Documents ===

func (s *instructorService) RequestDocumentUpload(ctx context.Context, actor domain.Actor, instructorID primitive.ObjectID, fileName, contentType string) (*UploadURLResponse, error) {
	if !actor.HasRole(domain.RoleSupervisor, domain.RoleAdmin) {
		return nil, ErrForbidden
	}
	if strings.TrimSpace(fileName) == "" || contentType == "" {
		return nil, &ValidationError{FieldErrors: map[string]string{"FileName": "You must choose a file to upload."}}
	}
	if _, err := s.instructorRepo.GetByID(ctx, instructorID); err != nil {
		return nil, notFound(err)
	}
	return s.documents.requestUpload(ctx, instructorID.Hex(), fileName, contentType)
}

// ConfirmDocument records a document once it is in storage.
func (s *instructorService) ConfirmDocument(ctx context.Context, actor domain.Actor, instructorID primitive.ObjectID, objectKey, fileName, description string) (*domain.InstructorDocument, error) {
	if !actor.HasRole(domain.RoleSupervisor, domain.RoleAdmin) {
		return nil, ErrForbidden
	}
	if err := validateDocumentDescription(description); err != nil {
		return nil, err
	}
	if _, err := s.instructorRepo.GetByID(ctx, instructorID); err != nil {
		return nil, notFound(err)
	}

	stored, err := s.documents.confirm(ctx, instructorID.Hex(), objectKey, fileName)
	if err != nil {
		return nil, err
	}
	doc := &domain.InstructorDocument{
		InstructorID: instructorID,
		Description:  strings.TrimSpace(description),
		StoredFile:   *stored,
	}
	id, err := s.documentRepo.Create(ctx, doc)
	if err != nil {
		log.Printf("ERROR: saving document metadata for %s: %v", objectKey, err)
		return nil, ErrUploadConfirmationFailed
	}
	doc.ID = id
	return doc, nil
}

func (s *instructorService) ListDocuments(ctx context.Context, filter repository.InstructorDocumentFilter, page repository.Page) (Paged[DocumentDetails], error) {
	docs, total, err := s.documentRepo.List(ctx, filter, page)
	if err != nil {
		return Paged[DocumentDetails]{}, err
	}
	names := map[primitive.ObjectID]string{}
	items := make([]DocumentDetails, 0, len(docs))
	for _, doc := range docs {
		name, ok := names[doc.InstructorID]
		if !ok {
			if instructor, err := s.instructorRepo.GetByID(ctx, doc.InstructorID); err == nil {
				name = instructor.FormalName()
			}
			names[doc.InstructorID] = name
		}
		items = append(items, DocumentDetails{InstructorDocument: doc, Instructor: name})
	}
	return NewPaged(items, total, page), nil
}

func (s *instructorService) DocumentURL(ctx context.Context, id primitive.ObjectID) (string, error) {
	doc, err := s.documentRepo.GetByID(ctx, id)
	if err != nil {
		return "", notFound(err)
	}
	return s.documents.downloadURL(ctx, doc.ObjectKey)
}

func (s *instructorService) UpdateDocumentDescription(ctx context.Context, actor domain.Actor, id primitive.ObjectID, description string) error {
	if !actor.HasRole(domain.RoleSupervisor, domain.RoleAdmin) {
		return ErrForbidden
	}
	if err := validateDocumentDescription(description); err != nil {
		return err
	}
	return notFound(s.documentRepo.UpdateDescription(ctx, id, strings.TrimSpace(description)))
}

func (s *instructorService) DeleteDocument(ctx context.Context, actor domain.Actor, id primitive.ObjectID) error {
	if actor.Role != domain.RoleAdmin {
		return ErrForbidden
	}
	doc, err := s.documentRepo.GetByID(ctx, id)
	if err != nil {
		return notFound(err)
	}
	if err := s.documentRepo.Delete(ctx, id); err != nil {
		return notFound(err)
	}
	s.documents.remove(ctx, doc.ObjectKey)
	return nil
}

func validateDocumentDescription(description string) error {
	verr := &ValidationError{}
	verr.maxLen("Description", description, 255, "Description cannot be more than 255 characters long.")
	return verr.Err()
}

// applyInstructor validates input and copies it onto instructor.
func applyInstructor(instructor *domain.Instructor, input InstructorInput) error {
	verr := &ValidationError{}

	verr.required("FirstName", input.FirstName, "You cannot leave the first name blank.")
	verr.maxLen("FirstName", input.FirstName, 50, "First name cannot be more than 50 characters long.")
	verr.maxLen("MiddleName", input.MiddleName, 50, "Middle name cannot be more than 50 characters long.")
	verr.required("LastName", input.LastName, "You cannot leave the last name blank.")
	verr.maxLen("LastName", input.LastName, 100, "Last name cannot be more than 100 characters long.")

	if input.HireDate.IsZero() {
		verr.Add("HireDate", "You must enter the date the Instructor was hired.")
	} else if input.HireDate.Before(domain.GymOpened) {
		verr.Add("HireDate", "Hire Date cannot be before the Gym opened for business.")
	} else if domain.CalendarDay(input.HireDate).After(domain.AddMonths(domain.CalendarDay(now()), 1)) {
		verr.Add("HireDate", "Hire Date cannot be more than one month in the future.")
	}

	verr.required("Phone", input.Phone, "Phone number is required.")
	verr.matches("Phone", input.Phone, phonePattern, msgPhone)
	verr.required("Email", input.Email, "Email address is required.")
	verr.matches("Email", strings.TrimSpace(input.Email), emailPattern, msgEmail)

	if err := verr.Err(); err != nil {
		return err
	}

	instructor.FirstName = strings.TrimSpace(input.FirstName)
	instructor.MiddleName = strings.TrimSpace(input.MiddleName)
	instructor.LastName = strings.TrimSpace(input.LastName)
	instructor.HireDate = input.HireDate
	instructor.Phone = input.Phone
	instructor.Email = strings.ToLower(strings.TrimSpace(input.Email))
	instructor.IsActive = input.IsActive
	return nil
}

func instructorDetails(instructor *domain.Instructor, today time.Time) InstructorDetails {
	return InstructorDetails{
		Instructor:     *instructor,
		Summary:        instructor.Summary(),
		FormalName:     instructor.FormalName(),
		Seniority:      instructor.Seniority(today),
		PhoneFormatted: instructor.PhoneFormatted(),
	}
}
