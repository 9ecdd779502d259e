package repository

import (
	"alcyxob/gym-management/internal/domain" // Import our defined domain models
	"context"                                 // Standard for request-scoped deadlines, cancellation signals, etc.
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive" // For using ObjectIDs
)

// Error constants for repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
	// ErrVersionMismatch means the row exists but its version token no
	// longer matches the one the caller read; nothing was written.
	ErrVersionMismatch = RepositoryError("version mismatch: record was modified by another user")
	// ErrDuplicateKey means a unique business key is already taken.
	ErrDuplicateKey = RepositoryError("duplicate key")
	// ErrReferenced means a delete was refused because other records depend on this one.
	ErrReferenced = RepositoryError("record is still referenced")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// SortDirection for list queries.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Page selects a slice of a sorted list. Page is 1-based.
type Page struct {
	Page      int
	Size      int
	SortField string
	SortDir   SortDirection
}

// Skip is the number of rows before the requested page.
func (p Page) Skip() int64 {
	if p.Page < 1 || p.Size < 1 {
		return 0
	}
	return int64((p.Page - 1) * p.Size)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
}

// ClientFilter narrows client lists.
type ClientFilter struct {
	Search           string // Matches first or last name
	MembershipTypeID *primitive.ObjectID
	Email            string // Exact match; used to scope client logins to their own record
}

// ClientRepository defines the interface for interacting with client data.
type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Client, error)
	GetByEmail(ctx context.Context, email string) (*domain.Client, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Client, error)
	List(ctx context.Context, filter ClientFilter, page Page) ([]domain.Client, int64, error)
	// UpdateIfVersion writes every editable field only if the stored row
	// version equals expectedVersion, assigning a new version on success.
	UpdateIfVersion(ctx context.Context, client *domain.Client, expectedVersion string) error
	// SetPhoto replaces the photo metadata; nil clears it.
	SetPhoto(ctx context.Context, id primitive.ObjectID, photo *domain.StoredFile) error
	// Delete returns ErrReferenced while the client is enrolled in a group
	// class. The client's workouts are removed with it.
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// InstructorFilter narrows instructor lists.
type InstructorFilter struct {
	Search   string
	Phone    string
	IsActive *bool
}

// InstructorRepository defines the interface for interacting with instructor data.
type InstructorRepository interface {
	Create(ctx context.Context, instructor *domain.Instructor) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Instructor, error)
	List(ctx context.Context, filter InstructorFilter, page Page) ([]domain.Instructor, int64, error)
	UpdateIfVersion(ctx context.Context, instructor *domain.Instructor, expectedVersion string) error
	// Delete returns ErrReferenced while the instructor teaches a group
	// class. Workouts they supervised keep running without an instructor.
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// GroupClassFilter narrows group class lists.
type GroupClassFilter struct {
	Search            string
	ClassTimeID       *primitive.ObjectID
	DOW               *domain.DOW
	FitnessCategoryID *primitive.ObjectID
	InstructorID      *primitive.ObjectID
	ClientID          *primitive.ObjectID // Classes the client is enrolled in
}

// GroupClassRepository defines the interface for interacting with group class data.
type GroupClassRepository interface {
	Create(ctx context.Context, class *domain.GroupClass) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.GroupClass, error)
	List(ctx context.Context, filter GroupClassFilter, page Page) ([]domain.GroupClass, int64, error)
	UpdateIfVersion(ctx context.Context, class *domain.GroupClass, expectedVersion string) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// FitnessCategoryRepository defines the interface for interacting with fitness categories.
type FitnessCategoryRepository interface {
	Create(ctx context.Context, category *domain.FitnessCategory) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.FitnessCategory, error)
	List(ctx context.Context) ([]domain.FitnessCategory, error)
	UpdateIfVersion(ctx context.Context, category *domain.FitnessCategory, expectedVersion string) error
	// Delete returns ErrReferenced while a group class or exercise uses the category.
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// WorkoutFilter narrows a client's workout list.
type WorkoutFilter struct {
	ClientID     primitive.ObjectID
	InstructorID *primitive.ObjectID
	Search       string // Matches notes
}

// WorkoutRepository defines the interface for interacting with workout data.
type WorkoutRepository interface {
	Create(ctx context.Context, workout *domain.Workout) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error)
	// GetByDate returns every workout starting on the calendar date of day
	// in day's location, except excludeID (pass primitive.NilObjectID to
	// keep all). Callers pass day on the gym's clock.
	GetByDate(ctx context.Context, day time.Time, excludeID primitive.ObjectID) ([]domain.Workout, error)
	List(ctx context.Context, filter WorkoutFilter, page Page) ([]domain.Workout, int64, error)
	Update(ctx context.Context, workout *domain.Workout) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// InstructorDocumentFilter narrows document lists.
type InstructorDocumentFilter struct {
	InstructorID *primitive.ObjectID
	FileName     string
}

// InstructorDocumentRepository stores metadata for instructor files kept in object storage.
type InstructorDocumentRepository interface {
	Create(ctx context.Context, doc *domain.InstructorDocument) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.InstructorDocument, error)
	List(ctx context.Context, filter InstructorDocumentFilter, page Page) ([]domain.InstructorDocument, int64, error)
	UpdateDescription(ctx context.Context, id primitive.ObjectID, description string) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByInstructor(ctx context.Context, instructorID primitive.ObjectID) error
}

// LookupRepository serves the small reference tables used for dropdowns.
type LookupRepository interface {
	MembershipTypes(ctx context.Context) ([]domain.MembershipType, error)
	MembershipType(ctx context.Context, id primitive.ObjectID) (*domain.MembershipType, error)
	ClassTimes(ctx context.Context) ([]domain.ClassTime, error)
	ClassTime(ctx context.Context, id primitive.ObjectID) (*domain.ClassTime, error)
	Exercises(ctx context.Context) ([]domain.Exercise, error)
}
