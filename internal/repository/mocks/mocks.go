package mocks

import (
	"context"
	"time"

	"alcyxob/gym-management/internal/domain"
	"alcyxob/gym-management/internal/repository"
	"alcyxob/gym-management/internal/storage"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRepository is a mock for repository.UserRepository.
type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if u, ok := args.Get(0).(*domain.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*domain.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

// ClientRepository is a mock for repository.ClientRepository.
type ClientRepository struct {
	mock.Mock
}

func (m *ClientRepository) Create(ctx context.Context, client *domain.Client) (primitive.ObjectID, error) {
	args := m.Called(ctx, client)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *ClientRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Client, error) {
	args := m.Called(ctx, id)
	if c, ok := args.Get(0).(*domain.Client); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ClientRepository) GetByEmail(ctx context.Context, email string) (*domain.Client, error) {
	args := m.Called(ctx, email)
	if c, ok := args.Get(0).(*domain.Client); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ClientRepository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Client, error) {
	args := m.Called(ctx, ids)
	if list, ok := args.Get(0).([]domain.Client); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ClientRepository) List(ctx context.Context, filter repository.ClientFilter, page repository.Page) ([]domain.Client, int64, error) {
	args := m.Called(ctx, filter, page)
	if list, ok := args.Get(0).([]domain.Client); ok {
		return list, args.Get(1).(int64), args.Error(2)
	}
	return nil, 0, args.Error(2)
}

func (m *ClientRepository) UpdateIfVersion(ctx context.Context, client *domain.Client, expectedVersion string) error {
	args := m.Called(ctx, client, expectedVersion)
	return args.Error(0)
}

func (m *ClientRepository) SetPhoto(ctx context.Context, id primitive.ObjectID, photo *domain.StoredFile) error {
	args := m.Called(ctx, id, photo)
	return args.Error(0)
}

func (m *ClientRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// InstructorRepository is a mock for repository.InstructorRepository.
type InstructorRepository struct {
	mock.Mock
}

func (m *InstructorRepository) Create(ctx context.Context, instructor *domain.Instructor) (primitive.ObjectID, error) {
	args := m.Called(ctx, instructor)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *InstructorRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Instructor, error) {
	args := m.Called(ctx, id)
	if i, ok := args.Get(0).(*domain.Instructor); ok {
		return i, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *InstructorRepository) List(ctx context.Context, filter repository.InstructorFilter, page repository.Page) ([]domain.Instructor, int64, error) {
	args := m.Called(ctx, filter, page)
	if list, ok := args.Get(0).([]domain.Instructor); ok {
		return list, args.Get(1).(int64), args.Error(2)
	}
	return nil, 0, args.Error(2)
}

func (m *InstructorRepository) UpdateIfVersion(ctx context.Context, instructor *domain.Instructor, expectedVersion string) error {
	args := m.Called(ctx, instructor, expectedVersion)
	return args.Error(0)
}

func (m *InstructorRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// GroupClassRepository is a mock for repository.GroupClassRepository.
type GroupClassRepository struct {
	mock.Mock
}

func (m *GroupClassRepository) Create(ctx context.Context, class *domain.GroupClass) (primitive.ObjectID, error) {
	args := m.Called(ctx, class)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *GroupClassRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.GroupClass, error) {
	args := m.Called(ctx, id)
	if g, ok := args.Get(0).(*domain.GroupClass); ok {
		return g, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *GroupClassRepository) List(ctx context.Context, filter repository.GroupClassFilter, page repository.Page) ([]domain.GroupClass, int64, error) {
	args := m.Called(ctx, filter, page)
	if list, ok := args.Get(0).([]domain.GroupClass); ok {
		return list, args.Get(1).(int64), args.Error(2)
	}
	return nil, 0, args.Error(2)
}

func (m *GroupClassRepository) UpdateIfVersion(ctx context.Context, class *domain.GroupClass, expectedVersion string) error {
	args := m.Called(ctx, class, expectedVersion)
	return args.Error(0)
}

func (m *GroupClassRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// FitnessCategoryRepository is a mock for repository.FitnessCategoryRepository.
type FitnessCategoryRepository struct {
	mock.Mock
}

func (m *FitnessCategoryRepository) Create(ctx context.Context, category *domain.FitnessCategory) (primitive.ObjectID, error) {
	args := m.Called(ctx, category)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *FitnessCategoryRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.FitnessCategory, error) {
	args := m.Called(ctx, id)
	if c, ok := args.Get(0).(*domain.FitnessCategory); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *FitnessCategoryRepository) List(ctx context.Context) ([]domain.FitnessCategory, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]domain.FitnessCategory); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *FitnessCategoryRepository) UpdateIfVersion(ctx context.Context, category *domain.FitnessCategory, expectedVersion string) error {
	args := m.Called(ctx, category, expectedVersion)
	return args.Error(0)
}

func (m *FitnessCategoryRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// WorkoutRepository is a mock for repository.WorkoutRepository.
type WorkoutRepository struct {
	mock.Mock
}

func (m *WorkoutRepository) Create(ctx context.Context, workout *domain.Workout) (primitive.ObjectID, error) {
	args := m.Called(ctx, workout)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *WorkoutRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error) {
	args := m.Called(ctx, id)
	if w, ok := args.Get(0).(*domain.Workout); ok {
		return w, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *WorkoutRepository) GetByDate(ctx context.Context, day time.Time, excludeID primitive.ObjectID) ([]domain.Workout, error) {
	args := m.Called(ctx, day, excludeID)
	if list, ok := args.Get(0).([]domain.Workout); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *WorkoutRepository) List(ctx context.Context, filter repository.WorkoutFilter, page repository.Page) ([]domain.Workout, int64, error) {
	args := m.Called(ctx, filter, page)
	if list, ok := args.Get(0).([]domain.Workout); ok {
		return list, args.Get(1).(int64), args.Error(2)
	}
	return nil, 0, args.Error(2)
}

func (m *WorkoutRepository) Update(ctx context.Context, workout *domain.Workout) error {
	args := m.Called(ctx, workout)
	return args.Error(0)
}

func (m *WorkoutRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// InstructorDocumentRepository is a mock for repository.InstructorDocumentRepository.
type InstructorDocumentRepository struct {
	mock.Mock
}

func (m *InstructorDocumentRepository) Create(ctx context.Context, doc *domain.InstructorDocument) (primitive.ObjectID, error) {
	args := m.Called(ctx, doc)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *InstructorDocumentRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.InstructorDocument, error) {
	args := m.Called(ctx, id)
	if d, ok := args.Get(0).(*domain.InstructorDocument); ok {
		return d, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *InstructorDocumentRepository) List(ctx context.Context, filter repository.InstructorDocumentFilter, page repository.Page) ([]domain.InstructorDocument, int64, error) {
	args := m.Called(ctx, filter, page)
	if list, ok := args.Get(0).([]domain.InstructorDocument); ok {
		return list, args.Get(1).(int64), args.Error(2)
	}
	return nil, 0, args.Error(2)
}

func (m *InstructorDocumentRepository) UpdateDescription(ctx context.Context, id primitive.ObjectID, description string) error {
	args := m.Called(ctx, id, description)
	return args.Error(0)
}

func (m *InstructorDocumentRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *InstructorDocumentRepository) DeleteByInstructor(ctx context.Context, instructorID primitive.ObjectID) error {
	args := m.Called(ctx, instructorID)
	return args.Error(0)
}

// LookupRepository is a mock for repository.LookupRepository.
type LookupRepository struct {
	mock.Mock
}

func (m *LookupRepository) MembershipTypes(ctx context.Context) ([]domain.MembershipType, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]domain.MembershipType); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *LookupRepository) MembershipType(ctx context.Context, id primitive.ObjectID) (*domain.MembershipType, error) {
	args := m.Called(ctx, id)
	if t, ok := args.Get(0).(*domain.MembershipType); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *LookupRepository) ClassTimes(ctx context.Context) ([]domain.ClassTime, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]domain.ClassTime); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *LookupRepository) ClassTime(ctx context.Context, id primitive.ObjectID) (*domain.ClassTime, error) {
	args := m.Called(ctx, id)
	if t, ok := args.Get(0).(*domain.ClassTime); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *LookupRepository) Exercises(ctx context.Context) ([]domain.Exercise, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]domain.Exercise); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// FileStorage is a mock for storage.FileStorage.
type FileStorage struct {
	mock.Mock
}

func (m *FileStorage) GeneratePresignedUploadURL(ctx context.Context, objectKey string, contentType string, expires time.Duration) (string, error) {
	args := m.Called(ctx, objectKey, contentType, expires)
	return args.String(0), args.Error(1)
}

func (m *FileStorage) GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error) {
	args := m.Called(ctx, objectKey, expires)
	return args.String(0), args.Error(1)
}

func (m *FileStorage) StatObject(ctx context.Context, objectKey string) (*storage.ObjectMetadata, error) {
	args := m.Called(ctx, objectKey)
	if meta, ok := args.Get(0).(*storage.ObjectMetadata); ok {
		return meta, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *FileStorage) DeleteObject(ctx context.Context, objectKey string) error {
	args := m.Called(ctx, objectKey)
	return args.Error(0)
}

var (
	_ repository.UserRepository               = (*UserRepository)(nil)
	_ repository.ClientRepository             = (*ClientRepository)(nil)
	_ repository.InstructorRepository         = (*InstructorRepository)(nil)
	_ repository.GroupClassRepository         = (*GroupClassRepository)(nil)
	_ repository.FitnessCategoryRepository    = (*FitnessCategoryRepository)(nil)
	_ repository.WorkoutRepository            = (*WorkoutRepository)(nil)
	_ repository.InstructorDocumentRepository = (*InstructorDocumentRepository)(nil)
	_ repository.LookupRepository             = (*LookupRepository)(nil)
	_ storage.FileStorage                     = (*FileStorage)(nil)
)
