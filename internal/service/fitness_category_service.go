package service

import (
	"alcyxob/gym-management/internal/concurrency"
	"alcyxob/gym-management/internal/domain"
	"alcyxob/gym-management/internal/repository"
	"context"
	"errors"
	"sort"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	msgDuplicateCategory  = "Unable to save changes. Remember, you cannot have duplicate Fitness Category Name."
	msgCategoryReferenced = "Unable to Delete Fitness Category. Remember, you cannot delete a Category if there are Group Classes in it."
)

// FitnessCategoryInput is the editable part of a category.
type FitnessCategoryInput struct {
	Category   string
	RowVersion string
}

type FitnessCategoryService interface {
	List(ctx context.Context) ([]domain.FitnessCategory, error)
	Get(ctx context.Context, id primitive.ObjectID) (*domain.FitnessCategory, error)
	Create(ctx context.Context, actor domain.Actor, input FitnessCategoryInput) (*domain.FitnessCategory, error)
	Update(ctx context.Context, actor domain.Actor, id primitive.ObjectID, input FitnessCategoryInput) (*domain.FitnessCategory, error)
	Delete(ctx context.Context, actor domain.Actor, id primitive.ObjectID) error
}

// fitnessCategoryService implements the FitnessCategoryService interface.
type fitnessCategoryService struct {
	categoryRepo repository.FitnessCategoryRepository
	reconciler   *concurrency.Reconciler[domain.FitnessCategory]
}

// NewFitnessCategoryService creates a new instance of fitnessCategoryService.
func NewFitnessCategoryService(categoryRepo repository.FitnessCategoryRepository) FitnessCategoryService {
	return &fitnessCategoryService{
		categoryRepo: categoryRepo,
		reconciler: &concurrency.Reconciler[domain.FitnessCategory]{
			Entity: domain.KindFitnessCategory,
			Fields: []concurrency.Field[domain.FitnessCategory]{
				concurrency.Text("Category", func(c *domain.FitnessCategory) string { return c.Category }),
			},
		},
	}
}

// List returns every category ordered by name.
func (s *fitnessCategoryService) List(ctx context.Context) ([]domain.FitnessCategory, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(categories, func(i, j int) bool { return categories[i].Category < categories[j].Category })
	return categories, nil
}

func (s *fitnessCategoryService) Get(ctx context.Context, id primitive.ObjectID) (*domain.FitnessCategory, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return category, nil
}

func (s *fitnessCategoryService) Create(ctx context.Context, actor domain.Actor, input FitnessCategoryInput) (*domain.FitnessCategory, error) {
	if !actor.HasRole(domain.StaffRoles...) {
		return nil, ErrForbidden
	}
	category := &domain.FitnessCategory{}
	if err := applyCategory(category, input); err != nil {
		return nil, err
	}
	id, err := s.categoryRepo.Create(ctx, category)
	if err != nil {
		return nil, constraint(err, "Category", msgDuplicateCategory, "")
	}
	category.ID = id
	return category, nil
}

func (s *fitnessCategoryService) Update(ctx context.Context, actor domain.Actor, id primitive.ObjectID, input FitnessCategoryInput) (*domain.FitnessCategory, error) {
	if !actor.HasRole(domain.StaffRoles...) {
		return nil, ErrForbidden
	}
	category, err := s.categoryRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, &ConcurrencyError{Diff: s.reconciler.Deleted()}
	}
	if err != nil {
		return nil, err
	}
	if err := applyCategory(category, input); err != nil {
		return nil, err
	}

	saved, err := saveEdit(ctx, s.reconciler, category, input.RowVersion, s.categoryRepo.UpdateIfVersion,
		func(ctx context.Context, c *domain.FitnessCategory) (*domain.FitnessCategory, error) {
			return s.categoryRepo.GetByID(ctx, c.ID)
		})
	if err != nil {
		return nil, constraint(err, "Category", msgDuplicateCategory, "")
	}
	return saved, nil
}

func (s *fitnessCategoryService) Delete(ctx context.Context, actor domain.Actor, id primitive.ObjectID) error {
	if actor.Role != domain.RoleAdmin {
		return ErrForbidden
	}
	return constraint(s.categoryRepo.Delete(ctx, id), "", "", msgCategoryReferenced)
}

func applyCategory(category *domain.FitnessCategory, input FitnessCategoryInput) error {
	name := strings.TrimSpace(input.Category)
	verr := &ValidationError{}
	verr.required("Category", name, "You cannot leave the category name blank.")
	verr.maxLen("Category", name, 50, "Category name cannot be more than 50 characters long.")
	if err := verr.Err(); err != nil {
		return err
	}
	category.Category = name
	return nil
}
