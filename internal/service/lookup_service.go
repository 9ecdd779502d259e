package service

import (
	"alcyxob/gym-management/internal/domain"
	"alcyxob/gym-management/internal/repository"
	"context"
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LookupService serves the read-only reference lists behind dropdowns.
type LookupService interface {
	MembershipTypes(ctx context.Context) ([]domain.Option, error)
	ClassTimes(ctx context.Context) ([]domain.Option, error)
	Exercises(ctx context.Context) ([]domain.Option, error)
	// StandardFee is the fee new memberships of the given type default to.
	StandardFee(ctx context.Context, membershipTypeID primitive.ObjectID) (float64, error)
}

type lookupService struct {
	lookupRepo   repository.LookupRepository
	categoryRepo repository.FitnessCategoryRepository
}

func NewLookupService(lookupRepo repository.LookupRepository, categoryRepo repository.FitnessCategoryRepository) LookupService {
	return &lookupService{lookupRepo: lookupRepo, categoryRepo: categoryRepo}
}

func (s *lookupService) MembershipTypes(ctx context.Context) ([]domain.Option, error) {
	types, err := s.lookupRepo.MembershipTypes(ctx)
	if err != nil {
		return nil, err
	}
	options := make([]domain.Option, 0, len(types))
	for i := range types {
		options = append(options, domain.Option{ID: types[i].ID, Text: types[i].Summary()})
	}
	return options, nil
}

// ClassTimes keeps the stored order, which is chronological.
func (s *lookupService) ClassTimes(ctx context.Context) ([]domain.Option, error) {
	times, err := s.lookupRepo.ClassTimes(ctx)
	if err != nil {
		return nil, err
	}
	options := make([]domain.Option, 0, len(times))
	for _, t := range times {
		options = append(options, domain.Option{ID: t.ID, Text: t.StartTime})
	}
	return options, nil
}

func (s *lookupService) Exercises(ctx context.Context) ([]domain.Option, error) {
	exercises, err := s.lookupRepo.Exercises(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[primitive.ObjectID]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Category
	}
	options := make([]domain.Option, 0, len(exercises))
	for i := range exercises {
		options = append(options, domain.Option{
			ID:   exercises[i].ID,
			Text: exercises[i].Summary(func(id primitive.ObjectID) string { return names[id] }),
		})
	}
	sort.SliceStable(options, func(i, j int) bool { return options[i].Text < options[j].Text })
	return options, nil
}

func (s *lookupService) StandardFee(ctx context.Context, membershipTypeID primitive.ObjectID) (float64, error) {
	t, err := s.lookupRepo.MembershipType(ctx, membershipTypeID)
	if err != nil {
		return 0, notFound(err)
	}
	return t.StandardFee, nil
}
