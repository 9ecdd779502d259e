package service

import (
	"alcyxob/gym-management/internal/concurrency"
	"alcyxob/gym-management/internal/domain"
	"alcyxob/gym-management/internal/repository"
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const msgInstructorDoubleBooked = "Unable to save changes. Remember, an Instructor cannot teach two classes at the same time."

// GroupClassInput is the editable part of a group class. RowVersion is the
// token the caller read; it is ignored on create.
type GroupClassInput struct {
	Description       string
	DOW               *domain.DOW
	FitnessCategoryID primitive.ObjectID
	InstructorID      primitive.ObjectID
	ClassTimeID       primitive.ObjectID
	ClientIDs         []primitive.ObjectID
	RowVersion        string
}

// GroupClassDetails is a group class with its references resolved for display.
type GroupClassDetails struct {
	domain.GroupClass
	Summary          string          `json:"summary"`
	ShortDescription string          `json:"shortDescription"`
	DayOfWeek        string          `json:"dayOfWeek"`
	FitnessCategory  string          `json:"fitnessCategory"`
	ClassTime        string          `json:"classTime"`
	Instructor       string          `json:"instructor"`
	Clients          []domain.Option `json:"clients,omitempty"`
}

type GroupClassService interface {
	List(ctx context.Context, filter repository.GroupClassFilter, page repository.Page) (Paged[GroupClassDetails], error)
	Get(ctx context.Context, id primitive.ObjectID) (*GroupClassDetails, error)
	Create(ctx context.Context, actor domain.Actor, input GroupClassInput) (*domain.GroupClass, error)
	Update(ctx context.Context, actor domain.Actor, id primitive.ObjectID, input GroupClassInput) (*domain.GroupClass, error)
	Delete(ctx context.Context, actor domain.Actor, id primitive.ObjectID) error
	// EnrollmentChoices splits all clients into those enrolled in the class
	// and those who could be added. A zero id means a class not yet created.
	EnrollmentChoices(ctx context.Context, id primitive.ObjectID) (selected, available []domain.Option, err error)
}

// groupClassService implements the GroupClassService interface.
type groupClassService struct {
	classRepo      repository.GroupClassRepository
	categoryRepo   repository.FitnessCategoryRepository
	instructorRepo repository.InstructorRepository
	clientRepo     repository.ClientRepository
	lookupRepo     repository.LookupRepository
	reconciler     *concurrency.Reconciler[domain.GroupClass]
}

// NewGroupClassService creates a new instance of groupClassService.
func NewGroupClassService(
	classRepo repository.GroupClassRepository,
	categoryRepo repository.FitnessCategoryRepository,
	instructorRepo repository.InstructorRepository,
	clientRepo repository.ClientRepository,
	lookupRepo repository.LookupRepository,
) GroupClassService {
	s := &groupClassService{
		classRepo:      classRepo,
		categoryRepo:   categoryRepo,
		instructorRepo: instructorRepo,
		clientRepo:     clientRepo,
		lookupRepo:     lookupRepo,
	}
	s.reconciler = &concurrency.Reconciler[domain.GroupClass]{
		Entity: domain.KindGroupClass,
		Fields: []concurrency.Field[domain.GroupClass]{
			concurrency.Text("Description", func(g *domain.GroupClass) string { return g.Description }),
			concurrency.Value("DOW", func(g *domain.GroupClass) domain.DOW { return g.DOW }, domain.DOW.String),
			concurrency.Reference("FitnessCategoryID", func(g *domain.GroupClass) primitive.ObjectID { return g.FitnessCategoryID }, s.categoryName),
			concurrency.Reference("InstructorID", func(g *domain.GroupClass) primitive.ObjectID { return g.InstructorID }, s.instructorName),
			concurrency.Reference("ClassTimeID", func(g *domain.GroupClass) primitive.ObjectID { return g.ClassTimeID }, s.classTimeName),
		},
	}
	return s
}

func (s *groupClassService) List(ctx context.Context, filter repository.GroupClassFilter, page repository.Page) (Paged[GroupClassDetails], error) {
	classes, total, err := s.classRepo.List(ctx, filter, page)
	if err != nil {
		return Paged[GroupClassDetails]{}, err
	}

	names, err := s.loadNames(ctx)
	if err != nil {
		return Paged[GroupClassDetails]{}, err
	}
	items := make([]GroupClassDetails, 0, len(classes))
	for i := range classes {
		items = append(items, s.details(ctx, &classes[i], names))
	}
	return NewPaged(items, total, page), nil
}

func (s *groupClassService) Get(ctx context.Context, id primitive.ObjectID) (*GroupClassDetails, error) {
	class, err := s.classRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	names, err := s.loadNames(ctx)
	if err != nil {
		return nil, err
	}
	d := s.details(ctx, class, names)

	if len(class.ClientIDs) > 0 {
		clients, err := s.clientRepo.GetByIDs(ctx, class.ClientIDs)
		if err != nil {
			return nil, err
		}
		options := make([]domain.Option, 0, len(clients))
		for i := range clients {
			options = append(options, domain.Option{ID: clients[i].ID, Text: clients[i].FullFormalName()})
		}
		d.Clients, _ = PartitionSelection(options, class.ClientIDs)
	}
	return &d, nil
}

func (s *groupClassService) Create(ctx context.Context, actor domain.Actor, input GroupClassInput) (*domain.GroupClass, error) {
	if !actor.HasRole(domain.StaffRoles...) {
		return nil, ErrForbidden
	}
	class := &domain.GroupClass{}
	if err := s.apply(ctx, class, input); err != nil {
		return nil, err
	}

	id, err := s.classRepo.Create(ctx, class)
	if err != nil {
		return nil, constraint(err, "", msgInstructorDoubleBooked, "")
	}
	class.ID = id
	return class, nil
}

// Update saves an edit made against input.RowVersion. If another user got
// there first the result is a *ConcurrencyError listing what they changed.
func (s *groupClassService) Update(ctx context.Context, actor domain.Actor, id primitive.ObjectID, input GroupClassInput) (*domain.GroupClass, error) {
	if !actor.HasRole(domain.StaffRoles...) {
		return nil, ErrForbidden
	}
	class, err := s.classRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, &ConcurrencyError{Diff: s.reconciler.Deleted()}
	}
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, class, input); err != nil {
		return nil, err
	}

	saved, err := saveEdit(ctx, s.reconciler, class, input.RowVersion, s.classRepo.UpdateIfVersion,
		func(ctx context.Context, g *domain.GroupClass) (*domain.GroupClass, error) {
			return s.classRepo.GetByID(ctx, g.ID)
		})
	if err != nil {
		return nil, constraint(err, "", msgInstructorDoubleBooked, "")
	}
	return saved, nil
}

func (s *groupClassService) Delete(ctx context.Context, actor domain.Actor, id primitive.ObjectID) error {
	class, err := s.classRepo.GetByID(ctx, id)
	if err != nil {
		return notFound(err)
	}
	if err := canDelete(actor, class.Audit); err != nil {
		return err
	}
	return notFound(s.classRepo.Delete(ctx, id))
}

func (s *groupClassService) EnrollmentChoices(ctx context.Context, id primitive.ObjectID) ([]domain.Option, []domain.Option, error) {
	var enrolled []primitive.ObjectID
	if !id.IsZero() {
		class, err := s.classRepo.GetByID(ctx, id)
		if err != nil {
			return nil, nil, notFound(err)
		}
		enrolled = class.ClientIDs
	}

	clients, _, err := s.clientRepo.List(ctx, repository.ClientFilter{}, repository.Page{})
	if err != nil {
		return nil, nil, err
	}
	options := make([]domain.Option, 0, len(clients))
	for i := range clients {
		options = append(options, domain.Option{ID: clients[i].ID, Text: clients[i].FullFormalName()})
	}
	selected, available := PartitionSelection(options, enrolled)
	return selected, available, nil
}

// apply validates input and copies it onto class.
func (s *groupClassService) apply(ctx context.Context, class *domain.GroupClass, input GroupClassInput) error {
	verr := &ValidationError{}

	verr.required("Description", input.Description, "You cannot leave the class description blank.")
	if n := len([]rune(input.Description)); n > 0 && n < 10 {
		verr.Add("Description", "The description must be at least 10 characters long.")
	}
	verr.maxLen("Description", input.Description, 200, "Description cannot be more than 200 characters long.")

	if input.DOW == nil || !input.DOW.Valid() {
		verr.Add("DOW", "You must select Day of Week for this scheduled class!")
	}

	if input.FitnessCategoryID.IsZero() {
		verr.Add("FitnessCategoryID", "You must select the Fitness Category of the class.")
	} else if _, err := s.categoryRepo.GetByID(ctx, input.FitnessCategoryID); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		verr.Add("FitnessCategoryID", "You must select the Fitness Category of the class.")
	}

	if input.InstructorID.IsZero() {
		verr.Add("InstructorID", "You must select the Instructor leading the class.")
	} else if _, err := s.instructorRepo.GetByID(ctx, input.InstructorID); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		verr.Add("InstructorID", "You must select the Instructor leading the class.")
	}

	if input.ClassTimeID.IsZero() {
		verr.Add("ClassTimeID", "You must select the time the scheduled class starts.")
	} else if _, err := s.lookupRepo.ClassTime(ctx, input.ClassTimeID); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		verr.Add("ClassTimeID", "You must select the time the scheduled class starts.")
	}

	if err := verr.Err(); err != nil {
		return err
	}

	class.Description = input.Description
	class.DOW = *input.DOW
	class.FitnessCategoryID = input.FitnessCategoryID
	class.InstructorID = input.InstructorID
	class.ClassTimeID = input.ClassTimeID
	class.ClientIDs = uniqueIDs(input.ClientIDs)
	return nil
}

// classNames holds the small reference tables a page of classes needs.
type classNames struct {
	categories  map[primitive.ObjectID]string
	classTimes  map[primitive.ObjectID]string
	instructors map[primitive.ObjectID]string
}

func (s *groupClassService) loadNames(ctx context.Context) (*classNames, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	times, err := s.lookupRepo.ClassTimes(ctx)
	if err != nil {
		return nil, err
	}
	names := &classNames{
		categories:  make(map[primitive.ObjectID]string, len(categories)),
		classTimes:  make(map[primitive.ObjectID]string, len(times)),
		instructors: map[primitive.ObjectID]string{},
	}
	for _, c := range categories {
		names.categories[c.ID] = c.Category
	}
	for _, t := range times {
		names.classTimes[t.ID] = t.StartTime
	}
	return names, nil
}

func (s *groupClassService) details(ctx context.Context, class *domain.GroupClass, names *classNames) GroupClassDetails {
	instructor, ok := names.instructors[class.InstructorID]
	if !ok {
		instructor = s.instructorName(ctx, class.InstructorID)
		names.instructors[class.InstructorID] = instructor
	}
	category := names.categories[class.FitnessCategoryID]
	classTime := names.classTimes[class.ClassTimeID]
	return GroupClassDetails{
		GroupClass:       *class,
		Summary:          class.Summary(category, classTime),
		ShortDescription: class.ShortDescription(),
		DayOfWeek:        class.DOW.String(),
		FitnessCategory:  category,
		ClassTime:        classTime,
		Instructor:       instructor,
	}
}

func (s *groupClassService) categoryName(ctx context.Context, id primitive.ObjectID) string {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return ""
	}
	return category.Category
}

func (s *groupClassService) instructorName(ctx context.Context, id primitive.ObjectID) string {
	instructor, err := s.instructorRepo.GetByID(ctx, id)
	if err != nil {
		return ""
	}
	return instructor.Summary()
}

func (s *groupClassService) classTimeName(ctx context.Context, id primitive.ObjectID) string {
	t, err := s.lookupRepo.ClassTime(ctx, id)
	if err != nil {
		return ""
	}
	return t.StartTime
}
