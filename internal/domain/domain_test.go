package domain

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestDurationSummary(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, ""},
		{10 * time.Minute, "10 min"},
		{time.Hour, "1 hr"},
		{80 * time.Minute, "1 hr, 20 min"},
		{2 * time.Hour, "2 hrs"},
		{26*time.Hour + 5*time.Minute, "1 day, 2 hrs, 5 min"},
		{48 * time.Hour, "2 days"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DurationSummary(tt.d), tt.d.String())
	}
}

func TestWorkoutSummaries(t *testing.T) {
	start := time.Date(2024, time.January, 10, 14, 0, 0, 0, time.UTC)
	end := start.Add(50 * time.Minute)
	w := &Workout{StartTime: start, EndTime: &end}

	assert.Equal(t, "2024-01-10", w.StartDateSummary())
	assert.Equal(t, "2:00 PM", w.StartTimeSummary())
	assert.Equal(t, "2:50 PM", w.EndTimeSummary())
	assert.Equal(t, "50 min", w.DurationSummary())

	open := &Workout{StartTime: start}
	assert.Equal(t, "Unknown", open.EndTimeSummary())
	assert.Zero(t, open.Duration())
}

func TestWorkoutInLocation(t *testing.T) {
	est := time.FixedZone("EST", -5*60*60)
	// 8:00 PM Eastern as the store returns it.
	start := time.Date(2024, time.January, 11, 1, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	stored := Workout{StartTime: start, EndTime: &end}

	local := stored.In(est)
	assert.Equal(t, "2024-01-10", local.StartDateSummary())
	assert.Equal(t, "8:00 PM", local.StartTimeSummary())
	assert.Equal(t, "9:00 PM", local.EndTimeSummary())
	assert.True(t, local.StartTime.Equal(start))

	// The original keeps its times.
	assert.Equal(t, "1:00 AM", stored.StartTimeSummary())
	assert.Equal(t, stored, stored.In(nil))
}

func TestWorkoutSameInstructor(t *testing.T) {
	x := primitive.NewObjectID()
	nilID := primitive.NilObjectID

	a := &Workout{InstructorID: &x}
	b := &Workout{InstructorID: &x}
	none := &Workout{}
	zero := &Workout{InstructorID: &nilID}

	assert.True(t, a.SameInstructor(b))
	assert.False(t, a.SameInstructor(none))
	assert.False(t, none.SameInstructor(none))
	assert.False(t, zero.SameInstructor(zero))
}

func TestAddMonthsClampsDay(t *testing.T) {
	jan31 := time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), AddMonths(jan31, 1))
	assert.Equal(t, time.Date(2024, time.April, 30, 0, 0, 0, 0, time.UTC), AddMonths(jan31, 3))
	assert.Equal(t, time.Date(2023, time.December, 31, 0, 0, 0, 0, time.UTC), AddMonths(jan31, -1))
}

func TestClientMembershipStatus(t *testing.T) {
	today := time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)

	c := &Client{MembershipEndDate: time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)}
	assert.Equal(t, "Expired", c.MembershipStatus(today))

	c.MembershipEndDate = time.Date(2024, time.May, 20, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "Exp. in 2 Months, 5 Days", c.MembershipStatus(today))

	c.MembershipEndDate = time.Date(2024, time.April, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "Exp. in 0 Months, 26 Days", c.MembershipStatus(today))
}

func TestClientNames(t *testing.T) {
	c := &Client{FirstName: "Fred", MiddleName: "flint", LastName: "Flintstone", Phone: "9055551234"}
	assert.Equal(t, "Fred F. Flintstone", c.FullName())
	assert.Equal(t, "Flintstone, Fred F.", c.FormalName())
	assert.Equal(t, "Flintstone, Fred flint", c.FullFormalName())
	assert.Equal(t, "Fred F. Flintstone - Gold Mem.", c.Summary("Gold"))
	assert.Equal(t, "(905) 555-1234", c.PhoneFormatted())

	c.DOB = time.Date(2000, time.June, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 23, c.Age(time.Date(2024, time.May, 31, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 24, c.Age(time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)))
}

func TestInstructorSeniority(t *testing.T) {
	i := &Instructor{FirstName: "Ann", LastName: "Lee", HireDate: time.Date(2019, time.September, 1, 0, 0, 0, 0, time.UTC)}
	assert.Equal(t, "Ann Lee", i.Summary())
	assert.Equal(t, "4 Yrs.", i.Seniority(time.Date(2024, time.August, 31, 0, 0, 0, 0, time.UTC)))
}

func TestGroupClassHelpers(t *testing.T) {
	g := &GroupClass{Description: "A long running class about everything", DOW: Friday}
	assert.Equal(t, "A long running class...", g.ShortDescription())
	assert.Equal(t, "Yoga - Fri 9:00 AM", g.Summary("Yoga", "9:00 AM"))

	d, ok := ParseDOW("Wed")
	assert.True(t, ok)
	assert.Equal(t, Wednesday, d)
	_, ok = ParseDOW("Funday")
	assert.False(t, ok)
	assert.False(t, DOW(9).Valid())
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "$1,234.50", FormatCurrency(1234.5))
	assert.Equal(t, "$0.00", FormatCurrency(0))
	assert.Equal(t, "-$5.00", FormatCurrency(-5))
	assert.Equal(t, "1/10/2024", FormatShortDate(time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)))
	assert.Empty(t, FormatShortDate(time.Time{}))
	assert.Equal(t, "Yes", FormatBool(true))

	m := &MembershipType{Type: "Gold", StandardFee: 100}
	assert.Equal(t, "Gold (Std. Fee: $100.00)", m.Summary())
}

func TestStampAudit(t *testing.T) {
	created := time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC)
	updated := created.Add(time.Hour)

	var a Audit
	StampAudit(&a, KindClient, AuditCreate, "staff@gym.test", created)
	assert.Equal(t, Audit{CreatedBy: "staff@gym.test", CreatedOn: created, UpdatedBy: "staff@gym.test", UpdatedOn: created}, a)

	StampAudit(&a, KindClient, AuditUpdate, "", updated)
	assert.Equal(t, "staff@gym.test", a.CreatedBy)
	assert.Equal(t, created, a.CreatedOn)
	assert.Equal(t, SeedActor, a.UpdatedBy)
	assert.Equal(t, updated, a.UpdatedOn)

	var untouched Audit
	StampAudit(&untouched, KindWorkout, AuditCreate, "x", created)
	assert.Equal(t, Audit{}, untouched)
}

func TestAuditActor(t *testing.T) {
	assert.Equal(t, SeedActor, AuditActor(context.Background()))

	ctx := ContextWithActor(context.Background(), Actor{Email: "sup@gym.test", Role: RoleSupervisor})
	assert.Equal(t, "sup@gym.test", AuditActor(ctx))

	actor, ok := ActorFromContext(ctx)
	assert.True(t, ok)
	assert.True(t, actor.HasRole(StaffRoles...))
	assert.False(t, actor.HasRole(RoleClient))
	assert.Equal(t, "Unknown", Actor{}.Name())
}
