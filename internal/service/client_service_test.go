package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"alcyxob/gym-management/internal/domain"
	"alcyxob/gym-management/internal/repository"
	"alcyxob/gym-management/internal/repository/mocks"
	"alcyxob/gym-management/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// pinClock fixes the service clock for the duration of a test.
func pinClock(t *testing.T, at time.Time) {
	t.Helper()
	prev := now
	now = func() time.Time { return at }
	t.Cleanup(func() { now = prev })
}

type clientFixture struct {
	clients *mocks.ClientRepository
	lookups *mocks.LookupRepository
	files   *mocks.FileStorage
	svc     ClientService
	gold    *domain.MembershipType
}

func newClientFixture(t *testing.T) *clientFixture {
	pinClock(t, time.Date(2025, time.June, 15, 10, 0, 0, 0, time.UTC))
	f := &clientFixture{
		clients: new(mocks.ClientRepository),
		lookups: new(mocks.LookupRepository),
		files:   new(mocks.FileStorage),
		gold:    &domain.MembershipType{ID: primitive.NewObjectID(), Type: "Gold", StandardFee: 250},
	}
	f.svc = NewClientService(f.clients, f.lookups, f.files, FileOptions{URLExpiry: time.Minute, MaxUploadBytes: 1 << 20})
	f.lookups.On("MembershipType", mock.Anything, f.gold.ID).Return(f.gold, nil).Maybe()
	return f
}

func (f *clientFixture) validInput() ClientInput {
	return ClientInput{
		MembershipNumber:    12345,
		FirstName:           "Fred",
		MiddleName:          "Flint",
		LastName:            "Flintstone",
		Phone:               "9055551234",
		Email:               "Fred@Rocks.com",
		DOB:                 time.Date(1990, time.May, 1, 0, 0, 0, 0, time.UTC),
		PostalCode:          "l3c7t1",
		HealthCondition:     "None",
		MembershipStartDate: time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		MembershipEndDate:   time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC),
		MembershipFee:       200,
		MembershipTypeID:    f.gold.ID,
	}
}

func TestClientService_Create(t *testing.T) {
	f := newClientFixture(t)
	newID := primitive.NewObjectID()
	f.clients.On("Create", mock.Anything, mock.MatchedBy(func(c *domain.Client) bool {
		return c.Email == "fred@rocks.com" && c.PostalCode == "L3C 7T1"
	})).Return(newID, nil)

	d, err := f.svc.Create(context.Background(), staff, f.validInput())
	require.NoError(t, err)
	assert.Equal(t, newID, d.ID)
	assert.Equal(t, "Fred F. Flintstone - Gold Mem.", d.Summary)
	assert.Equal(t, 35, d.Age)
	assert.Equal(t, "(905) 555-1234", d.PhoneFormatted)
	assert.Equal(t, "Exp. in 6 Months, 16 Days", d.MembershipStatus)
	assert.Equal(t, "Note that the fee does not match the standard fee of: $250.00", d.FeeNote)
}

func TestClientService_CreateDuplicateMembershipNumber(t *testing.T) {
	f := newClientFixture(t)
	f.clients.On("Create", mock.Anything, mock.Anything).Return(primitive.NilObjectID, repository.ErrDuplicateKey)

	_, err := f.svc.Create(context.Background(), staff, f.validInput())

	var cerr *ConstraintError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "MembershipNumber", cerr.Field)
	assert.Equal(t, "Unable to save changes. Remember, you cannot have duplicate Membership Numbers.", cerr.Message)
}

func TestClientService_Validation(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*ClientInput)
		field string
		msg   string
	}{
		{"membership number range", func(in *ClientInput) { in.MembershipNumber = 9999 }, "MembershipNumber", "The membership number must be between 10,000 and 99,999."},
		{"too young", func(in *ClientInput) { in.DOB = time.Date(2010, time.January, 1, 0, 0, 0, 0, time.UTC) }, "DOB", "Client must be at least 16 years old."},
		{"too old", func(in *ClientInput) { in.DOB = time.Date(1920, time.January, 1, 0, 0, 0, 0, time.UTC) }, "DOB", "Client cannot be over 100 years old."},
		{"end before start", func(in *ClientInput) { in.MembershipEndDate = time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC) }, "MembershipEndDate", "Membership end date cannot be earlier than the start date."},
		{"end too far out", func(in *ClientInput) { in.MembershipEndDate = time.Date(2031, time.January, 1, 0, 0, 0, 0, time.UTC) }, "MembershipEndDate", "Membership end date cannot be more than 5 years in the future."},
		{"phone", func(in *ClientInput) { in.Phone = "905-555-1234" }, "Phone", msgPhone},
		{"email", func(in *ClientInput) { in.Email = "fred" }, "Email", msgEmail},
		{"postal code", func(in *ClientInput) { in.PostalCode = "90210" }, "PostalCode", "Invalid postal code."},
		{"health condition", func(in *ClientInput) { in.HealthCondition = " " }, "HealthCondition", "You must enter comments about the client's health condition."},
		{"membership type", func(in *ClientInput) { in.MembershipTypeID = primitive.NilObjectID }, "MembershipTypeID", "You must select the membership type."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newClientFixture(t)
			in := f.validInput()
			tt.edit(&in)

			_, err := f.svc.Create(context.Background(), staff, in)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.msg, verr.FieldErrors[tt.field])
			f.clients.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestClientService_UpdateLostRaceShowsCurrentValues(t *testing.T) {
	f := newClientFixture(t)
	id := primitive.NewObjectID()
	silver := &domain.MembershipType{ID: primitive.NewObjectID(), Type: "Silver", StandardFee: 150}
	f.lookups.On("MembershipType", mock.Anything, silver.ID).Return(silver, nil)

	in := f.validInput()
	in.RowVersion = "v1"
	in.Phone = "9055550000"

	f.clients.On("GetByID", mock.Anything, id).Return(&domain.Client{ID: id, MembershipTypeID: f.gold.ID}, nil).Once()
	f.clients.On("UpdateIfVersion", mock.Anything, mock.Anything, "v1").Return(repository.ErrVersionMismatch)

	current := &domain.Client{}
	current.ID = id
	current.MembershipNumber = in.MembershipNumber
	current.FirstName, current.MiddleName, current.LastName = "Fred", "Flint", "Flintstone"
	current.Phone = "9055551234"
	current.Email = "fred@rocks.com"
	current.DOB = in.DOB
	current.PostalCode = "L3C 7T1"
	current.HealthCondition = in.HealthCondition
	current.MembershipStartDate = in.MembershipStartDate
	current.MembershipEndDate = in.MembershipEndDate
	current.MembershipFee = 175.5
	current.MembershipTypeID = silver.ID
	current.RowVersion = "v2"
	f.clients.On("GetByID", mock.Anything, id).Return(current, nil).Once()

	_, err := f.svc.Update(context.Background(), staff, id, in)

	var cerr *ConcurrencyError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, map[string]string{
		"Phone":            "Current value: (905) 555-1234",
		"MembershipFee":    "Current value: $175.50",
		"MembershipTypeID": "Current value: Silver (Std. Fee: $150.00)",
	}, cerr.Diff.FieldErrors())
	assert.Equal(t, "v2", cerr.Diff.CurrentVersion)
}

func TestClientService_DeleteEnrolledClient(t *testing.T) {
	f := newClientFixture(t)
	id := primitive.NewObjectID()
	f.clients.On("GetByID", mock.Anything, id).Return(&domain.Client{ID: id}, nil)
	f.clients.On("Delete", mock.Anything, id).Return(repository.ErrReferenced)

	err := f.svc.Delete(context.Background(), admin, id)

	var cerr *ConstraintError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "Unable to Delete Client. Remember, you cannot delete a Client that is enrolled in any Group Classes.", cerr.Message)
}

func TestClientService_DeleteRemovesPhoto(t *testing.T) {
	f := newClientFixture(t)
	id := primitive.NewObjectID()
	photo := &domain.StoredFile{ObjectKey: "client-photos/" + id.Hex() + "/a.jpg"}
	f.clients.On("GetByID", mock.Anything, id).Return(&domain.Client{ID: id, Photo: photo, Audit: domain.Audit{CreatedBy: supervisor.Email}}, nil)
	f.clients.On("Delete", mock.Anything, id).Return(nil)
	f.files.On("DeleteObject", mock.Anything, photo.ObjectKey).Return(nil)

	require.NoError(t, f.svc.Delete(context.Background(), supervisor, id))
	f.files.AssertExpectations(t)
}

func TestClientService_ClientLoginScopedToSelf(t *testing.T) {
	f := newClientFixture(t)
	actor := domain.Actor{Email: "fred@rocks.com", Role: domain.RoleClient}
	page := repository.Page{Page: 1, Size: 10}

	f.clients.On("List", mock.Anything, repository.ClientFilter{Search: "w", Email: "fred@rocks.com"}, page).
		Return([]domain.Client{}, int64(0), nil)
	f.lookups.On("MembershipTypes", mock.Anything).Return([]domain.MembershipType{*f.gold}, nil)

	paged, err := f.svc.List(context.Background(), actor, repository.ClientFilter{Search: "w"}, page)
	require.NoError(t, err)
	assert.Empty(t, paged.Items)
	f.clients.AssertExpectations(t)

	other := primitive.NewObjectID()
	f.clients.On("GetByEmail", mock.Anything, "fred@rocks.com").Return(&domain.Client{ID: primitive.NewObjectID()}, nil)
	_, err = f.svc.Get(context.Background(), actor, other)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestClientService_PhotoUpload(t *testing.T) {
	f := newClientFixture(t)
	id := primitive.NewObjectID()
	oldKey := "client-photos/" + id.Hex() + "/old.png"
	f.clients.On("GetByID", mock.Anything, id).Return(&domain.Client{ID: id, Photo: &domain.StoredFile{ObjectKey: oldKey}}, nil)

	t.Run("rejects non images", func(t *testing.T) {
		_, err := f.svc.RequestPhotoUpload(context.Background(), staff, id, "cv.pdf", "application/pdf")
		var verr *ValidationError
		assert.ErrorAs(t, err, &verr)
	})

	t.Run("issues a key under the client", func(t *testing.T) {
		f.files.On("GeneratePresignedUploadURL", mock.Anything, mock.Anything, "image/jpeg", time.Minute).
			Return("https://s3/upload", nil).Once()

		resp, err := f.svc.RequestPhotoUpload(context.Background(), staff, id, "Me.JPG", "image/jpeg")
		require.NoError(t, err)
		assert.Equal(t, "https://s3/upload", resp.UploadURL)
		assert.True(t, storage.OwnsKey(resp.ObjectKey, storage.ClientPhotoPrefix, id.Hex()))
		assert.Regexp(t, `\.jpg$`, resp.ObjectKey)
	})

	t.Run("refuses a key issued to someone else", func(t *testing.T) {
		foreign := "client-photos/" + primitive.NewObjectID().Hex() + "/x.jpg"
		_, err := f.svc.ConfirmPhoto(context.Background(), staff, id, foreign, "x.jpg")
		assert.ErrorIs(t, err, ErrInvalidUpload)
	})

	t.Run("refuses a missing object", func(t *testing.T) {
		key := "client-photos/" + id.Hex() + "/missing.jpg"
		f.files.On("StatObject", mock.Anything, key).Return(nil, storage.ErrObjectNotFound).Once()
		_, err := f.svc.ConfirmPhoto(context.Background(), staff, id, key, "missing.jpg")
		assert.ErrorIs(t, err, ErrInvalidUpload)
	})

	t.Run("refuses an oversized object and deletes it", func(t *testing.T) {
		key := "client-photos/" + id.Hex() + "/big.jpg"
		f.files.On("StatObject", mock.Anything, key).Return(&storage.ObjectMetadata{Size: 2 << 20, ContentType: "image/jpeg"}, nil).Once()
		f.files.On("DeleteObject", mock.Anything, key).Return(nil).Once()
		_, err := f.svc.ConfirmPhoto(context.Background(), staff, id, key, "big.jpg")
		assert.ErrorIs(t, err, ErrInvalidUpload)
	})

	t.Run("replaces the previous photo", func(t *testing.T) {
		key := "client-photos/" + id.Hex() + "/new.jpg"
		f.files.On("StatObject", mock.Anything, key).Return(&storage.ObjectMetadata{Size: 2048, ContentType: "image/jpeg"}, nil).Once()
		f.clients.On("SetPhoto", mock.Anything, id, mock.MatchedBy(func(p *domain.StoredFile) bool {
			return p.ObjectKey == key && p.Size == 2048 && p.FileName == "new.jpg"
		})).Return(nil).Once()
		f.files.On("DeleteObject", mock.Anything, oldKey).Return(errors.New("s3 down")).Once()

		photo, err := f.svc.ConfirmPhoto(context.Background(), staff, id, key, "new.jpg")
		require.NoError(t, err)
		assert.Equal(t, "image/jpeg", photo.ContentType)
	})

	f.files.AssertExpectations(t)
	f.clients.AssertExpectations(t)
}

func TestFeeNote(t *testing.T) {
	gold := &domain.MembershipType{Type: "Gold", StandardFee: 1250.5}
	assert.Equal(t, "", FeeNote(&domain.Client{MembershipFee: 1250.5}, gold))
	assert.Equal(t, "", FeeNote(&domain.Client{MembershipFee: 10, FeePaid: true}, gold))
	assert.Equal(t, "", FeeNote(&domain.Client{MembershipFee: 10}, nil))
	assert.Equal(t, "Note that the fee does not match the standard fee of: $1,250.50", FeeNote(&domain.Client{MembershipFee: 10}, gold))
}
