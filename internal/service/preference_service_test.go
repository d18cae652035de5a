// internal/service/preference_service_test.go
package service

import (
	"context"
	"testing"

	"coursehub/internal/domain"
	"coursehub/internal/repository"
	"coursehub/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPreferenceRepository is a mock implementation of repository.PreferenceRepository.
type MockPreferenceRepository struct {
	mock.Mock
}

func (m *MockPreferenceRepository) CreatePreference(ctx context.Context, q repository.DBExecutor, preference *domain.Preference) (*domain.Preference, error) {
	args := m.Called(ctx, q, preference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Preference), args.Error(1)
}

func (m *MockPreferenceRepository) GetPreferenceByUserID(ctx context.Context, q repository.DBExecutor, userID int64) (*domain.Preference, error) {
	args := m.Called(ctx, q, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Preference), args.Error(1)
}

func (m *MockPreferenceRepository) UpdatePreferenceByUserID(ctx context.Context, q repository.DBExecutor, userID int64, document domain.PreferenceDocument) (*domain.Preference, error) {
	args := m.Called(ctx, q, userID, document)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Preference), args.Error(1)
}

func TestGetPreference(t *testing.T) {
	userID := int64(7)

	t.Run("ReturnsStoredRecord", func(t *testing.T) {
		ctx := context.Background()
		prefRepo := new(MockPreferenceRepository)

		document := domain.DefaultPreferenceDocument()
		document.General.Theme = "Dark"
		stored := &domain.Preference{ID: 3, UserID: userID, Document: document}
		prefRepo.On("GetPreferenceByUserID", ctx, mock.Anything, userID).Return(stored, nil).Once()

		svc := NewPreferenceService(new(MockDBExecutor), prefRepo)

		preference, err := svc.Get(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, "Dark", preference.Document.General.Theme)
	})

	t.Run("MissingRecordYieldsDefaults", func(t *testing.T) {
		ctx := context.Background()
		prefRepo := new(MockPreferenceRepository)
		prefRepo.On("GetPreferenceByUserID", ctx, mock.Anything, userID).Return(nil, util.ErrNotFound).Once()

		svc := NewPreferenceService(new(MockDBExecutor), prefRepo)

		preference, err := svc.Get(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, userID, preference.UserID)
		assert.Equal(t, domain.DefaultPreferenceDocument(), preference.Document)
	})
}

func TestUpdatePreference(t *testing.T) {
	ctx := context.Background()
	userID := int64(7)
	prefRepo := new(MockPreferenceRepository)

	document := domain.DefaultPreferenceDocument()
	document.Communication.EmailNotifications = false
	updated := &domain.Preference{ID: 3, UserID: userID, Document: document}
	prefRepo.On("UpdatePreferenceByUserID", ctx, mock.Anything, userID, document).Return(updated, nil).Once()

	svc := NewPreferenceService(new(MockDBExecutor), prefRepo)

	preference, err := svc.Update(ctx, userID, document)
	require.NoError(t, err)
	assert.False(t, preference.Document.Communication.EmailNotifications)
	prefRepo.AssertExpectations(t)
}
