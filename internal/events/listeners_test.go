// internal/events/listeners_test.go
package events

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"coursehub/internal/domain"
	"coursehub/internal/eventbus"
	"coursehub/internal/repository"
	"coursehub/internal/util"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testBus() *eventbus.Bus {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return eventbus.New(eventbus.LogReporter{Logger: logger})
}

// MockPermissionRepository is a mock implementation of repository.PermissionRepository.
type MockPermissionRepository struct {
	mock.Mock
}

func (m *MockPermissionRepository) CreatePermission(ctx context.Context, q repository.DBExecutor, permission *domain.Permission) (*domain.Permission, error) {
	args := m.Called(ctx, q, permission)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Permission), args.Error(1)
}

func (m *MockPermissionRepository) GetPermissionByEmail(ctx context.Context, q repository.DBExecutor, email string) (*domain.Permission, error) {
	args := m.Called(ctx, q, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Permission), args.Error(1)
}

func (m *MockPermissionRepository) UpdatePermissionsByUserID(ctx context.Context, q repository.DBExecutor, userID int64, permissions domain.PermissionSet) (*domain.Permission, error) {
	args := m.Called(ctx, q, userID, permissions)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Permission), args.Error(1)
}

func (m *MockPermissionRepository) DeletePermissionByUserID(ctx context.Context, q repository.DBExecutor, userID int64) error {
	args := m.Called(ctx, q, userID)
	return args.Error(0)
}

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

// MockCourseRepository is a mock implementation of repository.CourseRepository.
type MockCourseRepository struct {
	mock.Mock
}

func (m *MockCourseRepository) CreateCourse(ctx context.Context, q repository.DBExecutor, course *domain.Course) error {
	args := m.Called(ctx, q, course)
	return args.Error(0)
}

func (m *MockCourseRepository) GetCourseByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Course, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Course), args.Error(1)
}

func (m *MockCourseRepository) ListCourses(ctx context.Context, q repository.DBExecutor, limit, offset int) ([]domain.Course, error) {
	args := m.Called(ctx, q, limit, offset)
	return args.Get(0).([]domain.Course), args.Error(1)
}

func (m *MockCourseRepository) UpdateCourse(ctx context.Context, q repository.DBExecutor, course *domain.Course) error {
	args := m.Called(ctx, q, course)
	return args.Error(0)
}

func (m *MockCourseRepository) DeleteCourse(ctx context.Context, q repository.DBExecutor, id int64) error {
	args := m.Called(ctx, q, id)
	return args.Error(0)
}

func (m *MockCourseRepository) CreateLesson(ctx context.Context, q repository.DBExecutor, lesson *domain.Lesson) error {
	args := m.Called(ctx, q, lesson)
	return args.Error(0)
}

func (m *MockCourseRepository) GetLessonByID(ctx context.Context, q repository.DBExecutor, courseID, lessonID int64) (*domain.Lesson, error) {
	args := m.Called(ctx, q, courseID, lessonID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Lesson), args.Error(1)
}

func (m *MockCourseRepository) ListLessonsByCourseID(ctx context.Context, q repository.DBExecutor, courseID int64) ([]domain.Lesson, error) {
	args := m.Called(ctx, q, courseID)
	return args.Get(0).([]domain.Lesson), args.Error(1)
}

func (m *MockCourseRepository) UpdateLesson(ctx context.Context, q repository.DBExecutor, lesson *domain.Lesson) error {
	args := m.Called(ctx, q, lesson)
	return args.Error(0)
}

func (m *MockCourseRepository) DeleteLesson(ctx context.Context, q repository.DBExecutor, courseID, lessonID int64) error {
	args := m.Called(ctx, q, courseID, lessonID)
	return args.Error(0)
}

// MockActivityRepository is a mock implementation of repository.ActivityRepository.
type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) CreateActivity(ctx context.Context, q repository.DBExecutor, activity *domain.Activity) error {
	args := m.Called(ctx, q, activity)
	return args.Error(0)
}

func (m *MockActivityRepository) GetActivitiesByUserID(ctx context.Context, q repository.DBExecutor, userID int64) ([]domain.Activity, error) {
	args := m.Called(ctx, q, userID)
	return args.Get(0).([]domain.Activity), args.Error(1)
}

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, q repository.DBExecutor, user *domain.User) error {
	args := m.Called(ctx, q, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.User, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByEmail(ctx context.Context, q repository.DBExecutor, email string) (*domain.User, error) {
	args := m.Called(ctx, q, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// stubProvisioner records wallet provisioning calls.
type stubProvisioner struct {
	mu    sync.Mutex
	calls []int64
}

func (s *stubProvisioner) GetOrCreateWallet(ctx context.Context, userID int64, currency string) (*domain.Wallet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, userID)
	return &domain.Wallet{UserID: userID, Currency: currency, Balance: decimal.Zero}, nil
}

func (s *stubProvisioner) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func TestUserCreatedFanOut(t *testing.T) {
	bus := testBus()
	user := &domain.User{ID: 7, Name: "Ada", Email: "ada@example.com"}

	permRepo := new(MockPermissionRepository)
	prefRepo := new(MockPreferenceRepository)
	provisioner := &stubProvisioner{}

	var permMu sync.Mutex
	var createdPerm *domain.Permission
	permRepo.On("CreatePermission", mock.Anything, mock.Anything, mock.AnythingOfType("*domain.Permission")).
		Run(func(args mock.Arguments) {
			permMu.Lock()
			defer permMu.Unlock()
			createdPerm = args.Get(2).(*domain.Permission)
		}).
		Return(&domain.Permission{UserID: user.ID, Email: user.Email}, nil).Once()

	var prefMu sync.Mutex
	var createdPref *domain.Preference
	prefRepo.On("CreatePreference", mock.Anything, mock.Anything, mock.AnythingOfType("*domain.Preference")).
		Run(func(args mock.Arguments) {
			prefMu.Lock()
			defer prefMu.Unlock()
			createdPref = args.Get(2).(*domain.Preference)
		}).
		Return(&domain.Preference{UserID: user.ID}, nil).Once()

	NewPermissionListener(nil, permRepo).Register(bus)
	NewPreferenceListener(nil, prefRepo).Register(bus)
	NewWalletListener(provisioner).Register(bus)

	bus.Publish(context.Background(), TopicUserCreated, NewUserCreated(user))

	require.Eventually(t, func() bool {
		permMu.Lock()
		permDone := createdPerm != nil
		permMu.Unlock()
		prefMu.Lock()
		prefDone := createdPref != nil
		prefMu.Unlock()
		return permDone && prefDone && provisioner.callCount() == 1
	}, time.Second, 5*time.Millisecond)

	permMu.Lock()
	assert.Equal(t, user.ID, createdPerm.UserID)
	assert.Equal(t, user.Email, createdPerm.Email)
	assert.Equal(t, domain.DefaultPermissions(), createdPerm.Permissions)
	permMu.Unlock()

	prefMu.Lock()
	assert.Equal(t, user.ID, createdPref.UserID)
	assert.Equal(t, domain.DefaultPreferenceDocument(), createdPref.Document)
	prefMu.Unlock()

	assert.Equal(t, []int64{user.ID}, provisioner.calls)
}

// The activity listener shares the bus with the userCreated fan-out; each
// topic reaches its own consumers and nothing else.
func TestCreateActivityAppended(t *testing.T) {
	bus := testBus()
	activityRepo := new(MockActivityRepository)
	provisioner := &stubProvisioner{}

	var actMu sync.Mutex
	var appended *domain.Activity
	activityRepo.On("CreateActivity", mock.Anything, mock.Anything, mock.AnythingOfType("*domain.Activity")).
		Run(func(args mock.Arguments) {
			actMu.Lock()
			defer actMu.Unlock()
			appended = args.Get(2).(*domain.Activity)
		}).
		Return(nil).Once()

	NewActivityListener(nil, activityRepo).Register(bus)
	NewWalletListener(provisioner).Register(bus)

	detail := domain.ActivityDetail{"course_id": "42", "user_agent": "go-test"}
	bus.Publish(context.Background(), TopicCreateActivity, NewActivityRecorded(7, "course-creation", detail))

	require.Eventually(t, func() bool {
		actMu.Lock()
		defer actMu.Unlock()
		return appended != nil
	}, time.Second, 5*time.Millisecond)

	actMu.Lock()
	assert.Equal(t, int64(7), appended.UserID)
	assert.Equal(t, "course-creation", appended.Event)
	assert.Equal(t, detail, appended.Detail)
	actMu.Unlock()

	// The wallet listener is not subscribed to createActivity.
	assert.Equal(t, 0, provisioner.callCount())
}

func TestGetUserByEmailReply(t *testing.T) {
	bus := testBus()
	userRepo := new(MockUserRepository)
	user := &domain.User{ID: 7, Name: "Ada", Email: "ada@example.com"}

	userRepo.On("GetUserByEmail", mock.Anything, mock.Anything, user.Email).Return(user, nil).Once()
	NewUserListener(nil, userRepo).Register(bus)

	result, err := bus.Request(context.Background(), TopicGetUserByEmail, user.Email)

	require.NoError(t, err)
	assert.Equal(t, user, result)
}

func TestGetPermissionsReply(t *testing.T) {
	bus := testBus()
	permRepo := new(MockPermissionRepository)
	NewPermissionListener(nil, permRepo).Register(bus)

	t.Run("Found", func(t *testing.T) {
		perm := &domain.Permission{UserID: 7, Email: "ada@example.com", Permissions: domain.DefaultPermissions()}
		permRepo.On("GetPermissionByEmail", mock.Anything, mock.Anything, perm.Email).Return(perm, nil).Once()

		result, err := bus.Request(context.Background(), TopicGetPermissions, perm.Email)

		require.NoError(t, err)
		assert.Equal(t, perm, result)
	})

	t.Run("Missing", func(t *testing.T) {
		permRepo.On("GetPermissionByEmail", mock.Anything, mock.Anything, "ghost@example.com").Return(nil, util.ErrNotFound).Once()

		result, err := bus.Request(context.Background(), TopicGetPermissions, "ghost@example.com")

		assert.Nil(t, result)
		assert.ErrorIs(t, err, util.ErrPermissionNotFound)
	})
}

func TestCourseReplies(t *testing.T) {
	bus := testBus()
	courseRepo := new(MockCourseRepository)
	NewCourseListener(nil, courseRepo).Register(bus)

	course := &domain.Course{ID: 42, Title: "Go Basics", Price: decimal.NewFromInt(50)}

	t.Run("GetCourse", func(t *testing.T) {
		courseRepo.On("GetCourseByID", mock.Anything, mock.Anything, course.ID).Return(course, nil).Once()

		result, err := bus.Request(context.Background(), TopicGetCourse, course.ID)

		require.NoError(t, err)
		assert.Equal(t, course, result)
	})

	t.Run("CheckPricing", func(t *testing.T) {
		courseRepo.On("GetCourseByID", mock.Anything, mock.Anything, course.ID).Return(course, nil).Once()

		result, err := bus.Request(context.Background(), TopicCheckPricing, course.ID)

		require.NoError(t, err)
		price, ok := result.(decimal.Decimal)
		require.True(t, ok)
		assert.True(t, course.Price.Equal(price))
	})

	t.Run("UnknownCourse", func(t *testing.T) {
		courseRepo.On("GetCourseByID", mock.Anything, mock.Anything, int64(999)).Return(nil, util.ErrNotFound).Once()

		result, err := bus.Request(context.Background(), TopicCheckPricing, int64(999))

		assert.Nil(t, result)
		assert.ErrorIs(t, err, util.ErrCourseNotFound)
	})
}
