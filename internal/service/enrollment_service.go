// internal/service/enrollment_service.go
package service

import (
	"context"
	"fmt"
	"log/slog"

	"coursehub/internal/domain"
	"coursehub/internal/eventbus"
	"coursehub/internal/events"
	"coursehub/internal/repository"
	"coursehub/internal/util"

	"github.com/shopspring/decimal"
)

// EnrollmentService orchestrates enrollment: it prices the course over the
// event bus, settles payment through the wallet ledger, then commits the
// enrollment record.
type EnrollmentService interface {
	// Enroll runs the pricing, payment and commit sequence for one
	// enrollment attempt. A failure at any step aborts the attempt leaving
	// no user-visible partial state: a debit taken before a failed commit is
	// refunded.
	Enroll(ctx context.Context, userID, courseID int64) (*domain.Enrollment, error)
	// Enrollments returns the user's enrollment record.
	Enrollments(ctx context.Context, userID int64) (*domain.Enrollment, error)
	// Unenroll removes a course from the user's enrollment.
	Unenroll(ctx context.Context, userID, courseID int64) (*domain.Enrollment, error)
}

type enrollmentService struct {
	bus         *eventbus.Bus
	wallets     WalletService
	dbExecutor  repository.DBExecutor
	enrollments repository.EnrollmentRepository
	logger      *slog.Logger
}

// NewEnrollmentService creates a new instance of EnrollmentService.
func NewEnrollmentService(
	bus *eventbus.Bus,
	wallets WalletService,
	dbExecutor repository.DBExecutor,
	enrollments repository.EnrollmentRepository,
	logger *slog.Logger,
) EnrollmentService {
	return &enrollmentService{
		bus:         bus,
		wallets:     wallets,
		dbExecutor:  dbExecutor,
		enrollments: enrollments,
		logger:      logger,
	}
}

// Enroll drives one enrollment attempt through pricing, payment and commit.
func (s *enrollmentService) Enroll(ctx context.Context, userID, courseID int64) (*domain.Enrollment, error) {
	// Pricing: ask the course module over the bus.
	priced, err := s.bus.Request(ctx, events.TopicCheckPricing, courseID)
	if err != nil {
		return nil, fmt.Errorf("enroll: pricing course %d: %w", courseID, err)
	}
	price, ok := priced.(decimal.Decimal)
	if !ok {
		return nil, fmt.Errorf("enroll: unexpected pricing reply %T for course %d", priced, courseID)
	}

	// Payment: free courses skip straight to the commit.
	paid := price.IsPositive()
	if paid {
		if _, _, err := s.wallets.DeductFunds(ctx, userID, price); err != nil {
			return nil, fmt.Errorf("enroll: payment for course %d: %w", courseID, err)
		}
	}

	// Commit: the course enters the enrolled set exactly once.
	enrollment, err := s.enrollments.AddCourse(ctx, s.dbExecutor, userID, courseID)
	if err != nil {
		if paid {
			s.refund(ctx, userID, courseID, price)
		}
		return nil, fmt.Errorf("enroll: commit for course %d: %w", courseID, err)
	}
	return enrollment, nil
}

// refund compensates a debit whose enrollment commit failed. A refund failure
// leaves the money in the ledger's debit record; both errors are logged so an
// operator can reconcile.
func (s *enrollmentService) refund(ctx context.Context, userID, courseID int64, price decimal.Decimal) {
	if _, _, err := s.wallets.AddFunds(ctx, userID, price); err != nil {
		s.logger.Error("compensating credit failed after enrollment commit failure",
			"user_id", userID, "course_id", courseID, "amount", price.String(), "error", err)
	}
}

// Enrollments returns the user's enrollment record. A user who never
// enrolled gets an empty set, not an error.
func (s *enrollmentService) Enrollments(ctx context.Context, userID int64) (*domain.Enrollment, error) {
	enrollment, err := s.enrollments.GetEnrollmentByUserID(ctx, s.dbExecutor, userID)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return &domain.Enrollment{UserID: userID, Courses: []int64{}}, nil
		}
		return nil, fmt.Errorf("enrollments: user %d: %w", userID, err)
	}
	return enrollment, nil
}

// Unenroll removes a course from the user's enrollment.
func (s *enrollmentService) Unenroll(ctx context.Context, userID, courseID int64) (*domain.Enrollment, error) {
	enrollment, err := s.enrollments.RemoveCourse(ctx, s.dbExecutor, userID, courseID)
	if err != nil {
		return nil, fmt.Errorf("unenroll: user %d course %d: %w", userID, courseID, err)
	}
	return enrollment, nil
}
