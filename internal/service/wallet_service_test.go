// internal/service/wallet_service_test.go
package service

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"testing"

	"coursehub/internal/domain"
	"coursehub/internal/repository"
	"coursehub/internal/util"
	"coursehub/pkg/db"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockDBExecutor is a mock implementation of repository.DBExecutor.
type MockDBExecutor struct {
	mock.Mock
}

func (m *MockDBExecutor) GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	argsCalled := m.Called(ctx, dest, query, args)
	return argsCalled.Error(0)
}

func (m *MockDBExecutor) SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	argsCalled := m.Called(ctx, dest, query, args)
	return argsCalled.Error(0)
}

func (m *MockDBExecutor) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	argsCalled := m.Called(ctx, query, args)
	return argsCalled.Get(0).(sql.Result), argsCalled.Error(1)
}

func (m *MockDBExecutor) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	m.Called(ctx, query, args)
	return &sql.Row{}
}

// MockWalletRepository is a mock implementation of repository.WalletRepository.
type MockWalletRepository struct {
	mock.Mock
}

func (m *MockWalletRepository) CreateWallet(ctx context.Context, q repository.DBExecutor, wallet *domain.Wallet) error {
	args := m.Called(ctx, q, wallet)
	return args.Error(0)
}

func (m *MockWalletRepository) GetWalletByUserID(ctx context.Context, q repository.DBExecutor, userID int64) (*domain.Wallet, error) {
	args := m.Called(ctx, q, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) CreditBalance(ctx context.Context, q repository.DBExecutor, walletID int64, amount decimal.Decimal) error {
	args := m.Called(ctx, q, walletID, amount)
	return args.Error(0)
}

func (m *MockWalletRepository) DebitBalance(ctx context.Context, q repository.DBExecutor, walletID int64, amount decimal.Decimal) error {
	args := m.Called(ctx, q, walletID, amount)
	return args.Error(0)
}

// MockTransactionRepository is a mock implementation of repository.TransactionRepository.
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) CreateTransaction(ctx context.Context, q repository.DBExecutor, transaction *domain.Transaction) error {
	args := m.Called(ctx, q, transaction)
	return args.Error(0)
}

func (m *MockTransactionRepository) GetTransactionsByWalletID(ctx context.Context, q repository.DBExecutor, walletID int64, limit, offset int, newestFirst bool) ([]domain.Transaction, int64, error) {
	args := m.Called(ctx, q, walletID, limit, offset, newestFirst)
	return args.Get(0).([]domain.Transaction), args.Get(1).(int64), args.Error(2)
}

// MockDBBeginner is a mock implementation of db.DBTxBeginner.
type MockDBBeginner struct {
	mock.Mock
}

func (m *MockDBBeginner) BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error) {
	args := m.Called(ctx, opts)
	return &sqlx.Tx{}, args.Error(1)
}

// MockTxController mocks db.TxController and, via the embedded executor,
// repository.DBExecutor.
type MockTxController struct {
	mock.Mock
	MockDBExecutor
}

func (m *MockTxController) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockTxController) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// walletServiceFixture wires a WalletService onto fresh mocks.
type walletServiceFixture struct {
	service         WalletService
	walletRepo      *MockWalletRepository
	transactionRepo *MockTransactionRepository
	dbBeginner      *MockDBBeginner
	dbExecutor      *MockDBExecutor
	txController    *MockTxController
}

func newWalletServiceFixture() *walletServiceFixture {
	f := &walletServiceFixture{
		walletRepo:      new(MockWalletRepository),
		transactionRepo: new(MockTransactionRepository),
		dbBeginner:      new(MockDBBeginner),
		dbExecutor:      new(MockDBExecutor),
		txController:    new(MockTxController),
	}
	f.service = NewWalletService(
		f.dbBeginner,
		f.dbExecutor,
		f.walletRepo,
		f.transactionRepo,
		func(ctx context.Context, dbConn db.DBTxBeginner) (db.TxController, error) {
			return f.txController, nil
		},
		func(tx db.TxController) error {
			return f.txController.Commit()
		},
		func(tx db.TxController) {
			_ = f.txController.Rollback()
		},
		nil, // cache disabled
		testLogger(),
	)
	return f
}

func (f *walletServiceFixture) assertAll(t *testing.T) {
	mock.AssertExpectationsForObjects(t, f.walletRepo, f.transactionRepo, f.dbBeginner, f.dbExecutor, f.txController)
}

func TestAddFunds(t *testing.T) {
	userID := int64(7)
	amount := decimal.NewFromInt(100)

	t.Run("SuccessfulTopUp", func(t *testing.T) {
		ctx := context.Background()
		f := newWalletServiceFixture()

		initialWallet := &domain.Wallet{ID: 1, UserID: userID, Currency: "NGN", Balance: decimal.Zero}
		updatedWallet := &domain.Wallet{ID: 1, UserID: userID, Currency: "NGN", Balance: amount}

		f.txController.On("Commit").Return(nil).Once()
		f.txController.On("Rollback").Return(nil).Maybe()
		f.walletRepo.On("GetWalletByUserID", ctx, mock.Anything, userID).Return(initialWallet, nil).Once()
		f.walletRepo.On("CreditBalance", ctx, mock.Anything, initialWallet.ID, amount).Return(nil).Once()
		f.transactionRepo.On("CreateTransaction", ctx, mock.Anything, mock.AnythingOfType("*domain.Transaction")).Return(nil).Once()
		f.walletRepo.On("GetWalletByUserID", ctx, mock.Anything, userID).Return(updatedWallet, nil).Once()

		resWallet, resTx, err := f.service.AddFunds(ctx, userID, amount)

		assert.NoError(t, err)
		assert.True(t, amount.Equal(resWallet.Balance))
		assert.Equal(t, domain.TransactionKindTopUp, resTx.Kind)
		assert.True(t, amount.Equal(resTx.Amount))
		f.assertAll(t)
	})

	t.Run("RejectsNonPositiveAmount", func(t *testing.T) {
		ctx := context.Background()
		f := newWalletServiceFixture()

		for _, bad := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-5)} {
			resWallet, resTx, err := f.service.AddFunds(ctx, userID, bad)
			assert.ErrorIs(t, err, util.ErrInvalidAmount)
			assert.Nil(t, resWallet)
			assert.Nil(t, resTx)
		}

		f.txController.AssertNotCalled(t, "Commit")
		f.assertAll(t)
	})

	t.Run("WalletNotFound", func(t *testing.T) {
		ctx := context.Background()
		f := newWalletServiceFixture()

		f.walletRepo.On("GetWalletByUserID", ctx, mock.Anything, userID).Return(nil, util.ErrNotFound).Once()
		f.txController.On("Rollback").Return(nil).Once()

		resWallet, resTx, err := f.service.AddFunds(ctx, userID, amount)

		assert.ErrorIs(t, err, util.ErrWalletNotFound)
		assert.Nil(t, resWallet)
		assert.Nil(t, resTx)
		f.txController.AssertNotCalled(t, "Commit")
		f.assertAll(t)
	})

	t.Run("LedgerAppendFailureAbortsCredit", func(t *testing.T) {
		ctx := context.Background()
		f := newWalletServiceFixture()

		wallet := &domain.Wallet{ID: 1, UserID: userID, Currency: "NGN", Balance: decimal.Zero}

		f.walletRepo.On("GetWalletByUserID", ctx, mock.Anything, userID).Return(wallet, nil).Once()
		f.walletRepo.On("CreditBalance", ctx, mock.Anything, wallet.ID, amount).Return(nil).Once()
		f.transactionRepo.On("CreateTransaction", ctx, mock.Anything, mock.AnythingOfType("*domain.Transaction")).Return(errors.New("db error")).Once()
		f.txController.On("Rollback").Return(nil).Once()

		resWallet, resTx, err := f.service.AddFunds(ctx, userID, amount)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to append transaction record")
		assert.Nil(t, resWallet)
		assert.Nil(t, resTx)
		f.txController.AssertNotCalled(t, "Commit")
		f.assertAll(t)
	})
}

func TestDeductFunds(t *testing.T) {
	userID := int64(7)

	t.Run("SuccessfulDebit", func(t *testing.T) {
		ctx := context.Background()
		f := newWalletServiceFixture()
		amount := decimal.NewFromInt(40)

		initialWallet := &domain.Wallet{ID: 1, UserID: userID, Currency: "NGN", Balance: decimal.NewFromInt(100)}
		updatedWallet := &domain.Wallet{ID: 1, UserID: userID, Currency: "NGN", Balance: decimal.NewFromInt(60)}

		f.txController.On("Commit").Return(nil).Once()
		f.txController.On("Rollback").Return(nil).Maybe()
		f.walletRepo.On("GetWalletByUserID", ctx, mock.Anything, userID).Return(initialWallet, nil).Once()
		f.walletRepo.On("DebitBalance", ctx, mock.Anything, initialWallet.ID, amount).Return(nil).Once()
		f.transactionRepo.On("CreateTransaction", ctx, mock.Anything, mock.AnythingOfType("*domain.Transaction")).Return(nil).Once()
		f.walletRepo.On("GetWalletByUserID", ctx, mock.Anything, userID).Return(updatedWallet, nil).Once()

		resWallet, resTx, err := f.service.DeductFunds(ctx, userID, amount)

		assert.NoError(t, err)
		assert.True(t, decimal.NewFromInt(60).Equal(resWallet.Balance))
		assert.Equal(t, domain.TransactionKindDebit, resTx.Kind)
		f.assertAll(t)
	})

	t.Run("InsufficientFunds", func(t *testing.T) {
		ctx := context.Background()
		f := newWalletServiceFixture()
		amount := decimal.NewFromInt(150)

		wallet := &domain.Wallet{ID: 1, UserID: userID, Currency: "NGN", Balance: decimal.NewFromInt(100)}

		f.walletRepo.On("GetWalletByUserID", ctx, mock.Anything, userID).Return(wallet, nil).Once()
		f.txController.On("Rollback").Return(nil).Once()

		resWallet, resTx, err := f.service.DeductFunds(ctx, userID, amount)

		assert.ErrorIs(t, err, util.ErrInsufficientFunds)
		assert.Nil(t, resWallet)
		assert.Nil(t, resTx)
		// Neither the balance nor the ledger may change on a refused debit.
		f.walletRepo.AssertNotCalled(t, "DebitBalance", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		f.transactionRepo.AssertNotCalled(t, "CreateTransaction", mock.Anything, mock.Anything, mock.Anything)
		f.txController.AssertNotCalled(t, "Commit")
		f.assertAll(t)
	})

	t.Run("ConcurrentDebitLosesRace", func(t *testing.T) {
		// The fast-path balance check passed but the conditional update found
		// the balance already spent by a sibling debit.
		ctx := context.Background()
		f := newWalletServiceFixture()
		amount := decimal.NewFromInt(80)

		wallet := &domain.Wallet{ID: 1, UserID: userID, Currency: "NGN", Balance: decimal.NewFromInt(100)}

		f.walletRepo.On("GetWalletByUserID", ctx, mock.Anything, userID).Return(wallet, nil).Once()
		f.walletRepo.On("DebitBalance", ctx, mock.Anything, wallet.ID, amount).Return(util.ErrInsufficientFunds).Once()
		f.txController.On("Rollback").Return(nil).Once()

		_, _, err := f.service.DeductFunds(ctx, userID, amount)

		assert.ErrorIs(t, err, util.ErrInsufficientFunds)
		f.transactionRepo.AssertNotCalled(t, "CreateTransaction", mock.Anything, mock.Anything, mock.Anything)
		f.txController.AssertNotCalled(t, "Commit")
		f.assertAll(t)
	})
}

func TestGetOrCreateWallet(t *testing.T) {
	userID := int64(7)

	t.Run("ReturnsExistingWallet", func(t *testing.T) {
		ctx := context.Background()
		f := newWalletServiceFixture()

		existing := &domain.Wallet{ID: 3, UserID: userID, Currency: "NGN", Balance: decimal.NewFromInt(25)}
		f.walletRepo.On("GetWalletByUserID", ctx, mock.Anything, userID).Return(existing, nil).Once()

		wallet, err := f.service.GetOrCreateWallet(ctx, userID, "NGN")

		assert.NoError(t, err)
		assert.Equal(t, existing, wallet)
		f.walletRepo.AssertNotCalled(t, "CreateWallet", mock.Anything, mock.Anything, mock.Anything)
		f.assertAll(t)
	})

	t.Run("CreatesOnFirstCall", func(t *testing.T) {
		ctx := context.Background()
		f := newWalletServiceFixture()

		f.walletRepo.On("GetWalletByUserID", ctx, mock.Anything, userID).Return(nil, util.ErrNotFound).Once()
		f.walletRepo.On("CreateWallet", ctx, mock.Anything, mock.AnythingOfType("*domain.Wallet")).Return(nil).Once()

		wallet, err := f.service.GetOrCreateWallet(ctx, userID, "")

		assert.NoError(t, err)
		assert.Equal(t, userID, wallet.UserID)
		assert.Equal(t, domain.DefaultCurrency, wallet.Currency)
		assert.True(t, wallet.Balance.IsZero())
		f.assertAll(t)
	})

	t.Run("LostCreationRaceReReads", func(t *testing.T) {
		ctx := context.Background()
		f := newWalletServiceFixture()

		winner := &domain.Wallet{ID: 9, UserID: userID, Currency: "NGN", Balance: decimal.Zero}

		f.walletRepo.On("GetWalletByUserID", ctx, mock.Anything, userID).Return(nil, util.ErrNotFound).Once()
		f.walletRepo.On("CreateWallet", ctx, mock.Anything, mock.AnythingOfType("*domain.Wallet")).Return(util.ErrDuplicateEntry).Once()
		f.walletRepo.On("GetWalletByUserID", ctx, mock.Anything, userID).Return(winner, nil).Once()

		wallet, err := f.service.GetOrCreateWallet(ctx, userID, "NGN")

		assert.NoError(t, err)
		assert.Equal(t, winner, wallet)
		f.assertAll(t)
	})
}

func TestGetTransactionHistory(t *testing.T) {
	userID := int64(7)
	wallet := &domain.Wallet{ID: 1, UserID: userID, Currency: "NGN", Balance: decimal.NewFromInt(60)}

	t.Run("DefaultsNewestFirst", func(t *testing.T) {
		ctx := context.Background()
		f := newWalletServiceFixture()

		records := []domain.Transaction{
			{ID: 2, WalletID: 1, Kind: domain.TransactionKindDebit, Amount: decimal.NewFromInt(40)},
			{ID: 1, WalletID: 1, Kind: domain.TransactionKindTopUp, Amount: decimal.NewFromInt(100)},
		}

		f.walletRepo.On("GetWalletByUserID", ctx, mock.Anything, userID).Return(wallet, nil).Once()
		f.transactionRepo.On("GetTransactionsByWalletID", ctx, mock.Anything, wallet.ID, DefaultHistoryLimit, 0, true).
			Return(records, int64(2), nil).Once()

		// Out-of-range page and limit fall back to the defaults.
		transactions, total, err := f.service.GetTransactionHistory(ctx, userID, 0, -3, "")

		assert.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Equal(t, domain.TransactionKindDebit, transactions[0].Kind)
		assert.Equal(t, domain.TransactionKindTopUp, transactions[1].Kind)
		f.assertAll(t)
	})

	t.Run("AscendingSortAndPaging", func(t *testing.T) {
		ctx := context.Background()
		f := newWalletServiceFixture()

		f.walletRepo.On("GetWalletByUserID", ctx, mock.Anything, userID).Return(wallet, nil).Once()
		f.transactionRepo.On("GetTransactionsByWalletID", ctx, mock.Anything, wallet.ID, 5, 10, false).
			Return([]domain.Transaction{}, int64(2), nil).Once()

		_, _, err := f.service.GetTransactionHistory(ctx, userID, 3, 5, "asc")

		assert.NoError(t, err)
		f.assertAll(t)
	})

	t.Run("WalletNotFound", func(t *testing.T) {
		ctx := context.Background()
		f := newWalletServiceFixture()

		f.walletRepo.On("GetWalletByUserID", ctx, mock.Anything, userID).Return(nil, util.ErrNotFound).Once()

		_, _, err := f.service.GetTransactionHistory(ctx, userID, 1, 10, "")

		assert.ErrorIs(t, err, util.ErrWalletNotFound)
		f.assertAll(t)
	})
}
