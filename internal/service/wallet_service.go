// internal/service/wallet_service.go
package service

import (
	"context"
	"fmt"
	"log/slog"

	"coursehub/internal/domain"
	"coursehub/internal/repository"
	"coursehub/internal/util"
	"coursehub/pkg/cache"
	"coursehub/pkg/db"

	"github.com/shopspring/decimal"
)

// Default transaction-history paging.
const (
	DefaultHistoryPage  = 1
	DefaultHistoryLimit = 10
)

// WalletService is the wallet ledger: the only component permitted to mutate
// a wallet's balance or append transaction records.
type WalletService interface {
	// GetOrCreateWallet returns the user's wallet, creating a zero-balance
	// one on first call. Idempotent on user id; the currency argument is
	// honored only at creation and immutable afterwards.
	GetOrCreateWallet(ctx context.Context, userID int64, currency string) (*domain.Wallet, error)
	// GetBalance returns the user's wallet. Fails with util.ErrNotFound when
	// no wallet exists.
	GetBalance(ctx context.Context, userID int64) (*domain.Wallet, error)
	// AddFunds credits the wallet and appends a top-up record in one atomic
	// unit. Requires amount > 0.
	AddFunds(ctx context.Context, userID int64, amount decimal.Decimal) (*domain.Wallet, *domain.Transaction, error)
	// DeductFunds debits the wallet and appends a debit record in one atomic
	// unit. Requires amount > 0; fails with util.ErrInsufficientFunds when
	// amount exceeds the balance, leaving balance and ledger untouched.
	DeductFunds(ctx context.Context, userID int64, amount decimal.Decimal) (*domain.Wallet, *domain.Transaction, error)
	// GetTransactionHistory returns one page of the wallet's ledger ordered
	// by creation time. Page and limit are 1-indexed/positive; out-of-range
	// pages yield an empty page. sortDir "asc" is oldest first, anything
	// else newest first.
	GetTransactionHistory(ctx context.Context, userID int64, page, limit int, sortDir string) ([]domain.Transaction, int64, error)
}

type walletService struct {
	dbBeginner      db.DBTxBeginner
	dbExecutor      repository.DBExecutor
	walletRepo      repository.WalletRepository
	transactionRepo repository.TransactionRepository
	beginTx         db.BeginTxFunc
	commitTx        db.CommitTxFunc
	rollbackTx      db.RollbackTxFunc
	cache           *cache.Cache
	logger          *slog.Logger
}

// NewWalletService creates a new instance of WalletService. cache may be nil
// to disable the balance cache.
func NewWalletService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	walletRepo repository.WalletRepository,
	transactionRepo repository.TransactionRepository,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
	c *cache.Cache,
	logger *slog.Logger,
) WalletService {
	return &walletService{
		dbBeginner:      dbBeginner,
		dbExecutor:      dbExecutor,
		walletRepo:      walletRepo,
		transactionRepo: transactionRepo,
		beginTx:         beginTx,
		commitTx:        commitTx,
		rollbackTx:      rollbackTx,
		cache:           c,
		logger:          logger,
	}
}

func balanceCacheKey(userID int64) string {
	return fmt.Sprintf("wallet:balance:%d", userID)
}

// GetOrCreateWallet returns the user's wallet, creating it on first call.
func (s *walletService) GetOrCreateWallet(ctx context.Context, userID int64, currency string) (*domain.Wallet, error) {
	wallet, err := s.walletRepo.GetWalletByUserID(ctx, s.dbExecutor, userID)
	if err == nil {
		return wallet, nil
	}
	if !util.IsError(err, util.ErrNotFound) {
		return nil, fmt.Errorf("get or create wallet: failed to get wallet for user %d: %w", userID, err)
	}

	wallet = domain.NewWallet(userID, currency)
	if err := s.walletRepo.CreateWallet(ctx, s.dbExecutor, wallet); err != nil {
		if util.IsError(err, util.ErrDuplicateEntry) {
			// Lost the creation race; the winner's wallet is the wallet.
			return s.walletRepo.GetWalletByUserID(ctx, s.dbExecutor, userID)
		}
		return nil, fmt.Errorf("get or create wallet: failed to create wallet for user %d: %w", userID, err)
	}
	return wallet, nil
}

// GetBalance returns the user's wallet, read through the cache when present.
func (s *walletService) GetBalance(ctx context.Context, userID int64) (*domain.Wallet, error) {
	var cached domain.Wallet
	hit, err := s.cache.Get(ctx, balanceCacheKey(userID), &cached)
	if err != nil {
		s.logger.Warn("balance cache read failed", "user_id", userID, "error", err)
	}
	if hit {
		return &cached, nil
	}

	wallet, err := s.walletRepo.GetWalletByUserID(ctx, s.dbExecutor, userID)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, fmt.Errorf("get balance: user %d: %w", userID, util.ErrWalletNotFound)
		}
		return nil, fmt.Errorf("get balance: failed to get wallet for user %d: %w", userID, err)
	}

	if err := s.cache.Set(ctx, balanceCacheKey(userID), wallet); err != nil {
		s.logger.Warn("balance cache write failed", "user_id", userID, "error", err)
	}
	return wallet, nil
}

// AddFunds credits the wallet and appends the matching top-up record inside
// one database transaction, so a balance change without its ledger record
// (or vice versa) cannot be observed.
func (s *walletService) AddFunds(ctx context.Context, userID int64, amount decimal.Decimal) (*domain.Wallet, *domain.Transaction, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, nil, fmt.Errorf("add funds: %w", util.ErrInvalidAmount)
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, nil, fmt.Errorf("add funds: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, nil, fmt.Errorf("add funds: transaction controller does not implement DBExecutor")
	}

	wallet, err := s.walletRepo.GetWalletByUserID(ctx, txExecutor, userID)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, nil, fmt.Errorf("add funds: user %d: %w", userID, util.ErrWalletNotFound)
		}
		return nil, nil, fmt.Errorf("add funds: failed to get wallet for user %d: %w", userID, err)
	}

	if err := s.walletRepo.CreditBalance(ctx, txExecutor, wallet.ID, amount); err != nil {
		return nil, nil, fmt.Errorf("add funds: failed to credit wallet %d: %w", wallet.ID, err)
	}

	transaction := domain.NewTransaction(wallet.ID, domain.TransactionKindTopUp, amount)
	if err := s.transactionRepo.CreateTransaction(ctx, txExecutor, transaction); err != nil {
		return nil, nil, fmt.Errorf("add funds: failed to append transaction record: %w", err)
	}

	updatedWallet, err := s.walletRepo.GetWalletByUserID(ctx, txExecutor, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("add funds: failed to re-fetch wallet for user %d: %w", userID, err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, nil, fmt.Errorf("add funds: failed to commit transaction: %w", err)
	}

	s.invalidateBalance(ctx, userID)
	return updatedWallet, transaction, nil
}

// DeductFunds debits the wallet and appends the matching debit record inside
// one database transaction. The conditional update in DebitBalance keeps the
// balance non-negative under concurrent debits.
func (s *walletService) DeductFunds(ctx context.Context, userID int64, amount decimal.Decimal) (*domain.Wallet, *domain.Transaction, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, nil, fmt.Errorf("deduct funds: %w", util.ErrInvalidAmount)
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, nil, fmt.Errorf("deduct funds: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, nil, fmt.Errorf("deduct funds: transaction controller does not implement DBExecutor")
	}

	wallet, err := s.walletRepo.GetWalletByUserID(ctx, txExecutor, userID)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, nil, fmt.Errorf("deduct funds: user %d: %w", userID, util.ErrWalletNotFound)
		}
		return nil, nil, fmt.Errorf("deduct funds: failed to get wallet for user %d: %w", userID, err)
	}

	if wallet.Balance.LessThan(amount) {
		return nil, nil, fmt.Errorf("deduct funds: wallet %d: %w", wallet.ID, util.ErrInsufficientFunds)
	}

	if err := s.walletRepo.DebitBalance(ctx, txExecutor, wallet.ID, amount); err != nil {
		return nil, nil, fmt.Errorf("deduct funds: failed to debit wallet %d: %w", wallet.ID, err)
	}

	transaction := domain.NewTransaction(wallet.ID, domain.TransactionKindDebit, amount)
	if err := s.transactionRepo.CreateTransaction(ctx, txExecutor, transaction); err != nil {
		return nil, nil, fmt.Errorf("deduct funds: failed to append transaction record: %w", err)
	}

	updatedWallet, err := s.walletRepo.GetWalletByUserID(ctx, txExecutor, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("deduct funds: failed to re-fetch wallet for user %d: %w", userID, err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, nil, fmt.Errorf("deduct funds: failed to commit transaction: %w", err)
	}

	s.invalidateBalance(ctx, userID)
	return updatedWallet, transaction, nil
}

// GetTransactionHistory returns one page of the wallet's ledger. History is
// served from the store, not the cache: repeated calls against an unchanged
// ledger must return identical pages.
func (s *walletService) GetTransactionHistory(ctx context.Context, userID int64, page, limit int, sortDir string) ([]domain.Transaction, int64, error) {
	if page < 1 {
		page = DefaultHistoryPage
	}
	if limit < 1 {
		limit = DefaultHistoryLimit
	}
	newestFirst := sortDir != "asc"

	wallet, err := s.walletRepo.GetWalletByUserID(ctx, s.dbExecutor, userID)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, 0, fmt.Errorf("transaction history: user %d: %w", userID, util.ErrWalletNotFound)
		}
		return nil, 0, fmt.Errorf("transaction history: failed to get wallet for user %d: %w", userID, err)
	}

	offset := (page - 1) * limit
	transactions, totalCount, err := s.transactionRepo.GetTransactionsByWalletID(ctx, s.dbExecutor, wallet.ID, limit, offset, newestFirst)
	if err != nil {
		return nil, 0, fmt.Errorf("transaction history: failed to fetch page for wallet %d: %w", wallet.ID, err)
	}
	return transactions, totalCount, nil
}

func (s *walletService) invalidateBalance(ctx context.Context, userID int64) {
	if err := s.cache.Delete(ctx, balanceCacheKey(userID)); err != nil {
		s.logger.Warn("balance cache invalidation failed", "user_id", userID, "error", err)
	}
}
