// internal/domain/transaction.go
package domain

import (
	"time"

	"github.com/shopspring/decimal" // For precise monetary calculations
)

// TransactionKind defines the kind of a ledger entry.
type TransactionKind string

const (
	TransactionKindTopUp TransactionKind = "top-up"
	TransactionKindDebit TransactionKind = "debit"
)

// Transaction is one immutable entry of a wallet's ledger. Records are
// append-only: never updated or deleted once written.
type Transaction struct {
	ID        int64           `db:"id" json:"id"`
	WalletID  int64           `db:"wallet_id" json:"wallet_id"`
	Kind      TransactionKind `db:"kind" json:"kind"`
	Amount    decimal.Decimal `db:"amount" json:"amount"` // Always positive
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}

// NewTransaction creates a new Transaction instance.
func NewTransaction(walletID int64, kind TransactionKind, amount decimal.Decimal) *Transaction {
	return &Transaction{
		WalletID:  walletID,
		Kind:      kind,
		Amount:    amount,
		CreatedAt: time.Now().UTC(),
	}
}
