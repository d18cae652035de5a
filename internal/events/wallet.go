// internal/events/wallet.go
package events

import (
	"context"
	"fmt"

	"coursehub/internal/domain"
	"coursehub/internal/eventbus"
)

// WalletProvisioner is the slice of the wallet ledger service the listener
// needs. Balance mutation stays behind the ledger service; the listener never
// touches the store directly.
type WalletProvisioner interface {
	GetOrCreateWallet(ctx context.Context, userID int64, currency string) (*domain.Wallet, error)
}

// WalletListener provisions a zero-balance wallet for new accounts.
type WalletListener struct {
	wallets WalletProvisioner
}

// NewWalletListener creates a WalletListener.
func NewWalletListener(wallets WalletProvisioner) *WalletListener {
	return &WalletListener{wallets: wallets}
}

// Register subscribes the listener's handlers on the bus.
func (l *WalletListener) Register(bus *eventbus.Bus) {
	bus.Subscribe(TopicUserCreated, l.createWallet)
}

func (l *WalletListener) createWallet(ctx context.Context, payload any) error {
	event, ok := payload.(UserCreated)
	if !ok {
		return fmt.Errorf("createWallet: unexpected payload %T", payload)
	}
	if _, err := l.wallets.GetOrCreateWallet(ctx, event.UserID, domain.DefaultCurrency); err != nil {
		return fmt.Errorf("createWallet: user %d: %w", event.UserID, err)
	}
	return nil
}
