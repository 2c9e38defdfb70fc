// Package stellar is the placeholder payment client for Stellar wallets.
// No network calls are made; every method logs and returns canned data.
package stellar

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	applog "dsfs/internal/log"
)

type Wallet struct {
	PublicKey string
	SecretKey string
}

type Payment struct {
	From   string
	To     string
	Amount float64
}

type Receipt struct {
	Success       bool
	TransactionID string
}

type AccountInfo struct {
	PublicKey string
	Balance   float64
}

type Client struct{}

func New() *Client {
	return &Client{}
}

func (c *Client) CreateWallet(ctx context.Context) (Wallet, error) {
	applog.Info(ctx, "mock create wallet")
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return Wallet{
		PublicKey: "G" + strings.ToUpper(id),
		SecretKey: "S" + strings.ToUpper(id),
	}, nil
}

// SendPayment records the payment intent. Amounts must be positive.
func (c *Client) SendPayment(ctx context.Context, p Payment) (Receipt, error) {
	if p.Amount <= 0 {
		return Receipt{}, fmt.Errorf("stellar: payment amount must be positive, got %v", p.Amount)
	}
	applog.Info(ctx, "mock stellar payment", "from", p.From, "to", p.To, "amount", p.Amount)
	return Receipt{Success: true, TransactionID: uuid.NewString()}, nil
}

func (c *Client) AccountInfo(ctx context.Context, publicKey string) (AccountInfo, error) {
	applog.Info(ctx, "mock get account info", "publicKey", publicKey)
	return AccountInfo{PublicKey: publicKey}, nil
}

func (c *Client) TransactionHistory(ctx context.Context, publicKey string) ([]Receipt, error) {
	applog.Info(ctx, "mock get transaction history", "publicKey", publicKey)
	return []Receipt{}, nil
}
