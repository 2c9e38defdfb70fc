package stellar

import (
	"context"
	"strings"
	"testing"
)

func TestCreateWalletReturnsDistinctKeys(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := New()
	first, err := c.CreateWallet(ctx)
	if err != nil {
		t.Fatalf("CreateWallet error = %v", err)
	}
	second, _ := c.CreateWallet(ctx)
	if !strings.HasPrefix(first.PublicKey, "G") || !strings.HasPrefix(first.SecretKey, "S") {
		t.Fatalf("unexpected wallet keys: %+v", first)
	}
	if first.PublicKey == second.PublicKey {
		t.Fatal("expected distinct wallets")
	}
}

func TestSendPayment(t *testing.T) {
	t.Parallel()

	c := New()
	receipt, err := c.SendPayment(context.Background(), Payment{From: "GA", To: "GB", Amount: 10})
	if err != nil || !receipt.Success || receipt.TransactionID == "" {
		t.Fatalf("SendPayment = %+v, %v", receipt, err)
	}
	if _, err := c.SendPayment(context.Background(), Payment{Amount: 0}); err == nil {
		t.Fatal("expected error for zero amount")
	}
}

func TestAccountQueries(t *testing.T) {
	t.Parallel()

	c := New()
	info, err := c.AccountInfo(context.Background(), "GA")
	if err != nil || info.PublicKey != "GA" || info.Balance != 0 {
		t.Fatalf("AccountInfo = %+v, %v", info, err)
	}
	history, err := c.TransactionHistory(context.Background(), "GA")
	if err != nil || len(history) != 0 {
		t.Fatalf("TransactionHistory = %v, %v", history, err)
	}
}
