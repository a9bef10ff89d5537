package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetWallet_neverFunded(t *testing.T) {
	p := player()

	wallet, err := GetWallet(cbg, p.ID)
	assert.NoError(t, err)
	assert.Equal(t, p.ID, wallet.PlayerID)
	assert.Equal(t, int64(0), wallet.Balance)
}

func TestAdjustWallet(t *testing.T) {
	p := player()

	balance, err := AdjustWallet(cbg, p.ID, 100, nil, "deposit")
	assert.NoError(t, err)
	assert.Equal(t, int64(100), balance)

	balance, err = AdjustWallet(cbg, p.ID, -25, nil, "entry fee")
	assert.NoError(t, err)
	assert.Equal(t, int64(75), balance)

	balance, err = AdjustWallet(cbg, p.ID, -100, nil, "entry fee")
	assert.Equal(t, ErrInsufficientFunds, err)
	assert.Equal(t, int64(0), balance)

	// the failed debit must not have touched the balance
	wallet, err := GetWallet(cbg, p.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(75), wallet.Balance)
}

func TestAdjustWallet_overdrawOnFirstTouch(t *testing.T) {
	p := player()

	_, err := AdjustWallet(cbg, p.ID, -1, nil, "entry fee")
	assert.Equal(t, ErrInsufficientFunds, err)
}
