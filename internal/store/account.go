package store

import (
	"encoding/binary"
	"fmt"
)

// Account is an opaque-except-for-two-reads balance record. Its
// Balance/InstrumentID methods implement consensus/verify.Account, so
// a loaded Account can be handed straight to
// BalanceReceiptCheck/verify.Balance.
type Account struct {
	balance      int64
	instrumentID string
}

// NewAccount builds an Account with the given balance and instrument
// id.
func NewAccount(balance int64, instrumentID string) *Account {
	return &Account{balance: balance, instrumentID: instrumentID}
}

// Balance implements consensus/verify.Account.
func (a *Account) Balance() int64 { return a.balance }

// InstrumentID implements consensus/verify.Account.
func (a *Account) InstrumentID() string { return a.instrumentID }

// SetBalance updates the account's balance, e.g. after a deposit or
// withdrawal has been confirmed.
func (a *Account) SetBalance(balance int64) { a.balance = balance }

// accountPath returns the storage key an Account blob is kept under.
func accountPath(notary, accountID string) string {
	return fmt.Sprintf("account/%s/%s", notary, accountID)
}

// LoadAccount reads and decodes the Account stored for accountID under
// notary.
func LoadAccount(s Storage, notary, accountID string) (*Account, error) {
	data, err := s.Read(accountPath(notary, accountID))
	if err != nil {
		return nil, err
	}
	return decodeAccount(data)
}

// SaveAccount encodes and writes acct under accountID.
func SaveAccount(s Storage, notary, accountID string, acct *Account) error {
	return s.Write(accountPath(notary, accountID), encodeAccount(acct))
}

func encodeAccount(a *Account) []byte {
	instr := []byte(a.instrumentID)
	buf := make([]byte, 8+4+len(instr))
	binary.BigEndian.PutUint64(buf[0:8], uint64(a.balance))
	binary.BigEndian.PutUint32(buf[8:12], uint32(len(instr)))
	copy(buf[12:], instr)
	return buf
}

func decodeAccount(data []byte) (*Account, error) {
	if len(data) < 12 {
		return nil, fmt.Errorf("store: malformed account blob")
	}
	balance := int64(binary.BigEndian.Uint64(data[0:8]))
	instrLen := binary.BigEndian.Uint32(data[8:12])
	if uint32(len(data)-12) < instrLen {
		return nil, fmt.Errorf("store: malformed account blob")
	}
	return &Account{
		balance:      balance,
		instrumentID: string(data[12 : 12+instrLen]),
	}, nil
}
