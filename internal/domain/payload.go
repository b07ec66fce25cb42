package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"
	"strings"
)

// Amount is a non-negative integer quantity in the token's smallest unit.
// It is carried as a decimal string and accepts JSON numbers, decimal
// strings and 0x-prefixed hex strings on input.
type Amount string

// UnmarshalJSON implements json.Unmarshaler
func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*a = ""
		return nil
	}

	raw := string(b)
	if len(b) > 0 && b[0] == '"' {
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
	}

	v, err := Amount(raw).BigInt()
	if err != nil {
		return err
	}
	*a = Amount(v.String())
	return nil
}

// BigInt parses the amount
func (a Amount) BigInt() (*big.Int, error) {
	s := strings.TrimSpace(string(a))
	if s == "" {
		return nil, fmt.Errorf("%w: empty amount", ErrInvalidAmount)
	}

	base := 10
	digits := s
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		base = 16
		digits = s[2:]
	}

	v, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return nil, fmt.Errorf("%w: %q is not an integer", ErrInvalidAmount, s)
	}
	if v.Sign() < 0 {
		return nil, fmt.Errorf("%w: %q is negative", ErrInvalidAmount, s)
	}
	return v, nil
}

// String returns the decimal representation
func (a Amount) String() string {
	return string(a)
}

// IsZero reports whether the amount is empty or zero
func (a Amount) IsZero() bool {
	v, err := a.BigInt()
	return err != nil || v.Sign() == 0
}

// NewAmount creates an amount from a big integer
func NewAmount(v *big.Int) Amount {
	if v == nil {
		return Amount("0")
	}
	return Amount(v.String())
}

// TransferPayload is the data of a TokenTransfer event
type TransferPayload struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Value Amount `json:"value"`
}

// Validate checks the transfer payload
func (p *TransferPayload) Validate() error {
	if !IsValidAddress(p.From) {
		return fmt.Errorf("%w: from %q", ErrInvalidAddress, p.From)
	}
	if !IsValidAddress(p.To) {
		return fmt.Errorf("%w: to %q", ErrInvalidAddress, p.To)
	}
	if _, err := p.Value.BigInt(); err != nil {
		return fmt.Errorf("value: %w", err)
	}
	p.From = NormalizeAddress(p.From)
	p.To = NormalizeAddress(p.To)
	return nil
}

// PurchasePayload is the data of a TokenPurchase event
type PurchasePayload struct {
	Buyer      string  `json:"buyer"`
	Amount     Amount  `json:"amount"`
	Price      Amount  `json:"price"`
	TotalValue *Amount `json:"total_value,omitempty"`
}

// UnmarshalJSON accepts totalValue as well as total_value
func (p *PurchasePayload) UnmarshalJSON(b []byte) error {
	type plain PurchasePayload
	var aux struct {
		plain
		TotalValueCamel *Amount `json:"totalValue"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*p = PurchasePayload(aux.plain)
	if p.TotalValue == nil || *p.TotalValue == "" {
		p.TotalValue = aux.TotalValueCamel
	}
	return nil
}

// Validate checks the purchase payload and fills in total_value when missing
func (p *PurchasePayload) Validate() error {
	if !IsValidAddress(p.Buyer) || IsZeroAddress(p.Buyer) {
		return fmt.Errorf("%w: buyer %q", ErrInvalidAddress, p.Buyer)
	}
	amount, err := p.Amount.BigInt()
	if err != nil {
		return fmt.Errorf("amount: %w", err)
	}
	price, err := p.Price.BigInt()
	if err != nil {
		return fmt.Errorf("price: %w", err)
	}
	if p.TotalValue == nil || *p.TotalValue == "" {
		total := NewAmount(new(big.Int).Mul(amount, price))
		p.TotalValue = &total
	} else if _, err := p.TotalValue.BigInt(); err != nil {
		return fmt.Errorf("total_value: %w", err)
	}
	p.Buyer = NormalizeAddress(p.Buyer)
	return nil
}

// PerkRedeemedPayload is the data of a PerkRedeemed event
type PerkRedeemedPayload struct {
	User   string `json:"user"`
	PerkID string `json:"perk_id"`
}

// UnmarshalJSON accepts perkId as well as perk_id
func (p *PerkRedeemedPayload) UnmarshalJSON(b []byte) error {
	type plain PerkRedeemedPayload
	var aux struct {
		plain
		PerkIDCamel string `json:"perkId"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*p = PerkRedeemedPayload(aux.plain)
	if p.PerkID == "" {
		p.PerkID = aux.PerkIDCamel
	}
	return nil
}

// Validate checks the perk redemption payload
func (p *PerkRedeemedPayload) Validate() error {
	if !IsValidAddress(p.User) || IsZeroAddress(p.User) {
		return fmt.Errorf("%w: user %q", ErrInvalidAddress, p.User)
	}
	if strings.TrimSpace(p.PerkID) == "" {
		return fmt.Errorf("%w: perk_id is required", ErrInvalidEvent)
	}
	p.User = NormalizeAddress(p.User)
	return nil
}

// PriceUpdatePayload is the data of a PriceUpdate event
type PriceUpdatePayload struct {
	NewPrice Amount `json:"new_price"`
}

// UnmarshalJSON accepts newPrice as well as new_price
func (p *PriceUpdatePayload) UnmarshalJSON(b []byte) error {
	type plain PriceUpdatePayload
	var aux struct {
		plain
		NewPriceCamel Amount `json:"newPrice"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*p = PriceUpdatePayload(aux.plain)
	if p.NewPrice == "" {
		p.NewPrice = aux.NewPriceCamel
	}
	return nil
}

// Validate checks the price update payload
func (p *PriceUpdatePayload) Validate() error {
	if _, err := p.NewPrice.BigInt(); err != nil {
		return fmt.Errorf("new_price: %w", err)
	}
	return nil
}

// TokenDeployedPayload is the data of a TokenDeployed event
type TokenDeployedPayload struct {
	TokenID string `json:"token_id"`
}

// UnmarshalJSON accepts tokenId as well as token_id
func (p *TokenDeployedPayload) UnmarshalJSON(b []byte) error {
	type plain TokenDeployedPayload
	var aux struct {
		plain
		TokenIDCamel string `json:"tokenId"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*p = TokenDeployedPayload(aux.plain)
	if p.TokenID == "" {
		p.TokenID = aux.TokenIDCamel
	}
	return nil
}

// Validate checks the deployment payload
func (p *TokenDeployedPayload) Validate() error {
	if strings.TrimSpace(p.TokenID) == "" {
		return fmt.Errorf("%w: token_id is required", ErrInvalidEvent)
	}
	return nil
}

// DecodePayload unmarshals the event data into v and validates it
func DecodePayload(data json.RawMessage, v interface{ Validate() error }) error {
	if len(bytes.TrimSpace(data)) == 0 {
		data = json.RawMessage("{}")
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}
	return v.Validate()
}
