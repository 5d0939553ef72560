package domain

import (
	"errors"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// VIPPrice is the fixed price of one promotion purchase: 2.00 EUR.
var VIPPrice = Money{Amount: 200, Currency: "EUR"}

// Money is an amount in minor units.
type Money struct {
	Amount   int64
	Currency string
}

func NewMoney(amount int64, currency string) (Money, error) {
	if amount < 0 {
		return Money{}, errors.New("amount cannot be negative")
	}
	if currency == "" {
		return Money{}, errors.New("currency is required")
	}
	return Money{Amount: amount, Currency: currency}, nil
}

// Decimal returns the amount in major units, e.g. 200 -> 2.00.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.Amount, -2)
}

// String renders the amount with two decimals, e.g. "2.00".
func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

// CardDetails is what the client collected. Only the masked form is persisted.
type CardDetails struct {
	Number string
	Holder string
	Expiry string
}

// MaskedCard is descriptive card metadata. It is never used for authorization.
type MaskedCard struct {
	LastFour string
	Holder   string
	Expiry   string
}

// Validate checks that the card fields are syntactically present.
func (c CardDetails) Validate() error {
	digits := c.digits()
	if len(digits) < 4 || len(digits) != len(strings.ReplaceAll(strings.TrimSpace(c.Number), " ", "")) {
		return NewValidationError("cardNumber", "card number is required and must have at least 4 digits")
	}
	if strings.TrimSpace(c.Holder) == "" {
		return NewValidationError("cardHolder", "cardholder name is required")
	}
	if strings.TrimSpace(c.Expiry) == "" {
		return NewValidationError("expiryDate", "expiry date is required")
	}
	return nil
}

// Mask drops everything but the last four digits of the number.
func (c CardDetails) Mask() *MaskedCard {
	digits := c.digits()
	lastFour := digits
	if len(digits) > 4 {
		lastFour = digits[len(digits)-4:]
	}
	return &MaskedCard{
		LastFour: lastFour,
		Holder:   strings.TrimSpace(c.Holder),
		Expiry:   strings.TrimSpace(c.Expiry),
	}
}

func (c CardDetails) digits() string {
	var b strings.Builder
	for _, r := range c.Number {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
