package finance

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/etnz/finance/date"
	"github.com/shopspring/decimal"
)

// Errors returned when a record breaks an invariant. They are wrapped with
// the offending record's identity.
var (
	ErrInvalidTransaction = errors.New("invalid transaction")
	ErrUnknownType        = errors.New("unknown transaction type")
	ErrUnknownRecurrence  = errors.New("unknown recurrence")
	ErrCurrencyMismatch   = errors.New("currency mismatch")
)

// TxType is the closed set of transaction kinds.
type TxType string

const (
	Income   TxType = "income"
	Expense  TxType = "expense"
	Transfer TxType = "transfer"
)

// ParseTxType parses a transaction type name.
func ParseTxType(s string) (TxType, error) {
	switch t := TxType(strings.ToLower(strings.TrimSpace(s))); t {
	case Income, Expense, Transfer:
		return t, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownType, s)
	}
}

// DateField selects which of the two transaction dates drives computations.
type DateField int

const (
	// Accounting is the booking date, the default.
	Accounting DateField = iota
	// Value is the date the amount actually hits the account.
	Value
)

func (f DateField) String() string {
	switch f {
	case Accounting:
		return "accounting"
	case Value:
		return "value"
	default:
		panic(fmt.Sprintf("unknown date field %d", int(f)))
	}
}

// ParseDateField parses "accounting" or "value" (and their column names).
func ParseDateField(s string) (DateField, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "accounting", "transaction_date", "date", "":
		return Accounting, nil
	case "value", "value_date":
		return Value, nil
	default:
		return Accounting, fmt.Errorf("unknown date field %q, want accounting or value", s)
	}
}

// Transaction is a single movement of money on an account.
//
// Amount and TransferFee are non negative magnitudes, the Type gives the
// direction. A transfer leaves Account and reaches TransferTo.
type Transaction struct {
	ID             string
	Type           TxType
	Amount         Money
	Account        string
	TransferTo     string
	TransferFee    Money
	Date           date.Date // accounting date
	ValueDate      date.Date // zero means same as Date
	IncludeInStats bool
	Category       string
	Description    string
	RefundOf       string // id of the expense this income refunds
	RefundedAmount Money  // part of this expense already refunded
}

// On returns the transaction's effective date for the given field. A missing
// value date falls back to the accounting date.
func (t Transaction) On(field DateField) date.Date {
	if field == Value && !t.ValueDate.IsZero() {
		return t.ValueDate
	}
	return t.Date
}

// Touches reports whether the transaction moves money on account.
func (t Transaction) Touches(account string) bool {
	return t.Account == account || (t.Type == Transfer && t.TransferTo == account)
}

// Validate checks the transaction invariants.
func (t Transaction) Validate() error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w %s: %s", ErrInvalidTransaction, t.ID, fmt.Sprintf(format, args...))
	}
	switch t.Type {
	case Income, Expense, Transfer:
	default:
		return fmt.Errorf("transaction %s: %w %q", t.ID, ErrUnknownType, t.Type)
	}
	if t.Account == "" {
		return invalid("missing account")
	}
	if t.Date.IsZero() {
		return invalid("missing date")
	}
	if t.Amount.IsNegative() {
		return invalid("negative amount %s", t.Amount)
	}
	if t.TransferFee.IsNegative() {
		return invalid("negative transfer fee %s", t.TransferFee)
	}
	for _, m := range []Money{t.TransferFee, t.RefundedAmount} {
		if err := checkCurrency(t.Amount, m); err != nil {
			return fmt.Errorf("transaction %s: %w", t.ID, err)
		}
	}
	if t.Type == Transfer {
		if t.TransferTo == "" {
			return invalid("transfer without destination account")
		}
		if t.TransferTo == t.Account {
			return invalid("transfer from %s to itself", t.Account)
		}
	} else {
		if t.TransferTo != "" {
			return invalid("%s with a destination account %s", t.Type, t.TransferTo)
		}
		if !t.TransferFee.IsZero() {
			return invalid("%s with a transfer fee", t.Type)
		}
	}
	if t.RefundedAmount.IsNegative() || t.RefundedAmount.GreaterThan(t.Amount) {
		return invalid("refunded amount %s out of [0, %s]", t.RefundedAmount, t.Amount)
	}
	return nil
}

// validateAll returns every validation error found in txs.
func validateAll(txs []Transaction) error {
	var errs []error
	for _, tx := range txs {
		if err := tx.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// MarshalJSON writes the transaction with the column names of the data files.
func (t Transaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Optional("id", t.ID)
	w.Append("type", t.Type)
	w.Append("transaction_date", t.Date)
	w.Optional("value_date", t.ValueDate)
	w.Append("account_id", t.Account)
	w.Optional("transfer_to_account_id", t.TransferTo)
	w.Append("amount", t.Amount.value)
	w.Optional("transfer_fee", t.TransferFee.value)
	w.Optional("currency", t.Amount.Currency())
	w.Optional("category_id", t.Category)
	w.Append("description", t.Description)
	if !t.IncludeInStats {
		w.Append("include_in_stats", false)
	}
	w.Optional("refund_of_transaction_id", t.RefundOf)
	w.Optional("refunded_amount", t.RefundedAmount.value)
	return w.MarshalJSON()
}

// UnmarshalJSON reads a transaction record. Amounts share the optional
// "currency" field, include_in_stats defaults to true.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	var temp struct {
		ID             string          `json:"id"`
		Type           string          `json:"type"`
		Date           date.Date       `json:"transaction_date"`
		ValueDate      date.Date       `json:"value_date"`
		Account        string          `json:"account_id"`
		TransferTo     *string         `json:"transfer_to_account_id"`
		Amount         decimal.Decimal `json:"amount"`
		TransferFee    decimal.Decimal `json:"transfer_fee"`
		Currency       string          `json:"currency"`
		Category       *string         `json:"category_id"`
		Description    string          `json:"description"`
		IncludeInStats *bool           `json:"include_in_stats"`
		RefundOf       *string         `json:"refund_of_transaction_id"`
		RefundedAmount decimal.Decimal `json:"refunded_amount"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	typ, err := ParseTxType(temp.Type)
	if err != nil {
		return err
	}
	*t = Transaction{
		ID:             temp.ID,
		Type:           typ,
		Amount:         M(temp.Amount, temp.Currency),
		Account:        temp.Account,
		TransferTo:     deref(temp.TransferTo),
		TransferFee:    M(temp.TransferFee, temp.Currency),
		Date:           temp.Date,
		ValueDate:      temp.ValueDate,
		IncludeInStats: temp.IncludeInStats == nil || *temp.IncludeInStats,
		Category:       deref(temp.Category),
		Description:    temp.Description,
		RefundOf:       deref(temp.RefundOf),
		RefundedAmount: M(temp.RefundedAmount, temp.Currency),
	}
	return nil
}

// deref reads nullable columns.
func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// AccountType is informational, it does not change any computation.
type AccountType string

const (
	Checking   AccountType = "checking"
	Savings    AccountType = "savings"
	Credit     AccountType = "credit"
	Investment AccountType = "investment"
)

// Account holds the stored, current balance of a bank account.
type Account struct {
	ID      string
	Name    string
	Type    AccountType
	Bank    string
	Balance Money
}

func (a Account) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", a.ID)
	w.Append("name", a.Name)
	w.Optional("account_type", a.Type)
	w.Optional("bank", a.Bank)
	w.Append("balance", a.Balance.value)
	w.Optional("currency", a.Balance.Currency())
	return w.MarshalJSON()
}

func (a *Account) UnmarshalJSON(data []byte) error {
	var temp struct {
		ID       string          `json:"id"`
		Name     string          `json:"name"`
		Type     AccountType     `json:"account_type"`
		Bank     string          `json:"bank"`
		Balance  decimal.Decimal `json:"balance"`
		Currency string          `json:"currency"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	*a = Account{
		ID:      temp.ID,
		Name:    temp.Name,
		Type:    temp.Type,
		Bank:    temp.Bank,
		Balance: M(temp.Balance, temp.Currency),
	}
	return nil
}

// RecurringTransaction is a template that materializes into transactions on
// a schedule. Only income and expense recur.
type RecurringTransaction struct {
	ID          string
	Type        TxType
	Amount      Money
	Account     string
	Category    string
	Description string
	Recurrence  date.Period
	Start       date.Date
	End         date.Date // zero means open ended
	NextDue     date.Date // zero means not materialized yet
	Active      bool
	Installment string // id of the installment plan it pays, if any
}

// Validate checks the recurring transaction invariants.
func (r RecurringTransaction) Validate() error {
	switch r.Type {
	case Income, Expense:
	case Transfer:
		return fmt.Errorf("%w: recurring transaction %s cannot be a transfer", ErrInvalidTransaction, r.ID)
	default:
		return fmt.Errorf("recurring transaction %s: %w %q", r.ID, ErrUnknownType, r.Type)
	}
	if !r.Recurrence.Valid() {
		return fmt.Errorf("recurring transaction %s: %w %d", r.ID, ErrUnknownRecurrence, int(r.Recurrence))
	}
	if r.Start.IsZero() {
		return fmt.Errorf("%w: recurring transaction %s has no start date", ErrInvalidTransaction, r.ID)
	}
	if r.Amount.IsNegative() {
		return fmt.Errorf("%w: recurring transaction %s has a negative amount", ErrInvalidTransaction, r.ID)
	}
	return nil
}

// signed returns the amount with its direction on the account.
func (r RecurringTransaction) signed() Money {
	if r.Type == Expense {
		return r.Amount.Neg()
	}
	return r.Amount
}

func (r RecurringTransaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Optional("id", r.ID)
	w.Append("type", r.Type)
	w.Append("recurrence_type", r.Recurrence)
	w.Append("start_date", r.Start)
	w.Optional("end_date", r.End)
	w.Optional("next_due_date", r.NextDue)
	w.Append("account_id", r.Account)
	w.Append("amount", r.Amount.value)
	w.Optional("currency", r.Amount.Currency())
	w.Optional("category_id", r.Category)
	w.Append("description", r.Description)
	w.Append("is_active", r.Active)
	w.Optional("installment_payment_id", r.Installment)
	return w.MarshalJSON()
}

// UnmarshalJSON reads a recurring transaction, is_active defaults to true.
func (r *RecurringTransaction) UnmarshalJSON(data []byte) error {
	var temp struct {
		ID          string          `json:"id"`
		Type        string          `json:"type"`
		Recurrence  string          `json:"recurrence_type"`
		Start       date.Date       `json:"start_date"`
		End         date.Date       `json:"end_date"`
		NextDue     date.Date       `json:"next_due_date"`
		Account     string          `json:"account_id"`
		Amount      decimal.Decimal `json:"amount"`
		Currency    string          `json:"currency"`
		Category    *string         `json:"category_id"`
		Description string          `json:"description"`
		Active      *bool           `json:"is_active"`
		Installment *string         `json:"installment_payment_id"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	typ, err := ParseTxType(temp.Type)
	if err != nil {
		return err
	}
	rec, err := date.ParsePeriod(temp.Recurrence)
	if err != nil {
		return fmt.Errorf("%w %q", ErrUnknownRecurrence, temp.Recurrence)
	}
	*r = RecurringTransaction{
		ID:          temp.ID,
		Type:        typ,
		Amount:      M(temp.Amount, temp.Currency),
		Account:     temp.Account,
		Category:    deref(temp.Category),
		Description: temp.Description,
		Recurrence:  rec,
		Start:       temp.Start,
		End:         temp.End,
		NextDue:     temp.NextDue,
		Active:      temp.Active == nil || *temp.Active,
		Installment: deref(temp.Installment),
	}
	return nil
}

// Category groups expenses, it may carry a budget for any period.
type Category struct {
	ID     string
	Name   string
	Color  string
	Budget Money // zero means no budget
}

func (c Category) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", c.ID)
	w.Append("name", c.Name)
	w.Optional("color", c.Color)
	w.Optional("budget", c.Budget.value)
	w.Optional("currency", c.Budget.Currency())
	return w.MarshalJSON()
}

func (c *Category) UnmarshalJSON(data []byte) error {
	var temp struct {
		ID       string          `json:"id"`
		Name     string          `json:"name"`
		Color    string          `json:"color"`
		Budget   decimal.Decimal `json:"budget"`
		Currency string          `json:"currency"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	*c = Category{ID: temp.ID, Name: temp.Name, Color: temp.Color, Budget: M(temp.Budget, temp.Currency)}
	return nil
}
