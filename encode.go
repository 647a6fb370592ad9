package finance

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// Data file names, in the data folder.
const (
	AccountsFile     = "accounts.jsonl"
	TransactionsFile = "transactions.jsonl"
	RecurringFile    = "recurring.jsonl"
	CategoriesFile   = "categories.jsonl"
	InstallmentsFile = "installments.jsonl"
)

// idSpace is the namespace of the ids derived from record contents.
var idSpace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/etnz/finance"))

// DecodeLedger reads every data file in dir. Missing files are empty.
//
// Records without an id get one derived from their content, so that they keep
// the same id from one run to the next.
func DecodeLedger(dir string) (*Ledger, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("cannot open data folder: %w", err)
	}
	l := new(Ledger)
	var err error
	if l.Accounts, err = decodeFile(filepath.Join(dir, AccountsFile), func(a *Account) *string { return &a.ID }); err != nil {
		return nil, err
	}
	if l.Transactions, err = decodeFile(filepath.Join(dir, TransactionsFile), func(t *Transaction) *string { return &t.ID }); err != nil {
		return nil, err
	}
	if l.Recurring, err = decodeFile(filepath.Join(dir, RecurringFile), func(r *RecurringTransaction) *string { return &r.ID }); err != nil {
		return nil, err
	}
	if l.Categories, err = decodeFile(filepath.Join(dir, CategoriesFile), func(c *Category) *string { return &c.ID }); err != nil {
		return nil, err
	}
	if l.Installments, err = decodeFile(filepath.Join(dir, InstallmentsFile), func(p *InstallmentPlan) *string { return &p.ID }); err != nil {
		return nil, err
	}
	// keep the files order for same day transactions.
	slices.SortStableFunc(l.Transactions, func(a, b Transaction) int { return a.Date.Compare(b.Date) })
	return l, nil
}

// decodeFile reads one JSON object per line. Errors carry the file and line.
func decodeFile[T any](path string, idOf func(*T) *string) ([]T, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	items, err := decode(f, idOf)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", path, err)
	}
	return items, nil
}

func decode[T any](r io.Reader, idOf func(*T) *string) ([]T, error) {
	var items []T
	seen := make(map[string]int) // identical lines
	scanner := bufio.NewScanner(r)
	for n := 1; scanner.Scan(); n++ {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		var item T
		if err := json.Unmarshal(line, &item); err != nil {
			return nil, fmt.Errorf("%d: %w", n, err)
		}
		if id := idOf(&item); *id == "" {
			k := seen[string(line)]
			seen[string(line)]++
			*id = uuid.NewSHA1(idSpace, fmt.Appendf(nil, "%s#%d", line, k)).String()
		}
		items = append(items, item)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}
	return items, nil
}

// EncodeTransactions writes txs in chronological order, one JSON object per
// line with a stable field order.
func EncodeTransactions(w io.Writer, txs []Transaction) error {
	txs = slices.Clone(txs)
	sortChronologically(txs, Accounting)
	return encode(w, txs)
}

func encode[T any](w io.Writer, items []T) error {
	for _, item := range items {
		data, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("failed to marshal record: %w", err)
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}
	return nil
}

// EncodeLedger writes every data file of l in dir, in canonical form.
func EncodeLedger(dir string, l *Ledger) error {
	write := func(name string, fn func(io.Writer) error) error {
		var buf bytes.Buffer
		if err := fn(&buf); err != nil {
			return err
		}
		if buf.Len() == 0 {
			if _, err := os.Stat(filepath.Join(dir, name)); errors.Is(err, fs.ErrNotExist) {
				return nil // do not create empty files
			}
		}
		return os.WriteFile(filepath.Join(dir, name), buf.Bytes(), 0o644)
	}
	return errors.Join(
		write(AccountsFile, func(w io.Writer) error { return encode(w, l.Accounts) }),
		write(TransactionsFile, func(w io.Writer) error { return EncodeTransactions(w, l.Transactions) }),
		write(RecurringFile, func(w io.Writer) error { return encode(w, l.Recurring) }),
		write(CategoriesFile, func(w io.Writer) error { return encode(w, l.Categories) }),
		write(InstallmentsFile, func(w io.Writer) error { return encode(w, l.Installments) }),
	)
}
