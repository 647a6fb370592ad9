package cmd

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/etnz/finance"
	"github.com/google/subcommands"
)

const testAccounts = `{"id":"A","name":"Checking","balance":1200}
`

const testTransactions = `{"type":"expense","transaction_date":"2024-02-10","account_id":"A","amount":100}
{"type":"income","transaction_date":"2024-03-01","account_id":"A","amount":2000}
{"type":"expense","transaction_date":"2024-03-04","account_id":"A","amount":700}
`

// writeDataDir creates a data folder holding files.
func writeDataDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

// runCommand executes c on the data folder dir and returns what it printed
// for the JSONPath query.
func runCommand(t *testing.T, c subcommands.Command, dir, query string, args ...string) (subcommands.ExitStatus, string) {
	t.Helper()
	oldDir, oldQuery, oldStdout := *dataDir, *queryFlag, stdout
	t.Cleanup(func() { *dataDir, *queryFlag, stdout = oldDir, oldQuery, oldStdout })

	var out bytes.Buffer
	*dataDir, *queryFlag, stdout = dir, query, &out
	f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	c.SetFlags(f)
	if err := f.Parse(args); err != nil {
		t.Fatalf("parsing %v: %v", args, err)
	}
	status := c.Execute(context.Background(), f)
	return status, out.String()
}

func TestStatsCmd(t *testing.T) {
	dir := writeDataDir(t, map[string]string{
		finance.AccountsFile:     testAccounts,
		finance.TransactionsFile: testTransactions,
	})
	testCases := []struct {
		query string
		want  string
	}{
		{"$.income.amount", "2000\n"},
		{"$.expenses.amount", "700\n"},
		{"$.net.amount", "1300\n"},
		{"$.opening.amount", "-100\n"},
		{"$.closing.amount", "1200\n"},
		{"$.opening.currency", "\"EUR\"\n"},
	}
	for _, tc := range testCases {
		t.Run(tc.query, func(t *testing.T) {
			status, got := runCommand(t, &statsCmd{}, dir, tc.query, "-d", "2024-03-15", "-p", "monthly")
			if status != subcommands.ExitSuccess {
				t.Fatalf("stats exited with %v", status)
			}
			if got != tc.want {
				t.Errorf("stats -q %s = %q, want %q", tc.query, got, tc.want)
			}
		})
	}
}

func TestStatsCmd_Markdown(t *testing.T) {
	dir := writeDataDir(t, map[string]string{
		finance.AccountsFile:     testAccounts,
		finance.TransactionsFile: testTransactions,
	})
	status, got := runCommand(t, &statsCmd{}, dir, "", "-d", "2024-03-15")
	if status != subcommands.ExitSuccess {
		t.Fatalf("stats exited with %v", status)
	}
	if !bytes.Contains([]byte(got), []byte("Checking")) {
		t.Errorf("stats printed\n%s\nwant the account name", got)
	}
}

func TestStatsCmd_CurrencyMismatch(t *testing.T) {
	dir := writeDataDir(t, map[string]string{
		finance.AccountsFile: `{"id":"A","name":"Checking","balance":1200,"currency":"EUR"}
{"id":"B","name":"Travel","balance":50,"currency":"USD"}
`,
	})
	status, got := runCommand(t, &statsCmd{}, dir, "$.net.amount", "-d", "2024-03-15")
	if status != subcommands.ExitFailure || got != "" {
		t.Errorf("stats = %v, %q, want a failure", status, got)
	}
}

func TestChartCmd(t *testing.T) {
	dir := writeDataDir(t, map[string]string{
		finance.AccountsFile:     testAccounts,
		finance.TransactionsFile: testTransactions,
	})
	testCases := []struct {
		name  string
		args  []string
		query string
		want  string
	}{
		{"granularity", []string{"-d", "2024-03-15"}, "$.granularity", "\"monthly\"\n"},
		{"buckets", []string{"-d", "2024-03-15"}, "$.buckets[*].label", "[\n  \"Jan\",\n  \"Feb\",\n  \"Mar\",\n  \"Apr\",\n  \"May\",\n  \"Jun\",\n  \"Jul\",\n  \"Aug\",\n  \"Sep\",\n  \"Oct\",\n  \"Nov\",\n  \"Dec\"\n]\n"},
		{"february", []string{"-d", "2024-03-15"}, "$.buckets[1].expenses.amount", "100\n"},
		{"march", []string{"-d", "2024-03-15"}, "$.buckets[2].net.amount", "1300\n"},
		{"daily", []string{"-a", "checking", "-d", "2024-03-15", "-p", "monthly"}, "$.granularity", "\"daily\"\n"},
		{"day", []string{"-d", "2024-03-15", "-p", "monthly"}, "$.buckets[3].expenses.amount", "700\n"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, got := runCommand(t, &chartCmd{}, dir, tc.query, tc.args...)
			if status != subcommands.ExitSuccess {
				t.Fatalf("chart %v exited with %v", tc.args, status)
			}
			if got != tc.want {
				t.Errorf("chart %v -q %s = %q, want %q", tc.args, tc.query, got, tc.want)
			}
		})
	}
}

func TestChartCmd_UnknownAccount(t *testing.T) {
	dir := writeDataDir(t, map[string]string{finance.AccountsFile: testAccounts})
	status, _ := runCommand(t, &chartCmd{}, dir, "$.granularity", "-a", "savings")
	if status != subcommands.ExitUsageError {
		t.Errorf("chart -a savings exited with %v, want %v", status, subcommands.ExitUsageError)
	}
}
