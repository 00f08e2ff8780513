// Package ofx reads OFX/QFX statement downloads as import drafts.
package ofx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/Veraticus/finpilot/internal/importer"
	"github.com/aclindsa/ofxgo"
)

var (
	severityPattern = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	// An SGML opening tag alone on its line with no closing bracket.
	unclosedTagPattern = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

var merchantPrefixes = []string{
	"POS PURCHASE ",
	"PURCHASE AUTHORIZED ON ",
	"DEBIT CARD PURCHASE ",
	"ACH DEBIT ",
	"CHECK CARD ",
	"VISA PURCHASE ",
	"MC PURCHASE ",
	"DEBIT PURCHASE ",
}

var genericDescriptions = map[string]bool{
	"DEBIT":           true,
	"CREDIT":          true,
	"PURCHASE":        true,
	"PAYMENT":         true,
	"POS TRANSACTION": true,
	"CARD PURCHASE":   true,
}

// statement is one account's transaction list, bank or credit card.
type statement struct {
	account      string
	transactions []ofxgo.Transaction
}

// Parser converts OFX statements to drafts.
type Parser struct {
	logger *slog.Logger
}

// NewParser creates a new OFX parser.
func NewParser() *Parser {
	return &Parser{logger: slog.Default().With("component", "ofx")}
}

// Parse reads an OFX/QFX document. Debits (negative amounts) become
// expenses and credits become income; zero-amount lines are dropped.
func (p *Parser) Parse(ctx context.Context, r io.Reader) ([]importer.Draft, error) {
	stmts, err := p.statements(r)
	if err != nil {
		return nil, err
	}

	var drafts []importer.Draft
	for _, stmt := range stmts {
		for _, tx := range stmt.transactions {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			amount, _ := tx.TrnAmt.Float64()
			d, ok := importer.FromSignedAmount(tx.DtPosted.Time, describe(tx), amount, false)
			if !ok {
				continue
			}
			d.ExternalID = string(tx.FiTID)
			drafts = append(drafts, d)
		}
	}

	p.logger.Info("Parsed OFX file",
		"drafts", len(drafts),
		"statements", len(stmts))
	return drafts, nil
}

// Accounts lists the account ids in an OFX document, sorted.
func (p *Parser) Accounts(r io.Reader) ([]string, error) {
	stmts, err := p.statements(r)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var accounts []string
	for _, stmt := range stmts {
		if stmt.account == "" || seen[stmt.account] {
			continue
		}
		seen[stmt.account] = true
		accounts = append(accounts, stmt.account)
	}
	sort.Strings(accounts)
	return accounts, nil
}

// FileSource returns an importer source reading the OFX file at path.
func (p *Parser) FileSource(path string) importer.Source {
	return importer.SourceFunc(func(ctx context.Context) ([]importer.Draft, error) {
		f, err := os.Open(path) // #nosec G304 -- user-supplied statement path
		if err != nil {
			return nil, fmt.Errorf("failed to open OFX file: %w", err)
		}
		defer func() { _ = f.Close() }()
		return p.Parse(ctx, f)
	})
}

func (p *Parser) statements(r io.Reader) ([]statement, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(preprocess(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var stmts []statement
	for _, msg := range resp.Bank {
		if s, ok := msg.(*ofxgo.StatementResponse); ok && s.BankTranList != nil {
			stmts = append(stmts, statement{account: string(s.BankAcctFrom.AcctID), transactions: s.BankTranList.Transactions})
		}
	}
	for _, msg := range resp.CreditCard {
		if s, ok := msg.(*ofxgo.CCStatementResponse); ok && s.BankTranList != nil {
			stmts = append(stmts, statement{account: string(s.CCAcctFrom.AcctID), transactions: s.BankTranList.Transactions})
		}
	}
	return stmts, nil
}

// preprocess repairs formatting that banks commonly get wrong.
func preprocess(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")
	content = severityPattern.ReplaceAllStringFunc(content, strings.ToUpper)
	return unclosedTagPattern.ReplaceAllString(content, "$1>")
}

// describe picks the most readable description for a statement line.
func describe(tx ofxgo.Transaction) string {
	if tx.CheckNum != "" {
		return "Check " + string(tx.CheckNum)
	}
	if tx.Payee != nil && tx.Payee.Name != "" {
		return string(tx.Payee.Name)
	}

	name := string(tx.Name)
	if tx.Memo != "" && genericDescriptions[strings.ToUpper(name)] {
		name = string(tx.Memo)
	}
	name = strings.TrimSpace(name)

	upper := strings.ToUpper(name)
	for _, prefix := range merchantPrefixes {
		if strings.HasPrefix(upper, prefix) {
			name = name[len(prefix):]
			break
		}
	}

	// "MM/DD " card posting dates.
	if len(name) > 5 && name[2] == '/' && name[5] == ' ' {
		name = strings.TrimSpace(name[6:])
	}
	return name
}
