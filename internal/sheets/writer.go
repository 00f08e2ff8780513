package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/Veraticus/finpilot/internal/common"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Tab titles.
const (
	BudgetTab       = "Budget"
	TransactionsTab = "Transactions"
	GoalsTab        = "Goals"
)

var tabs = []string{BudgetTab, TransactionsTab, GoalsTab}

// Writer implements ReportWriter for Google Sheets.
type Writer struct {
	service *sheets.Service
	logger  *slog.Logger
	config  Config
	written string
}

// NewWriter creates a new Google Sheets report writer.
func NewWriter(ctx context.Context, config Config, logger *slog.Logger) (*Writer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if logger == nil {
		logger = common.ComponentLogger("sheets")
	}

	service, err := createSheetsService(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Writer{
		config:  config,
		service: service,
		logger:  logger,
	}, nil
}

// Write replaces the contents of the three export tabs with snap.
func (w *Writer) Write(ctx context.Context, snap Snapshot) error {
	w.logger.Info("starting export",
		"categories", len(snap.Categories),
		"transactions", len(snap.Transactions),
		"goals", len(snap.Goals))

	spreadsheetID, sheetIDs, err := w.getOrCreateSpreadsheet(ctx)
	if err != nil {
		return fmt.Errorf("failed to get spreadsheet: %w", err)
	}

	retryOpts := common.RetryOptions{
		MaxAttempts:  w.config.RetryAttempts,
		InitialDelay: w.config.RetryDelay,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}
	if retryOpts.MaxAttempts == 0 {
		retryOpts.MaxAttempts = 1
	}

	data := map[string][][]any{
		BudgetTab:       prepareBudgetData(snap),
		TransactionsTab: prepareTransactionData(snap),
		GoalsTab:        prepareGoalData(snap),
	}

	for _, tab := range tabs {
		values := data[tab]
		err := common.WithRetry(ctx, func() error {
			if clearErr := w.clearSheet(ctx, spreadsheetID, tab); clearErr != nil {
				return clearErr
			}
			return w.writeData(ctx, spreadsheetID, tab, values)
		}, retryOpts)
		if err != nil {
			return fmt.Errorf("failed to write %s tab: %w", tab, err)
		}
	}

	if w.config.EnableFormatting {
		err = common.WithRetry(ctx, func() error {
			return w.applyFormatting(ctx, spreadsheetID, sheetIDs)
		}, retryOpts)
		if err != nil {
			// Formatting is cosmetic; the data is already written.
			w.logger.Warn("failed to apply formatting", "error", err)
		}
	}

	w.written = spreadsheetID
	w.logger.Info("export completed",
		"spreadsheet_id", spreadsheetID,
		"url", SpreadsheetURL(spreadsheetID))
	return nil
}

// SpreadsheetID is the spreadsheet the last successful Write went to.
func (w *Writer) SpreadsheetID() string {
	return w.written
}

// SpreadsheetURL returns the browser URL of a spreadsheet.
func SpreadsheetURL(id string) string {
	return "https://docs.google.com/spreadsheets/d/" + id
}

func createSheetsService(ctx context.Context, config Config) (*sheets.Service, error) {
	var tokenSource oauth2.TokenSource

	if config.ServiceAccountPath != "" {
		jsonKey, err := os.ReadFile(config.ServiceAccountPath)
		if err != nil {
			return nil, fmt.Errorf("unable to read service account key file: %w", err)
		}

		jwtConfig, err := google.JWTConfigFromJSON(jsonKey, sheets.SpreadsheetsScope)
		if err != nil {
			return nil, fmt.Errorf("unable to parse service account key: %w", err)
		}
		tokenSource = jwtConfig.TokenSource(ctx)
	} else {
		client := oauthConfig(config.ClientID, config.ClientSecret, "")
		tokenSource = client.TokenSource(ctx, &oauth2.Token{
			RefreshToken: config.RefreshToken,
			TokenType:    "Bearer",
		})
	}

	srv, err := sheets.NewService(ctx, option.WithHTTPClient(oauth2.NewClient(ctx, tokenSource)))
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}
	return srv, nil
}

// getOrCreateSpreadsheet returns the spreadsheet id and the sheet id of every
// export tab, adding missing tabs to an existing spreadsheet.
func (w *Writer) getOrCreateSpreadsheet(ctx context.Context) (string, map[string]int64, error) {
	if w.config.SpreadsheetID == "" {
		spreadsheet := &sheets.Spreadsheet{
			Properties: &sheets.SpreadsheetProperties{
				Title:    w.config.SpreadsheetName,
				TimeZone: w.config.TimeZone,
			},
		}
		for _, tab := range tabs {
			spreadsheet.Sheets = append(spreadsheet.Sheets, &sheets.Sheet{
				Properties: &sheets.SheetProperties{Title: tab},
			})
		}

		created, err := w.service.Spreadsheets.Create(spreadsheet).Context(ctx).Do()
		if err != nil {
			return "", nil, fmt.Errorf("unable to create spreadsheet: %w", err)
		}
		w.logger.Info("created new spreadsheet", "id", created.SpreadsheetId, "url", created.SpreadsheetUrl)
		return created.SpreadsheetId, sheetIDsByTitle(created.Sheets), nil
	}

	existing, err := w.service.Spreadsheets.Get(w.config.SpreadsheetID).Context(ctx).Do()
	if err != nil {
		return "", nil, fmt.Errorf("unable to access spreadsheet %s: %w", w.config.SpreadsheetID, err)
	}
	ids := sheetIDsByTitle(existing.Sheets)

	var requests []*sheets.Request
	for _, tab := range missingTabs(ids) {
		requests = append(requests, &sheets.Request{
			AddSheet: &sheets.AddSheetRequest{Properties: &sheets.SheetProperties{Title: tab}},
		})
	}
	if len(requests) == 0 {
		return w.config.SpreadsheetID, ids, nil
	}

	resp, err := w.service.Spreadsheets.BatchUpdate(w.config.SpreadsheetID,
		&sheets.BatchUpdateSpreadsheetRequest{Requests: requests}).Context(ctx).Do()
	if err != nil {
		return "", nil, fmt.Errorf("unable to add tabs: %w", err)
	}
	for _, reply := range resp.Replies {
		if reply.AddSheet != nil && reply.AddSheet.Properties != nil {
			ids[reply.AddSheet.Properties.Title] = reply.AddSheet.Properties.SheetId
		}
	}
	return w.config.SpreadsheetID, ids, nil
}

func sheetIDsByTitle(list []*sheets.Sheet) map[string]int64 {
	ids := make(map[string]int64, len(list))
	for _, s := range list {
		if s.Properties != nil {
			ids[s.Properties.Title] = s.Properties.SheetId
		}
	}
	return ids
}

func missingTabs(ids map[string]int64) []string {
	var missing []string
	for _, tab := range tabs {
		if _, ok := ids[tab]; !ok {
			missing = append(missing, tab)
		}
	}
	return missing
}

func (w *Writer) clearSheet(ctx context.Context, spreadsheetID, tab string) error {
	_, err := w.service.Spreadsheets.Values.Clear(spreadsheetID, tab+"!A:Z", &sheets.ClearValuesRequest{}).Context(ctx).Do()
	return err
}

func prepareBudgetData(snap Snapshot) [][]any {
	values := make([][]any, 0, 8+len(snap.Categories))
	title := "Budget Snapshot"
	if snap.UserName != "" {
		title = snap.UserName + "'s Budget"
	}
	values = append(values,
		[]any{title, snap.GeneratedAt.Format("Jan 2, 2006 15:04")},
		[]any{},
		[]any{"Salary", snap.Salary.InexactFloat64()},
		[]any{"Total Budget", snap.TotalBudget.InexactFloat64()},
		[]any{"Total Spent", snap.TotalSpent.InexactFloat64()},
		[]any{},
		[]any{"Category", "Allocated", "Spent", "Remaining"},
	)
	for _, c := range snap.Categories {
		values = append(values, []any{
			c.Icon + " " + c.Name,
			c.Allocated.InexactFloat64(),
			c.Spent.InexactFloat64(),
			c.Remaining.InexactFloat64(),
		})
	}
	return values
}

func prepareTransactionData(snap Snapshot) [][]any {
	values := make([][]any, 0, 1+len(snap.Transactions))
	values = append(values, []any{"Date", "Category", "Type", "Amount", "Description"})
	for _, t := range snap.Transactions {
		date := ""
		if !t.Date.IsZero() {
			date = t.Date.Format("2006-01-02")
		}
		values = append(values, []any{
			date,
			t.Category,
			t.Kind,
			t.Amount.InexactFloat64(),
			t.Description,
		})
	}
	return values
}

func prepareGoalData(snap Snapshot) [][]any {
	values := make([][]any, 0, 1+len(snap.Goals))
	values = append(values, []any{"Goal", "Target", "Saved", "Progress", "Deadline", "Monthly", "Expected Return", "Suggestion"})
	for _, g := range snap.Goals {
		deadline := ""
		if g.Deadline != nil {
			deadline = g.Deadline.Format("2006-01-02")
		}
		values = append(values, []any{
			g.Name,
			g.Target.InexactFloat64(),
			g.Current.InexactFloat64(),
			fmt.Sprintf("%.0f%%", g.Progress*100),
			deadline,
			g.Monthly.InexactFloat64(),
			g.ExpectedReturn.InexactFloat64(),
			g.Suggestion,
		})
	}
	return values
}

func (w *Writer) writeData(ctx context.Context, spreadsheetID, tab string, values [][]any) error {
	for i := 0; i < len(values); i += w.config.BatchSize {
		end := i + w.config.BatchSize
		if end > len(values) {
			end = len(values)
		}

		batch := values[i:end]
		rangeStr := fmt.Sprintf("%s!A%d", tab, i+1)
		_, err := w.service.Spreadsheets.Values.Update(spreadsheetID, rangeStr, &sheets.ValueRange{Values: batch}).
			ValueInputOption("USER_ENTERED").
			Context(ctx).
			Do()
		if err != nil {
			return fmt.Errorf("failed to write batch starting at row %d: %w", i+1, err)
		}

		w.logger.Debug("wrote batch", "tab", tab, "start_row", i+1, "rows", len(batch))
	}
	return nil
}

// currencyColumns lists the currency column ranges [start, end) and the
// header row of each tab.
var currencyColumns = map[string]struct {
	header     int64
	start, end int64
}{
	BudgetTab:       {header: 6, start: 1, end: 4},
	TransactionsTab: {header: 0, start: 3, end: 4},
	GoalsTab:        {header: 0, start: 1, end: 3},
}

func (w *Writer) applyFormatting(ctx context.Context, spreadsheetID string, sheetIDs map[string]int64) error {
	var requests []*sheets.Request
	for _, tab := range tabs {
		id, ok := sheetIDs[tab]
		if !ok {
			continue
		}
		cols := currencyColumns[tab]
		requests = append(requests,
			&sheets.Request{
				RepeatCell: &sheets.RepeatCellRequest{
					Range: &sheets.GridRange{SheetId: id, StartRowIndex: cols.header, EndRowIndex: cols.header + 1},
					Cell: &sheets.CellData{UserEnteredFormat: &sheets.CellFormat{
						TextFormat: &sheets.TextFormat{Bold: true},
					}},
					Fields: "userEnteredFormat.textFormat",
				},
			},
			&sheets.Request{
				RepeatCell: &sheets.RepeatCellRequest{
					Range: &sheets.GridRange{SheetId: id, StartColumnIndex: cols.start, EndColumnIndex: cols.end},
					Cell: &sheets.CellData{UserEnteredFormat: &sheets.CellFormat{
						NumberFormat: &sheets.NumberFormat{Type: "CURRENCY", Pattern: "$#,##0.00"},
					}},
					Fields: "userEnteredFormat.numberFormat",
				},
			},
			&sheets.Request{
				UpdateSheetProperties: &sheets.UpdateSheetPropertiesRequest{
					Properties: &sheets.SheetProperties{
						SheetId:        id,
						GridProperties: &sheets.GridProperties{FrozenRowCount: cols.header + 1},
					},
					Fields: "gridProperties.frozenRowCount",
				},
			},
			&sheets.Request{
				AutoResizeDimensions: &sheets.AutoResizeDimensionsRequest{
					Dimensions: &sheets.DimensionRange{SheetId: id, Dimension: "COLUMNS", StartIndex: 0, EndIndex: 8},
				},
			},
		)
	}

	_, err := w.service.Spreadsheets.BatchUpdate(spreadsheetID,
		&sheets.BatchUpdateSpreadsheetRequest{Requests: requests}).Context(ctx).Do()
	return err
}

var _ ReportWriter = (*Writer)(nil)
