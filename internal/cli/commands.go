package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/shopspring/decimal"

	apperrors "expensetracker/internal/errors"
	"expensetracker/internal/ledger"
	"expensetracker/internal/middleware"
	"expensetracker/internal/models"
	"expensetracker/internal/services"
	"expensetracker/internal/validator"
)

// --- transactions ---

// AddCmd groups the two entry commands.
type AddCmd struct {
	Expense AddExpenseCmd `cmd:"" help:"Record an expense; the amount is stored as negative."`
	Income  AddIncomeCmd  `cmd:"" help:"Record income; the amount is stored as positive."`
}

// EntryFlags are the flags shared by both entry commands.
type EntryFlags struct {
	Date        string          `help:"Transaction date (YYYY-MM-DD). Defaults to today."`
	Amount      decimal.Decimal `required:"" help:"Amount; the sign is taken from the command."`
	Category    string          `required:"" short:"c" help:"Category label."`
	Description string          `short:"d" help:"Free-text description."`
}

// AddExpenseCmd records an expense.
type AddExpenseCmd struct {
	Entry EntryFlags `embed:""`
}

// AddIncomeCmd records income.
type AddIncomeCmd struct {
	Entry EntryFlags `embed:""`
}

func (c *AddExpenseCmd) Run(app *App) error {
	return c.Entry.add(app, models.TransactionTypeExpense)
}

func (c *AddIncomeCmd) Run(app *App) error {
	return c.Entry.add(app, models.TransactionTypeIncome)
}

func (f *EntryFlags) add(app *App, txType models.TransactionType) error {
	date := f.Date
	if date == "" {
		date = validator.Now().Format(models.DateLayout)
	}
	if err := validator.CheckEntry(date, f.Amount, f.Category); err != nil {
		return err
	}

	svc, err := app.Services()
	if err != nil {
		return err
	}
	tx, err := svc.Transactions.AddTransaction(context.Background(), services.NewTransaction{
		Date:        date,
		Amount:      f.Amount,
		Category:    f.Category,
		Description: f.Description,
		Type:        txType,
	})
	if err != nil {
		return err
	}

	return app.render(view{
		Data:    tx,
		Message: fmt.Sprintf("Recorded %s #%d: %s %s on %s", tx.Type, tx.ID, money(tx.Amount), tx.Category, tx.Date),
	})
}

// ListCmd lists transactions oldest first.
type ListCmd struct {
	From     string `help:"Inclusive start date (YYYY-MM-DD)."`
	To       string `help:"Inclusive end date (YYYY-MM-DD)."`
	Category string `short:"c" help:"Only this category."`
	Type     string `enum:",income,expense" default:"" help:"Only income or expense."`
}

func (c *ListCmd) Run(app *App) error {
	svc, err := app.Services()
	if err != nil {
		return err
	}
	txs, err := svc.Transactions.GetTransactions(context.Background(), services.TransactionFilter{
		FromDate: c.From,
		ToDate:   c.To,
		Category: c.Category,
		Type:     models.TransactionType(c.Type),
	})
	if err != nil {
		return err
	}

	total := decimal.Zero
	rows := make([]table.Row, 0, len(txs))
	for _, tx := range txs {
		total = total.Add(tx.Amount)
		rows = append(rows, table.Row{tx.ID, tx.Date, signed(tx.Amount), tx.Category, tx.Type, tx.Description})
	}

	return app.render(view{
		Data:       txs,
		Header:     table.Row{"ID", "Date", "Amount", "Category", "Type", "Description"},
		Rows:       rows,
		Footer:     table.Row{"", "Total", signed(total), "", "", fmt.Sprintf("%d transactions", len(txs))},
		RightAlign: []int{3},
	})
}

// RemoveCmd deletes a transaction.
type RemoveCmd struct {
	ID uint `arg:"" help:"Transaction id."`
}

func (c *RemoveCmd) Run(app *App) error {
	svc, err := app.Services()
	if err != nil {
		return err
	}
	deleted, err := svc.Transactions.DeleteTransaction(context.Background(), c.ID)
	if err != nil {
		return err
	}

	msg := fmt.Sprintf("Deleted transaction #%d", c.ID)
	if !deleted {
		msg = fmt.Sprintf("No transaction #%d", c.ID)
	}
	return app.render(view{
		Data:    map[string]any{"id": c.ID, "deleted": deleted},
		Message: msg,
	})
}

// ExportCmd writes every transaction to a file.
type ExportCmd struct {
	Path   string `arg:"" type:"path" help:"Destination file."`
	Format string `short:"f" help:"csv or xlsx. Defaults to the file extension, then csv."`
}

func (c *ExportCmd) Run(app *App) error {
	format := c.Format
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(c.Path)), ".")
		if format != ledger.FormatXLSX {
			format = ledger.FormatCSV
		}
	}

	svc, err := app.Services()
	if err != nil {
		return err
	}
	if err := svc.Transactions.ExportToFile(context.Background(), c.Path, format); err != nil {
		return err
	}
	return app.render(view{
		Data:    map[string]string{"path": c.Path, "format": format},
		Message: fmt.Sprintf("Exported transactions to %s (%s)", c.Path, format),
	})
}

// CategoriesCmd lists every category used by a transaction or budget.
type CategoriesCmd struct{}

func (c *CategoriesCmd) Run(app *App) error {
	svc, err := app.Services()
	if err != nil {
		return err
	}
	categories, err := svc.Categories.ListCategories(context.Background())
	if err != nil {
		return err
	}

	rows := make([]table.Row, 0, len(categories))
	for _, name := range categories {
		rows = append(rows, table.Row{name})
	}
	return app.render(view{Data: categories, Header: table.Row{"Category"}, Rows: rows})
}

// --- budgets ---

// BudgetCmd groups the budget commands.
type BudgetCmd struct {
	Set     BudgetSetCmd     `cmd:"" help:"Create or replace a category's monthly limit."`
	Get     BudgetGetCmd     `cmd:"" help:"Show a category's monthly limit (0 when none)."`
	List    BudgetListCmd    `cmd:"" help:"List every budget."`
	Remove  BudgetRemoveCmd  `cmd:"" help:"Delete a category's budget."`
	Check   BudgetCheckCmd   `cmd:"" help:"Report whether a category is over budget."`
	Alerts  BudgetAlertsCmd  `cmd:"" help:"List budgets whose remaining amount is at or below a threshold."`
	Summary BudgetSummaryCmd `cmd:"" help:"All-time spending against every budget."`
}

type BudgetSetCmd struct {
	Category string          `arg:"" help:"Category."`
	Limit    decimal.Decimal `arg:"" help:"Monthly limit; must be positive."`
}

func (c *BudgetSetCmd) Run(app *App) error {
	svc, err := app.Services()
	if err != nil {
		return err
	}
	budget, err := svc.Budgets.SetBudget(context.Background(), c.Category, c.Limit)
	if err != nil {
		return err
	}
	return app.render(view{
		Data:    budget,
		Message: fmt.Sprintf("Budget for %s set to %s", budget.Category, money(budget.MonthlyLimit)),
	})
}

type BudgetGetCmd struct {
	Category string `arg:"" help:"Category."`
}

func (c *BudgetGetCmd) Run(app *App) error {
	svc, err := app.Services()
	if err != nil {
		return err
	}
	limit, err := svc.Budgets.GetBudget(context.Background(), c.Category)
	if err != nil {
		return err
	}
	return app.render(view{
		Data:    map[string]any{"category": c.Category, "monthly_limit": limit},
		Message: fmt.Sprintf("%s: %s", c.Category, money(limit)),
	})
}

type BudgetListCmd struct{}

func (c *BudgetListCmd) Run(app *App) error {
	svc, err := app.Services()
	if err != nil {
		return err
	}
	budgets, err := svc.Budgets.ListBudgets(context.Background())
	if err != nil {
		return err
	}

	rows := make([]table.Row, 0, len(budgets))
	for _, b := range budgets {
		rows = append(rows, table.Row{b.Category, money(b.MonthlyLimit)})
	}
	return app.render(view{
		Data:       budgets,
		Header:     table.Row{"Category", "Monthly Limit"},
		Rows:       rows,
		RightAlign: []int{2},
	})
}

type BudgetRemoveCmd struct {
	Category string `arg:"" help:"Category."`
}

func (c *BudgetRemoveCmd) Run(app *App) error {
	svc, err := app.Services()
	if err != nil {
		return err
	}
	deleted, err := svc.Budgets.RemoveBudget(context.Background(), c.Category)
	if err != nil {
		return err
	}

	msg := "Removed budget for " + c.Category
	if !deleted {
		msg = "No budget for " + c.Category
	}
	return app.render(view{
		Data:    map[string]any{"category": c.Category, "deleted": deleted},
		Message: msg,
	})
}

type BudgetCheckCmd struct {
	Category string `arg:"" help:"Category."`
}

func (c *BudgetCheckCmd) Run(app *App) error {
	svc, err := app.Services()
	if err != nil {
		return err
	}
	status, err := svc.Budgets.CheckBudget(context.Background(), c.Category)
	if err != nil {
		return err
	}

	var msg string
	switch {
	case !status.HasBudget:
		msg = fmt.Sprintf("%s has no budget", status.Category)
	case status.IsOverBudget:
		msg = text.FgRed.Sprintf("%s is OVER budget by %s", status.Category, money(status.Remaining.Neg()))
	default:
		msg = fmt.Sprintf("%s is within budget, %s remaining", status.Category, money(status.Remaining))
	}
	return app.render(view{Data: status, Message: msg})
}

type BudgetAlertsCmd struct {
	Threshold decimal.Decimal `default:"0" help:"Alert when the remaining amount is at or below this value."`
}

func (c *BudgetAlertsCmd) Run(app *App) error {
	svc, err := app.Services()
	if err != nil {
		return err
	}
	alerts, err := svc.Budgets.BudgetAlerts(context.Background(), c.Threshold)
	if err != nil {
		return err
	}
	if len(alerts) == 0 {
		return app.render(view{Data: alerts, Message: "No budget alerts"})
	}
	return app.render(summaryView(alerts))
}

type BudgetSummaryCmd struct{}

func (c *BudgetSummaryCmd) Run(app *App) error {
	svc, err := app.Services()
	if err != nil {
		return err
	}
	summary, err := svc.Budgets.SpendingSummary(context.Background())
	if err != nil {
		return err
	}
	return app.render(summaryView(summary))
}

func summaryView(rows []ledger.SpendingSummary) view {
	out := make([]table.Row, 0, len(rows))
	for _, r := range rows {
		out = append(out, table.Row{r.Category, money(r.MonthlyLimit), signed(r.Expense), signed(r.Remaining)})
	}
	return view{
		Data:       rows,
		Header:     table.Row{"Category", "Limit", "Spent", "Remaining"},
		Rows:       out,
		RightAlign: []int{2, 3, 4},
	}
}

// --- reports ---

// ReportCmd groups the read-only reports.
type ReportCmd struct {
	Monthly  ReportMonthlyCmd  `cmd:"" help:"Income, expense and net for a month."`
	Category ReportCategoryCmd `cmd:"" help:"Per-category totals for a month."`
	Budget   ReportBudgetCmd   `cmd:"" help:"Budgets against a month's spending."`
	Trend    ReportTrendCmd    `cmd:"" help:"Monthly totals for a year."`
	Months   ReportMonthsCmd   `cmd:"" help:"Months that have transactions."`
}

type ReportMonthlyCmd struct {
	Month string `arg:"" help:"Month (YYYY-MM)."`
}

func (c *ReportMonthlyCmd) Run(app *App) error {
	svc, err := app.Services()
	if err != nil {
		return err
	}
	r, err := svc.Reports.MonthlyReport(context.Background(), c.Month)
	if err != nil {
		return err
	}
	return app.render(view{
		Data:       r,
		Header:     table.Row{"Month", "Income", "Expense", "Net"},
		Rows:       []table.Row{{r.Month, money(r.Income), signed(r.Expense), signed(r.Net)}},
		RightAlign: []int{2, 3, 4},
	})
}

type ReportCategoryCmd struct {
	Month string `arg:"" help:"Month (YYYY-MM)."`
}

func (c *ReportCategoryCmd) Run(app *App) error {
	svc, err := app.Services()
	if err != nil {
		return err
	}
	report, err := svc.Reports.CategoryReport(context.Background(), c.Month)
	if err != nil {
		return err
	}

	rows := make([]table.Row, 0, len(report))
	for _, r := range report {
		rows = append(rows, table.Row{r.Category, money(r.Income), signed(r.Expense), signed(r.Net)})
	}
	return app.render(view{
		Data:       report,
		Header:     table.Row{"Category", "Income", "Expense", "Net"},
		Rows:       rows,
		RightAlign: []int{2, 3, 4},
	})
}

type ReportBudgetCmd struct {
	Month string `arg:"" help:"Month (YYYY-MM)."`
}

func (c *ReportBudgetCmd) Run(app *App) error {
	svc, err := app.Services()
	if err != nil {
		return err
	}
	report, err := svc.Reports.BudgetReport(context.Background(), c.Month)
	if err != nil {
		return err
	}

	rows := make([]table.Row, 0, len(report))
	for _, r := range report {
		rows = append(rows, table.Row{r.Category, money(r.Limit), signed(r.Spent), signed(r.Remaining)})
	}
	return app.render(view{
		Data:       report,
		Header:     table.Row{"Category", "Limit", "Spent", "Remaining"},
		Rows:       rows,
		RightAlign: []int{2, 3, 4},
	})
}

type ReportTrendCmd struct {
	Year string `arg:"" help:"Year (YYYY)."`
}

func (c *ReportTrendCmd) Run(app *App) error {
	svc, err := app.Services()
	if err != nil {
		return err
	}
	trend, err := svc.Reports.MonthlyTrend(context.Background(), c.Year)
	if err != nil {
		return err
	}

	rows := make([]table.Row, 0, len(trend))
	for _, r := range trend {
		rows = append(rows, table.Row{r.Month, money(r.Income), signed(r.Expense), signed(r.Net)})
	}
	return app.render(view{
		Data:       trend,
		Header:     table.Row{"Month", "Income", "Expense", "Net"},
		Rows:       rows,
		RightAlign: []int{2, 3, 4},
	})
}

type ReportMonthsCmd struct{}

func (c *ReportMonthsCmd) Run(app *App) error {
	svc, err := app.Services()
	if err != nil {
		return err
	}
	months, err := svc.Reports.AvailableMonths(context.Background())
	if err != nil {
		return err
	}

	rows := make([]table.Row, 0, len(months))
	for _, m := range months {
		rows = append(rows, table.Row{m})
	}
	return app.render(view{Data: months, Header: table.Row{"Month"}, Rows: rows})
}

// --- maintenance ---

// TokenCmd issues a bearer token for the API. It does not touch the ledger.
type TokenCmd struct {
	Secret string        `env:"AUTH_SECRET" required:"" help:"Signing secret; must match the API's AUTH_SECRET."`
	TTL    time.Duration `name:"ttl" env:"AUTH_TOKEN_TTL" default:"720h" help:"Token lifetime."`
}

func (c *TokenCmd) Run(app *App) error {
	token, err := middleware.GenerateToken(c.Secret, c.TTL)
	if err != nil {
		return err
	}
	return app.render(view{
		Data:    map[string]any{"token": token, "expires_in": c.TTL.String()},
		Message: token,
	})
}

// ResetCmd wipes the ledger.
type ResetCmd struct {
	Yes bool `help:"Confirm deleting every transaction and budget."`
}

func (c *ResetCmd) Run(app *App) error {
	if !c.Yes {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "refusing to reset the ledger without --yes")
	}
	svc, err := app.Services()
	if err != nil {
		return err
	}
	if err := svc.Transactions.Reset(context.Background()); err != nil {
		return err
	}
	return app.render(view{
		Data:    map[string]bool{"reset": true},
		Message: "Ledger cleared",
	})
}
