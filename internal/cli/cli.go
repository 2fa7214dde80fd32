// Package cli implements the tracker command line on top of the service
// layer shared with the HTTP API.
package cli

import (
	"fmt"
	"io"

	"github.com/alecthomas/kong"

	"expensetracker/internal/database"
	"expensetracker/internal/logger"
	"expensetracker/internal/services"
)

// Globals are the flags accepted by every command.
type Globals struct {
	Output     string `short:"o" enum:"table,json,yaml" default:"table" help:"Output format (table, json, yaml)."`
	DBDriver   string `name:"db-driver" env:"DB_DRIVER" enum:"sqlite,postgres" default:"sqlite" help:"Database driver."`
	SQLitePath string `name:"sqlite-path" env:"SQLITE_PATH" default:"resources/data.db" help:"SQLite database file."`
	Verbose    bool   `short:"v" help:"Log service activity to stderr."`
}

// CLI is the command grammar.
type CLI struct {
	Globals

	Add        AddCmd        `cmd:"" help:"Record an expense or income."`
	List       ListCmd       `cmd:"" help:"List transactions."`
	Remove     RemoveCmd     `cmd:"" help:"Delete a transaction by id."`
	Export     ExportCmd     `cmd:"" help:"Export every transaction to a CSV or XLSX file."`
	Categories CategoriesCmd `cmd:"" help:"List categories in use."`
	Budget     BudgetCmd     `cmd:"" help:"Manage and evaluate monthly budgets."`
	Report     ReportCmd     `cmd:"" help:"Monthly, category, budget and trend reports."`
	Token      TokenCmd      `cmd:"" help:"Issue an API bearer token."`
	Reset      ResetCmd      `cmd:"" help:"Delete every transaction and budget."`
}

// Opener connects to the ledger described by the global flags. The returned
// function releases the connection.
type Opener func(g Globals) (*services.Services, func() error, error)

// App is bound to every command's Run method.
type App struct {
	Out    io.Writer
	Format string

	globals Globals
	open    Opener
	svc     *services.Services
	closeFn func() error
}

// Services opens the ledger on first use.
func (a *App) Services() (*services.Services, error) {
	if a.svc != nil {
		return a.svc, nil
	}
	svc, closeFn, err := a.open(a.globals)
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}
	a.svc, a.closeFn = svc, closeFn
	return svc, nil
}

// Close releases the ledger connection if one was opened.
func (a *App) Close() error {
	if a.closeFn == nil {
		return nil
	}
	return a.closeFn()
}

// Parser builds the kong parser over grammar.
func Parser(grammar *CLI, stdout, stderr io.Writer, options ...kong.Option) (*kong.Kong, error) {
	options = append([]kong.Option{
		kong.Name("tracker"),
		kong.Description("Personal expense tracker: transactions, monthly budgets and reports."),
		kong.UsageOnError(),
		kong.Writers(stdout, stderr),
	}, options...)
	return kong.New(grammar, options...)
}

// Execute parses args and runs the selected command against the ledger
// returned by open.
func Execute(args []string, stdout, stderr io.Writer, open Opener, options ...kong.Option) error {
	var grammar CLI
	parser, err := Parser(&grammar, stdout, stderr, options...)
	if err != nil {
		return err
	}
	kctx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	if grammar.Verbose {
		logger.Init("development")
	} else {
		logger.Init("cli")
	}

	app := &App{Out: stdout, Format: grammar.Output, globals: grammar.Globals, open: open}
	defer app.Close()

	return kctx.Run(app)
}

// OpenDatabase is the production Opener: it connects with the configured
// driver and applies pending migrations.
func OpenDatabase(g Globals) (*services.Services, func() error, error) {
	cfg, err := database.NewConfig()
	if err != nil {
		return nil, nil, err
	}
	cfg.Driver = g.DBDriver
	cfg.SQLitePath = g.SQLitePath

	manager, err := database.NewManager(cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := manager.Migrate(); err != nil {
		_ = manager.Close()
		return nil, nil, err
	}
	return services.New(manager.DB()), manager.Close, nil
}
