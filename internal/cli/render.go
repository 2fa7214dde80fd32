package cli

import (
	"encoding/json"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// view is one command's result. Data feeds the json and yaml encoders;
// Message and the rows feed the table renderer.
type view struct {
	Data       any
	Message    string
	Header     table.Row
	Rows       []table.Row
	Footer     table.Row
	RightAlign []int
}

func (a *App) render(v view) error {
	switch a.Format {
	case "json":
		enc := json.NewEncoder(a.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(v.Data)
	case "yaml":
		enc := yaml.NewEncoder(a.Out)
		enc.SetIndent(2)
		if err := enc.Encode(v.Data); err != nil {
			return err
		}
		return enc.Close()
	}

	if v.Message != "" {
		fmt.Fprintln(a.Out, v.Message)
	}
	if v.Header == nil {
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(a.Out)
	t.AppendHeader(v.Header)
	t.AppendRows(v.Rows)
	if v.Footer != nil {
		t.AppendSeparator()
		t.AppendFooter(v.Footer)
	}
	t.SetStyle(table.StyleRounded)
	t.Style().Format.Header = text.FormatDefault
	t.Style().Format.Footer = text.FormatDefault

	configs := make([]table.ColumnConfig, 0, len(v.RightAlign))
	for _, col := range v.RightAlign {
		configs = append(configs, table.ColumnConfig{Number: col, Align: text.AlignRight, AlignFooter: text.AlignRight})
	}
	t.SetColumnConfigs(configs)

	t.Render()
	return nil
}

// money formats an amount with two decimals.
func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// signed colours negative amounts red.
func signed(d decimal.Decimal) string {
	if d.IsNegative() {
		return text.FgRed.Sprint(money(d))
	}
	return money(d)
}
