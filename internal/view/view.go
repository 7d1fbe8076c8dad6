// Package view turns records into table rows. Passwords are masked for
// display; every row carries its copy and delete actions bound to the
// record's own values, so callers never look a record up again by index.
package view

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/Makepad-fr/securix/internal/model"
	"github.com/Makepad-fr/securix/internal/ui"
)

// Placeholder is shown instead of rows when there is nothing stored.
const Placeholder = "No Data to show"

// Headers of the three data columns.
var Headers = []string{"Website", "Username", "Password"}

type ActionKind int

const (
	CopyWebsite ActionKind = iota
	CopyUsername
	CopyPassword
	Delete
)

func (k ActionKind) String() string {
	switch k {
	case CopyWebsite:
		return "copy website"
	case CopyUsername:
		return "copy username"
	case CopyPassword:
		return "copy password"
	case Delete:
		return "delete"
	}
	return fmt.Sprintf("ActionKind(%d)", int(k))
}

// Action is a control attached to a row. Value is the raw string it acts
// on: the text to copy, or the website to delete.
type Action struct {
	Kind  ActionKind
	Value string
}

type Row struct {
	Website  string
	Username string
	Masked   string

	actions [4]Action
}

// Action returns the row's control of the given kind.
func (r Row) Action(kind ActionKind) Action { return r.actions[kind] }

// Cells are the visible column values.
func (r Row) Cells() []string { return []string{r.Website, r.Username, r.Masked} }

type Table struct {
	Rows  []Row
	Empty bool
}

// Build renders records into rows, in order.
func Build(records []model.Record) Table {
	if len(records) == 0 {
		return Table{Empty: true}
	}
	rows := make([]Row, 0, len(records))
	for _, rec := range records {
		rows = append(rows, Row{
			Website:  rec.Website,
			Username: rec.Username,
			Masked:   rec.Masked(),
			actions: [4]Action{
				CopyWebsite:  {Kind: CopyWebsite, Value: rec.Website},
				CopyUsername: {Kind: CopyUsername, Value: rec.Username},
				CopyPassword: {Kind: CopyPassword, Value: rec.Password},
				Delete:       {Kind: Delete, Value: rec.Website},
			},
		})
	}
	return Table{Rows: rows}
}

// WriteText writes a tab-aligned table, or the placeholder line.
func WriteText(w io.Writer, t Table) error {
	if t.Empty {
		_, err := fmt.Fprintln(w, Placeholder)
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\n", "WEBSITE", "USERNAME", "PASSWORD")
	for _, r := range t.Rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Website, r.Username, r.Masked)
	}
	return tw.Flush()
}

// Pretty renders a bordered table with the current theme.
func Pretty(t Table) string {
	th := ui.Current()
	if t.Empty {
		return ui.Panel(th.Muted.Render(Placeholder))
	}
	tbl := table.New().
		Border(th.Border).
		BorderStyle(lipgloss.NewStyle().Foreground(th.BorderColor)).
		Headers(Headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return th.Header
			}
			return th.Cell
		})
	for _, r := range t.Rows {
		tbl.Row(r.Cells()...)
	}
	return tbl.Render()
}
