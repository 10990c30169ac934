package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	domainMember "gymdesk/internal/domain/member"
	domainPayment "gymdesk/internal/domain/payment"
)

// grid is tabular command output, rendered aligned or as CSV.
type grid struct {
	headers []string
	rows    [][]string
	// status is the index of a column painted by paint, or -1.
	status int
}

func newGrid(headers ...string) *grid {
	return &grid{headers: headers, status: -1}
}

func (g *grid) add(cells ...string) {
	g.rows = append(g.rows, cells)
}

// render writes g to w. CSV output is never colored.
func (g *grid) render(w io.Writer, asCSV bool) error {
	if asCSV {
		cw := csv.NewWriter(w)
		if err := cw.Write(g.headers); err != nil {
			return err
		}
		if err := cw.WriteAll(g.rows); err != nil {
			return err
		}
		return cw.Error()
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(g.headers, "\t"))
	for _, r := range g.rows {
		cells := r
		if g.status >= 0 && g.status < len(r) {
			cells = append([]string(nil), r...)
			cells[g.status] = paint(r[g.status])
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

// paint colors a status cell. Every status gets an escape sequence of the
// same length so tabwriter keeps the columns aligned.
func paint(status string) string {
	if color.NoColor {
		return status
	}
	var c *color.Color
	switch status {
	case string(domainMember.ExpiryExpired), string(domainPayment.StatusOverdue):
		c = color.New(color.FgRed)
	case string(domainMember.ExpiryExpiringSoon), string(domainPayment.StatusDueSoon):
		c = color.New(color.FgYellow)
	case string(domainMember.ExpiryActive), string(domainPayment.StatusOK), "Present", "Available":
		c = color.New(color.FgGreen)
	default:
		c = color.New(color.FgHiBlack)
	}
	c.EnableColor()
	return c.Sprint(status)
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// success prints a green confirmation line.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, color.GreenString(format, args...))
}
