package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/ukydev/fleet-records/internal/calculator"
	"github.com/ukydev/fleet-records/internal/controller"
	"github.com/ukydev/fleet-records/internal/models"
)

var (
	titleColor   = color.New(color.Bold)
	headerColor  = color.New(color.FgCyan, color.Bold)
	summaryColor = color.New(color.FgGreen)
)

// TableTitle is the heading printed above the vehicle table.
func TableTitle(org *models.Organization) string {
	return org.Name + " / " + org.Fleet.Name()
}

// WriteTable prints rows as an aligned table. The row at selected, if any,
// is marked with an asterisk.
func WriteTable(w io.Writer, title string, rows []controller.DisplayRow, selected int) error {
	if _, err := titleColor.Fprintln(w, title); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := headerColor.Fprintln(tw, "\t#\tType\tBrand\tModel\tPrice\tWeight (kg)\tSpecs"); err != nil {
		return err
	}
	for i, r := range rows {
		mark := ""
		if i == selected {
			mark = "*"
		}
		if _, err := fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			mark, i+1, r.Type, r.Brand, r.Model,
			models.FormatNumber(r.BasePrice), models.FormatNumber(r.CurbWeight), r.Extra,
		); err != nil {
			return err
		}
	}
	if len(rows) == 0 {
		if _, err := fmt.Fprintln(tw, "\t\t(no vehicles)"); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// WriteSummary prints the summary line.
func WriteSummary(w io.Writer, s calculator.Summary) error {
	_, err := summaryColor.Fprintln(w, s.String())
	return err
}

// Report is the machine readable listing printed by `list --output json`.
type Report struct {
	Organization string                  `json:"organization"`
	Fleet        string                  `json:"fleet"`
	Vehicles     []controller.DisplayRow `json:"vehicles"`
	Summary      calculator.Summary      `json:"summary"`
	SummaryText  string                  `json:"summary_text"`
}

// WriteJSON prints the fleet listing as indented JSON.
func WriteJSON(w io.Writer, c *controller.Controller) error {
	org := c.Organization()
	report := Report{
		Organization: org.Name,
		Fleet:        org.Fleet.Name(),
		Vehicles:     c.DisplayRows(),
		Summary:      c.Summary(),
		SummaryText:  c.SummaryText(),
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
