package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"quotation-backend/internal/models"
	"quotation-backend/internal/quotation"
	"quotation-backend/internal/timeutil"

	"github.com/shopspring/decimal"
)

func rupees(d decimal.Decimal) string {
	return "₹ " + d.StringFixed(2)
}

// renderSnapshot prints the quotation header and item table, or the empty state
func renderSnapshot(w io.Writer, snap quotation.Snapshot) {
	switch snap.State {
	case quotation.StateLoading:
		fmt.Fprintln(w, "Loading...")
		return
	case quotation.StateNoData:
		fmt.Fprintln(w, "No data found")
		return
	case quotation.StateIdle:
		return
	}

	q := snap.Quotation
	fmt.Fprintf(w, "Quotation %s    Date %s\n\n", q.QuotationNumber, timeutil.FormatDate(q.Date.Time))

	stale := make(map[string]bool, len(snap.StaleTotals))
	for _, code := range snap.StaleTotals {
		stale[code] = true
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "S.No\tItem Code\tDescription\tQty\tPcs\tHigh\tMedium\tEconomical\t")
	for i, item := range q.Items {
		mark := ""
		if stale[item.ItemCode] {
			mark = "*"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\t%s\t%s\t%s\t%s\n",
			i+1, item.ItemCode, item.Description, item.Qty, item.Pcs,
			rupees(item.PricesHigh), rupees(item.PricesMedium), rupees(item.PricesEconomical), mark)
	}
	tw.Flush()

	if len(snap.StaleTotals) > 0 {
		fmt.Fprintln(w, "\n* tiers edited; totals refresh on the next load")
	}
}

// renderItem prints the pricing breakdown of one item, one column per tier
func renderItem(w io.Writer, item models.Item) {
	fmt.Fprintf(w, "%s  %s\n\n", item.ItemCode, item.Description)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	header := []string{""}
	for _, t := range models.Tiers {
		header = append(header, t.Label())
	}
	fmt.Fprintln(tw, strings.Join(header, "\t")+"\t")

	for _, fc := range item.FixedCosts() {
		row := []string{fc.Name}
		for range models.Tiers {
			row = append(row, fc.Value.StringFixed(2))
		}
		fmt.Fprintln(tw, strings.Join(row, "\t")+"\t")
	}
	for _, f := range models.Fields {
		row := []string{f.Label()}
		for _, t := range models.Tiers {
			v := item.Tier(t).Get(f)
			if v == "" {
				v = "-"
			}
			row = append(row, v)
		}
		fmt.Fprintln(tw, strings.Join(row, "\t")+"\t")
	}
	row := []string{"Total"}
	for _, t := range models.Tiers {
		row = append(row, rupees(item.Total(t)))
	}
	fmt.Fprintln(tw, strings.Join(row, "\t")+"\t")
	tw.Flush()
}

// parseAssignment splits "high.profit_margin=12.5"
func parseAssignment(arg string) (models.Tier, models.Field, string, error) {
	key, value, ok := strings.Cut(arg, "=")
	if !ok {
		return "", "", "", fmt.Errorf("%q: expected tier.field=value", arg)
	}
	tierName, fieldName, ok := strings.Cut(key, ".")
	if !ok {
		return "", "", "", fmt.Errorf("%q: expected tier.field=value", arg)
	}
	tier, err := models.ParseTier(tierName)
	if err != nil {
		return "", "", "", fmt.Errorf("%q: %w", arg, err)
	}
	field, err := models.ParseField(fieldName)
	if err != nil {
		return "", "", "", fmt.Errorf("%q: %w", arg, err)
	}
	return tier, field, value, nil
}
