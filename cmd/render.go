package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/helloteeco/Edge-sub001/internal/comps"
	"github.com/helloteeco/Edge-sub001/internal/dataset"
	"github.com/helloteeco/Edge-sub001/internal/scoring"
)

var (
	strongColor  = color.New(color.FgGreen, color.Bold) // A+ / A
	solidColor   = color.New(color.FgGreen)             // B+ / B
	cautionColor = color.New(color.FgYellow)            // C / D
	avoidColor   = color.New(color.FgRed, color.Bold)   // F
)

// gradeLabel colors a grade by tier for terminal output.
func gradeLabel(g scoring.Grade) string {
	switch g {
	case scoring.GradeAPlus, scoring.GradeA:
		return strongColor.Sprint(string(g))
	case scoring.GradeBPlus, scoring.GradeB:
		return solidColor.Sprint(string(g))
	case scoring.GradeC, scoring.GradeD:
		return cautionColor.Sprint(string(g))
	default:
		return avoidColor.Sprint(string(g))
	}
}

// renderMarketsTable prints scored markets best first.
func renderMarketsTable(scored []dataset.CityScore) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header([]string{"Rank", "Market", "State", "Score", "Grade", "Verdict", "Revenue", "Price"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for i, cs := range scored {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			cs.City.Name,
			cs.City.StateCode,
			strconv.Itoa(cs.Breakdown.TotalScore),
			gradeLabel(cs.Breakdown.Grade),
			string(cs.Breakdown.Verdict),
			fmt.Sprintf("$%.0f/mo", cs.City.MonthlyRevenue),
			fmt.Sprintf("$%.0f", cs.City.MedianHomePrice),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// renderBreakdown prints one market's factor-by-factor score.
func renderBreakdown(city dataset.City, b scoring.Breakdown, reg dataset.Regulation) error {
	fmt.Printf("%s, %s: %s (%d/100, %s)\n\n",
		city.Name, city.StateCode, gradeLabel(b.Grade), b.TotalScore, b.Verdict)

	table := tablewriter.NewWriter(os.Stdout)
	table.Header([]string{"Factor", "Score", "Max", "Rating"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	data := [][]string{
		{"Cash-on-Cash", strconv.Itoa(b.CashOnCash.Score), strconv.Itoa(b.CashOnCash.MaxScore),
			fmt.Sprintf("%s (%.1f%%)", b.CashOnCash.Rating, b.CashOnCash.Value)},
		{"Affordability", strconv.Itoa(b.Affordability.Score), strconv.Itoa(b.Affordability.MaxScore), b.Affordability.Rating},
		{"Year-Round Income", strconv.Itoa(b.YearRoundIncome.Score), strconv.Itoa(b.YearRoundIncome.MaxScore), b.YearRoundIncome.Rating},
		{"Landlord Friendly", strconv.Itoa(b.LandlordFriendly.Score), strconv.Itoa(b.LandlordFriendly.MaxScore), b.LandlordFriendly.Rating},
		{"Room to Grow", strconv.Itoa(b.RoomToGrow.Score), strconv.Itoa(b.RoomToGrow.MaxScore), b.RoomToGrow.Rating},
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Printf("\nRegulation: %s", reg.Legality)
	if reg.PermitDifficulty != "" {
		fmt.Printf(" (permits: %s)", reg.PermitDifficulty)
	}
	fmt.Println()
	if reg.Summary != "" {
		fmt.Println(reg.Summary)
	}
	return nil
}

// renderStatesTable prints state aggregates best first.
func renderStatesTable(states []dataset.StateScore) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header([]string{"Rank", "State", "Score", "Grade", "Verdict", "Markets"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for i, s := range states {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			s.Name,
			strconv.Itoa(s.Score),
			gradeLabel(s.Grade),
			string(s.Verdict),
			strconv.Itoa(s.CityCount),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// renderCompsTable prints a ranking result: summary stats, then the comps.
func renderCompsTable(result comps.Result) error {
	fmt.Printf("%d of %d listings matched; avg $%d/night at %d%% occupancy, $%d/yr ($%d/mo)\n\n",
		result.FilteredListings, result.TotalListings,
		result.AvgNightRate, result.AvgOccupancy,
		result.AvgAnnualRevenue, result.MonthlyRevenue)

	table := tablewriter.NewWriter(os.Stdout)
	table.Header([]string{"#", "Listing", "BR", "BA", "Guests", "Rate", "Occ", "Annual", "Miles", "Relevance"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for i, c := range result.Comparables {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			c.Name,
			strconv.Itoa(c.Bedrooms),
			fmt.Sprintf("%.1f", c.Bathrooms),
			strconv.Itoa(c.Accommodates),
			fmt.Sprintf("$%.0f", c.NightPrice),
			fmt.Sprintf("%.0f%%", c.Occupancy),
			fmt.Sprintf("$%d", c.AnnualRevenue),
			fmt.Sprintf("%.1f", c.Distance),
			fmt.Sprintf("%.1f", c.RelevanceScore),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
