package main

import (
	"context"
	"fmt"
	"os"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/gyeh/claimview/internal/exitcode"
	"github.com/gyeh/claimview/internal/logging"
	"github.com/gyeh/claimview/internal/model"
	"github.com/gyeh/claimview/internal/normalize"
	"github.com/gyeh/claimview/internal/source"
)

var showJSON bool

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the normalized claim summary",
	RunE:  runShow,
}

func init() {
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Print the full view model as JSON")
	rootCmd.AddCommand(showCmd)
}

// loadViewModel fetches, decodes and normalizes the configured claim document.
func loadViewModel(log zerolog.Logger) *model.ClaimViewModel {
	if err := cfg.ValidateSource(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	fetcher := source.NewFetcher(cfg.FetchTimeout, cfg.FetchMaxBytes, nil, log)
	data, err := fetcher.Fetch(context.Background(), cfg.DataURL)
	if err != nil {
		log.Error().Err(err).Msg("unable to load claim data")
		os.Exit(exitcode.FetchError)
	}
	doc, err := source.Decode(data)
	if err != nil {
		log.Error().Err(err).Msg("unable to load claim data")
		os.Exit(exitcode.ValidationError)
	}
	return normalize.Claim(doc)
}

func runShow(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat, "show")
	vm := loadViewModel(log)

	if showJSON {
		out, err := json.MarshalIndent(vm, "", "  ")
		if err != nil {
			return fmt.Errorf("encode view model: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	s := vm.ClaimSummary
	p := vm.PatientInfo
	a := vm.AuditIssues
	stats := normalize.Stats(vm)

	fmt.Printf("=== %s ===\n", normalize.PageTitle(s.ClaimID))
	fmt.Printf("Claim:        %s (%s, %s)\n", s.ClaimID, s.ClaimType, s.Status)
	fmt.Printf("Patient:      %s  DOB %s  Policy %s\n", p.Name, p.DOB, p.PolicyNumber)
	fmt.Printf("Contact:      %s  %s\n", p.Phone, p.Email)
	fmt.Println()
	fmt.Printf("Claimed:      %-14s [%s]\n", normalize.FormatCurrency(s.ClaimedAmount), s.AmountSources.ClaimedAmount)
	fmt.Printf("Bills total:  %-14s [%s]\n", normalize.FormatCurrency(s.ActualBillsTotal), s.AmountSources.ActualBillsTotal)
	fmt.Printf("Discrepancy:  %-14s [%s]\n", normalize.FormatCurrency(s.DiscrepancyAmount), s.AmountSources.DiscrepancyAmount)
	fmt.Printf("Reason:       %s\n", s.DiscrepancyReason)
	fmt.Println()
	fmt.Printf("Bills:        %d (%d NME items)\n", stats.BillCount, stats.NMEItemCount)
	fmt.Printf("Legibility:   %g issues  %s\n", a.MedicalLegibilityCount, a.LegibilitySummary)
	fmt.Printf("Violations:   %g  %s\n", a.PolicyViolationCount, a.PolicyRemarks)

	for _, b := range normalize.BillViews(vm.Bills) {
		page := "-"
		if b.Page != nil {
			page = fmt.Sprintf("p.%d", *b.Page)
		}
		fmt.Printf("\n  Bill %s  invoice %s  %s  %s  %s  %s\n",
			b.BillID, b.InvoiceNumber, b.BillDate, b.Facility, b.NetAmount, page)
		for _, it := range b.Items {
			nme := ""
			if it.IsNME {
				nme = "  NME: " + it.DeductionReason
			}
			fmt.Printf("    %-40s %-16s %12s%s\n", it.Name, it.Category, it.Amount, nme)
		}
	}
	return nil
}
