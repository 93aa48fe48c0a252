package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gyeh/claimview/internal/logging"
	"github.com/gyeh/claimview/internal/normalize"
)

var pagesCmd = &cobra.Command{
	Use:   "pages",
	Short: "Print the expanded page list of every document segment",
	RunE:  runPages,
}

func init() {
	rootCmd.AddCommand(pagesCmd)
}

func runPages(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat, "pages")
	vm := loadViewModel(log)

	segs := normalize.SegmentViews(vm.Segments)
	if len(segs) == 0 {
		fmt.Println("No document segments.")
		return nil
	}
	for _, s := range segs {
		pages := make([]string, len(s.Pages))
		for i, p := range s.Pages {
			pages[i] = strconv.Itoa(p)
		}
		fmt.Printf("%-28s %s\n", s.Label, strings.Join(pages, ", "))
	}
	fmt.Printf("\n%d segments, %d distinct pages\n", len(segs), normalize.DistinctPages(vm.Segments))
	return nil
}
