package service

import (
	"fmt"
	"sort"

	"github.com/manifoldco/promptui"
	"github.com/pterm/pterm"

	"github.com/ludo-technologies/deadwood/domain"
)

const dashboardTopN = 15

// Dashboard renders an AnalysisReport as an interactive terminal
// overview and drives the curated deletion flow: select candidates,
// confirm, hand the chosen paths off to the trash engine.
type Dashboard struct{}

// NewDashboard creates a new interactive dashboard.
func NewDashboard() *Dashboard {
	return &Dashboard{}
}

// Render prints the report's summary, entries, and findings panes to
// the terminal, each capped to the top N with a "(none)" fallback.
func (d *Dashboard) Render(report *domain.AnalysisReport) {
	pterm.DefaultBigText.WithLetters(pterm.NewLettersFromStringWithStyle("deadwood", pterm.NewStyle(pterm.FgGreen))).Render()

	summary := pterm.TableData{
		{"Root", report.Root},
		{"Source files", fmt.Sprintf("%d", report.TotalSourceFiles)},
		{"Asset files", fmt.Sprintf("%d", report.TotalAssetFiles)},
		{"Reachable files", fmt.Sprintf("%d", report.TotalReachableFiles)},
		{"Entry points", fmt.Sprintf("%d", report.TotalEntries)},
		{"High confidence", fmt.Sprintf("%t", report.HighConfidence)},
	}
	pterm.DefaultSection.Println("Summary")
	if out, err := pterm.DefaultTable.WithData(summary).Srender(); err == nil {
		pterm.Println(out)
	}

	d.renderList("Warnings", report.Warnings)
	d.renderList("Entry points", report.Entries)

	if report.LowConfidenceShown {
		d.renderList("Unused files", report.UnusedFiles)
		d.renderList("Unused assets", report.UnusedAssets)
		d.renderList("Unused exports", unusedExportLabels(report.UnusedExports))
	}
	d.renderList("Unused dependencies", report.UnusedDependencies)
}

func (d *Dashboard) renderList(title string, items []string) {
	pterm.DefaultSection.Println(title)
	if len(items) == 0 {
		pterm.Println("(none)")
		return
	}

	shown := items
	truncated := 0
	if len(shown) > dashboardTopN {
		truncated = len(shown) - dashboardTopN
		shown = shown[:dashboardTopN]
	}

	var bullets []pterm.BulletListItem
	for _, item := range shown {
		bullets = append(bullets, pterm.BulletListItem{Level: 0, Text: item})
	}
	_ = pterm.DefaultBulletList.WithItems(bullets).Render()

	if truncated > 0 {
		pterm.Printf("... and %d more\n", truncated)
	}
}

func unusedExportLabels(exports []domain.UnusedExport) []string {
	labels := make([]string, 0, len(exports))
	for _, e := range exports {
		labels = append(labels, fmt.Sprintf("%s: %s", e.File, e.Export))
	}
	sort.Strings(labels)
	return labels
}

// SelectFindings lets the user pick a subset of candidate paths for
// deletion via an interactive multiselect.
func (d *Dashboard) SelectFindings(candidates []string) ([]string, error) {
	if len(candidates) == 0 {
		return nil, nil
	}

	selected, err := pterm.DefaultInteractiveMultiselect.
		WithOptions(candidates).
		WithDefaultText("Select findings to move to trash").
		Show()
	if err != nil {
		return nil, domain.NewOutputError("interactive selection failed", err)
	}
	return selected, nil
}

// Confirm asks the user a yes/no question via a promptui confirm
// prompt, mirroring cmd/deadwood's init wizard.
func Confirm(label string) (bool, error) {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}

	_, err := prompt.Run()
	if err != nil {
		if err == promptui.ErrAbort {
			return false, nil
		}
		return false, domain.NewOutputError("confirmation prompt failed", err)
	}
	return true, nil
}
