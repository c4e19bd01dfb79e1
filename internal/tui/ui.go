package tui

import (
	"context"
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/example/ramtop/internal/proc"
)

const (
	tableTitle      = "Top Processes"
	reportPageName  = "report"
	noticePageName  = "notice"
	checkboxChecked = "[x]"
	checkboxEmpty   = "[ ]"

	helpText = "space: select  r: refresh  x: terminate selected  s: summary  q: quit"
)

// Backend supplies process data and termination behaviour to the UI. The UI
// itself is pure presentation: every decision about signals, accounting and
// logging lives behind this interface.
type Backend interface {
	// List returns the ranked process samples to display.
	List() ([]proc.ProcessSample, error)
	// Terminate runs the termination batch for the given pids and returns
	// the summary report text.
	Terminate(pids []int32) string
	// Summary returns the current summary report without terminating
	// anything.
	Summary() string
}

// UI is the interactive process table backed by tview.
type UI struct {
	app     *tview.Application
	pages   *tview.Pages
	table   *tview.Table
	status  *tview.TextView
	backend Backend

	mu      sync.Mutex
	samples []proc.ProcessSample
	checked map[int32]bool
	busy    bool

	stopOnce sync.Once
}

// New constructs the UI over the supplied backend.
func New(backend Backend) *UI {
	app := tview.NewApplication()

	table := tview.NewTable().SetFixed(1, 0).SetSelectable(true, false)
	table.SetBorder(true).SetTitle(tableTitle)

	status := tview.NewTextView().SetDynamicColors(true)
	status.SetText(helpText)

	flex := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(table, 0, 1, true).
		AddItem(status, 1, 0, false)

	pages := tview.NewPages().AddPage("main", flex, true, true)

	ui := &UI{
		app:     app,
		pages:   pages,
		table:   table,
		status:  status,
		backend: backend,
		checked: make(map[int32]bool),
	}

	app.SetRoot(pages, true)
	app.SetInputCapture(ui.handleKey)

	return ui
}

// Run refreshes the table once and drives the application loop until Stop
// is invoked or the context is cancelled.
func (u *UI) Run(ctx context.Context) error {
	if err := u.refresh(); err != nil {
		return err
	}

	go func() {
		<-ctx.Done()
		u.Stop()
	}()

	return u.app.Run()
}

// Stop terminates the application loop.
func (u *UI) Stop() {
	u.stopOnce.Do(func() {
		u.app.Stop()
	})
}

func (u *UI) handleKey(event *tcell.EventKey) *tcell.EventKey {
	if u.pages.HasPage(reportPageName) || u.pages.HasPage(noticePageName) {
		return event
	}

	u.mu.Lock()
	busy := u.busy
	u.mu.Unlock()
	if busy {
		// A termination batch runs to completion; input waits.
		return nil
	}

	switch event.Key() {
	case tcell.KeyRune:
		switch event.Rune() {
		case ' ':
			u.toggleSelected()
			return nil
		case 'r', 'R':
			if err := u.refresh(); err != nil {
				u.showNotice(fmt.Sprintf("Refresh failed: %v", err))
			}
			return nil
		case 'x', 'X':
			u.terminateChecked()
			return nil
		case 's', 'S':
			u.showReport(u.backend.Summary())
			return nil
		case 'q', 'Q':
			go u.Stop()
			return nil
		}
	}
	return event
}

// toggleSelected flips the checkbox on the highlighted row.
func (u *UI) toggleSelected() {
	row, _ := u.table.GetSelection()

	u.mu.Lock()
	idx := row - 1
	if idx < 0 || idx >= len(u.samples) {
		u.mu.Unlock()
		return
	}
	pid := u.samples[idx].PID
	u.checked[pid] = !u.checked[pid]
	u.mu.Unlock()

	u.redrawTable()
}

// refresh rebuilds the sample list from the backend. Checkbox state is kept
// only for pids that survive into the new listing.
func (u *UI) refresh() error {
	samples, err := u.backend.List()
	if err != nil {
		return err
	}

	u.mu.Lock()
	u.samples = samples
	kept := make(map[int32]bool, len(u.checked))
	for _, s := range samples {
		if u.checked[s.PID] {
			kept[s.PID] = true
		}
	}
	u.checked = kept
	u.mu.Unlock()

	u.redrawTable()
	return nil
}

func (u *UI) terminateChecked() {
	u.mu.Lock()
	if u.busy {
		u.mu.Unlock()
		return
	}
	pids := selectedPIDs(u.samples, u.checked)
	if len(pids) == 0 {
		u.mu.Unlock()
		u.showNotice("No processes were selected for termination.")
		return
	}
	u.busy = true
	u.mu.Unlock()

	u.status.SetText("Terminating selected processes...")

	go func() {
		report := u.backend.Terminate(pids)

		samples, listErr := u.backend.List()

		u.app.QueueUpdateDraw(func() {
			u.mu.Lock()
			u.busy = false
			u.checked = make(map[int32]bool)
			if listErr == nil {
				u.samples = samples
			}
			u.mu.Unlock()

			u.status.SetText(helpText)
			u.redrawTable()
			u.showReport(report)
		})
	}()
}

// redrawTable repaints the process table from the current samples. Callers
// must not hold u.mu.
func (u *UI) redrawTable() {
	u.mu.Lock()
	samples := u.samples
	checked := make(map[int32]bool, len(u.checked))
	for pid, on := range u.checked {
		checked[pid] = on
	}
	u.mu.Unlock()

	u.table.Clear()

	headers := []string{"SEL", "PID", "PROCESS", "RAM (MB)", "% MEM"}
	for col, header := range headers {
		cell := tview.NewTableCell(header).
			SetSelectable(false).
			SetAttributes(tcell.AttrBold)
		u.table.SetCell(0, col, cell)
	}

	for row, s := range samples {
		values := []string{
			checkboxLabel(checked[s.PID]),
			fmt.Sprintf("%d", s.PID),
			s.Name,
			formatRAM(s.ResidentBytes),
			fmt.Sprintf("%.1f", s.MemoryPercent),
		}
		for col, value := range values {
			cell := tview.NewTableCell(value)
			if col == 2 {
				cell = cell.SetExpansion(1)
			} else {
				cell = cell.SetAlign(tview.AlignRight)
			}
			u.table.SetCell(row+1, col, cell)
		}
	}

	if u.table.GetRowCount() > 1 {
		row, _ := u.table.GetSelection()
		if row < 1 || row >= u.table.GetRowCount() {
			u.table.Select(1, 0)
		}
	}
}

// showReport presents the summary text in a dismissable overlay.
func (u *UI) showReport(text string) {
	view := tview.NewTextView().SetText(text)
	view.SetBorder(true).SetTitle("Operation Complete")
	view.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch {
		case event.Key() == tcell.KeyEscape,
			event.Key() == tcell.KeyEnter,
			event.Key() == tcell.KeyRune && (event.Rune() == 'q' || event.Rune() == 'Q'):
			u.pages.RemovePage(reportPageName)
			u.app.SetFocus(u.table)
			return nil
		}
		return event
	})

	grid := tview.NewGrid().
		SetColumns(0, 76, 0).
		SetRows(0, 30, 0).
		AddItem(view, 1, 1, 1, 1, 0, 0, true)

	u.pages.RemovePage(reportPageName)
	u.pages.AddPage(reportPageName, grid, true, true)
	u.app.SetFocus(view)
}

func (u *UI) showNotice(message string) {
	modal := tview.NewModal().
		SetText(message).
		AddButtons([]string{"OK"}).
		SetDoneFunc(func(buttonIndex int, buttonLabel string) {
			u.pages.RemovePage(noticePageName)
			u.app.SetFocus(u.table)
		})

	u.pages.RemovePage(noticePageName)
	u.pages.AddPage(noticePageName, modal, true, true)
}

// selectedPIDs returns the checked pids in display order.
func selectedPIDs(samples []proc.ProcessSample, checked map[int32]bool) []int32 {
	pids := make([]int32, 0, len(checked))
	for _, s := range samples {
		if checked[s.PID] {
			pids = append(pids, s.PID)
		}
	}
	return pids
}

func checkboxLabel(on bool) string {
	if on {
		return checkboxChecked
	}
	return checkboxEmpty
}

func formatRAM(bytes uint64) string {
	return fmt.Sprintf("%.1f", float64(bytes)/(1024*1024))
}
