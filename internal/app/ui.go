package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"yashubustudio/admatrix/admatrix"
)

const logDebounceInterval = 150 * time.Millisecond

type uiState struct {
	service *admatrix.Service
	cfg     admatrix.Config
	capture *logCapture

	w            fyne.Window
	input        *widget.Entry
	log          *widget.Entry
	status       *widget.Label
	progress     *widget.ProgressBar
	rulesSummary *widget.Label
	resTbl       *widget.Table
	columns      []tableColumn

	rowsMu sync.RWMutex
	rows   []admatrix.Result

	// loaded holds the ads of the last opened file until the entry is edited.
	loaded []string

	statusBind   binding.String
	logBind      binding.String
	progressBind binding.Float
	logUpdateCh  chan struct{}

	classifyBtn *widget.Button
	exportBtn   *widget.Button
	loadBtn     *widget.Button
	rulesBtn    *widget.Button
}

func buildUI(a fyne.App, svc *admatrix.Service, cfg admatrix.Config, capture *logCapture) *uiState {
	u := &uiState{service: svc, cfg: cfg, capture: capture}
	u.w = a.NewWindow("AdMatrix Analyzer")

	u.statusBind = binding.NewString()
	_ = u.statusBind.Set("Ready")
	u.progressBind = binding.NewFloat()
	u.logBind = binding.NewString()
	u.startLogUpdater()
	capture.setOnChange(u.requestLogFlush)

	u.input = widget.NewMultiLineEntry()
	u.input.SetPlaceHolder("Paste ad texts here (one ad per line)")
	u.input.OnChanged = func(string) { u.loaded = nil }

	u.log = widget.NewEntryWithData(u.logBind)
	u.log.MultiLine = true
	u.log.Wrapping = fyne.TextWrapWord
	u.log.Disable()

	u.status = widget.NewLabelWithData(u.statusBind)
	u.progress = widget.NewProgressBarWithData(u.progressBind)
	u.progress.Hide()
	u.rulesSummary = widget.NewLabel("")

	u.classifyBtn = widget.NewButtonWithIcon("Classify", theme.ConfirmIcon(), func() { u.onClassify() })
	u.exportBtn = widget.NewButtonWithIcon("Export", theme.DocumentSaveIcon(), func() { u.onExport() })
	u.loadBtn = widget.NewButtonWithIcon("Load file", theme.FolderOpenIcon(), func() { u.onLoadFile() })
	u.rulesBtn = widget.NewButtonWithIcon("Load rules", theme.SettingsIcon(), func() { u.onLoadRules() })

	u.columns = makeColumns()
	u.resTbl = widget.NewTable(
		func() (int, int) {
			u.rowsMu.RLock()
			defer u.rowsMu.RUnlock()
			return len(u.rows) + 1, len(u.columns)
		},
		func() fyne.CanvasObject {
			lbl := widget.NewLabel("")
			lbl.Truncation = fyne.TextTruncateEllipsis
			return lbl
		},
		func(id widget.TableCellID, obj fyne.CanvasObject) {
			lbl := obj.(*widget.Label)
			if id.Row == 0 {
				lbl.TextStyle = fyne.TextStyle{Bold: true}
				lbl.SetText(u.columns[id.Col].Title)
				return
			}
			lbl.TextStyle = fyne.TextStyle{}
			u.rowsMu.RLock()
			defer u.rowsMu.RUnlock()
			rowIdx := id.Row - 1
			if rowIdx >= len(u.rows) {
				lbl.SetText("")
				return
			}
			lbl.SetText(u.columns[id.Col].Render(u.rows[rowIdx]))
		},
	)
	for i, col := range u.columns {
		u.resTbl.SetColumnWidth(i, col.Width)
	}

	controls := container.NewGridWithColumns(4, u.classifyBtn, u.exportBtn, u.loadBtn, u.rulesBtn)
	left := container.NewVBox(
		widget.NewLabelWithStyle("Ad texts", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewStack(u.input),
		controls,
		widget.NewSeparator(),
		u.progress,
		u.status,
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Rules", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		u.rulesSummary,
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Log", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewStack(u.log),
	)

	split := container.NewHSplit(left, u.resTbl)
	split.Offset = 0.33

	u.w.SetContent(split)
	u.w.Resize(fyne.NewSize(1280, 780))
	u.updateRulesSummary()
	return u
}

func (u *uiState) setBusy(b bool) {
	fyne.Do(func() {
		for _, btn := range []*widget.Button{u.classifyBtn, u.exportBtn, u.loadBtn, u.rulesBtn} {
			if b {
				btn.Disable()
			} else {
				btn.Enable()
			}
		}
	})
}

func (u *uiState) startLogUpdater() {
	u.logUpdateCh = make(chan struct{}, 1)
	go u.logUpdateLoop()
}

func (u *uiState) requestLogFlush() {
	select {
	case u.logUpdateCh <- struct{}{}:
	default:
	}
}

func (u *uiState) logUpdateLoop() {
	timer := time.NewTimer(logDebounceInterval)
	if !timer.Stop() {
		<-timer.C
	}
	for {
		select {
		case <-u.logUpdateCh:
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(logDebounceInterval)
		case <-timer.C:
			_ = u.logBind.Set(u.capture.String())
		}
	}
}

func (u *uiState) setStatus(text string) {
	_ = u.statusBind.Set(text)
}

func (u *uiState) updateRulesSummary() {
	source := u.service.RulesFile()
	if source == "" {
		source = "built-in"
	}
	rules := u.service.Classifier().Rules()
	parts := make([]string, 0, len(admatrix.Dimensions))
	for _, dim := range admatrix.Dimensions {
		parts = append(parts, fmt.Sprintf("%s:%d", dim, len(rules.Table(dim).Rules())))
	}
	u.rulesSummary.SetText(fmt.Sprintf("Source: %s / %s / workers:%d", source, strings.Join(parts, " "), u.cfg.Workers))
}

func (u *uiState) onClassify() {
	lines := adsToClassify(u.loaded, u.input.Text)
	if len(lines) == 0 {
		dialog.ShowInformation("Info", "No ad text to classify", u.w)
		return
	}
	total := len(lines)
	fyne.Do(func() {
		u.progress.Min = 0
		u.progress.Max = float64(total)
		u.progress.Show()
	})
	_ = u.progressBind.Set(0)
	u.setStatus("Classifying...")
	u.setBusy(true)
	start := time.Now()

	go func(entries []string) {
		rows, err := u.service.ClassifyAll(context.Background(), entries, u.cfg.Workers, func(done, total int) {
			_ = u.progressBind.Set(float64(done))
			u.setStatus(fmt.Sprintf("Classifying %d/%d", done, total))
		})
		u.setBusy(false)
		fyne.Do(func() { u.progress.Hide() })
		if err != nil {
			fyne.Do(func() { dialog.ShowError(err, u.w) })
			u.setStatus("Error")
			return
		}
		u.rowsMu.Lock()
		u.rows = rows
		u.rowsMu.Unlock()
		fyne.Do(func() { u.resTbl.Refresh() })
		ok, failed := summarizeResults(rows)
		u.setStatus(fmt.Sprintf("Done: %d classified, %d failed (%.1fs)", ok, failed, time.Since(start).Seconds()))
	}(lines)
}

func (u *uiState) onExport() {
	u.rowsMu.RLock()
	rows := append([]admatrix.Result(nil), u.rows...)
	u.rowsMu.RUnlock()
	if len(rows) == 0 {
		dialog.ShowInformation("Info", "Nothing to export yet", u.w)
		return
	}
	fd := dialog.NewFileSave(func(uc fyne.URIWriteCloser, err error) {
		if err != nil || uc == nil {
			return
		}
		defer uc.Close()
		format := admatrix.FormatFromPath(uc.URI().Path())
		if err := admatrix.WriteResults(uc, format, rows); err != nil {
			dialog.ShowError(err, u.w)
			return
		}
		u.setStatus(fmt.Sprintf("Exported %d rows to %s", len(rows), filepath.Base(uc.URI().Path())))
	}, u.w)
	fd.SetFileName("analyzed_output.csv")
	fd.Show()
}

func (u *uiState) onLoadFile() {
	fd := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil || rc == nil {
			return
		}
		path := rc.URI().Path()
		rc.Close()
		header, err := admatrix.ReadHeader(path)
		if err != nil {
			dialog.ShowError(err, u.w)
			return
		}
		if len(header) == 0 {
			u.loadAds(path, "")
			return
		}
		u.chooseColumn(path, header)
	}, u.w)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".txt", ".csv", ".tsv", ".xlsx"}))
	fd.Show()
}

func (u *uiState) chooseColumn(path string, header []string) {
	options := make([]string, len(header))
	selected := 0
	for i := range header {
		options[i] = columnChoiceLabel(header, i)
	}
	if idx, err := admatrix.ResolveTextColumn(header, u.cfg.TextColumn); err == nil {
		selected = idx
	}
	if len(options) == 1 {
		u.loadAds(path, options[0])
		return
	}
	choice := options[selected]
	sel := widget.NewSelect(options, func(v string) { choice = v })
	sel.SetSelected(choice)
	content := container.NewVBox(widget.NewLabel("Column holding the ad text"), sel)
	dialog.NewCustomConfirm("Select column", "Load", "Cancel", content, func(ok bool) {
		if ok {
			u.loadAds(path, choice)
		}
	}, u.w).Show()
}

func (u *uiState) loadAds(path, column string) {
	ads, err := admatrix.LoadAds(path, admatrix.InputOptions{TextColumn: column})
	if err != nil {
		dialog.ShowError(err, u.w)
		return
	}
	u.input.SetText(strings.Join(ads, "\n"))
	u.loaded = ads
	u.setStatus(fmt.Sprintf("Loaded %s (%d ads)", filepath.Base(path), len(ads)))
}

func (u *uiState) onLoadRules() {
	fd := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil || rc == nil {
			return
		}
		path := rc.URI().Path()
		rc.Close()
		if err := u.service.ReloadRules(path); err != nil {
			dialog.ShowError(err, u.w)
			return
		}
		u.updateRulesSummary()
	}, u.w)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".yaml", ".yml"}))
	fd.Show()
}
