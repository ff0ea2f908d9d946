// Package gui is the desktop front end: a window with language
// selectors, input/output text areas and a translate button, all
// delegating to the same facade the CLI uses.
package gui

import (
	"context"
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/MimeLyc/deepl-cli/internal/clipboard"
	"github.com/MimeLyc/deepl-cli/internal/config"
	"github.com/MimeLyc/deepl-cli/internal/deepl"
	"github.com/MimeLyc/deepl-cli/internal/segment"
	"github.com/MimeLyc/deepl-cli/internal/translator"
	"github.com/MimeLyc/deepl-cli/pkg/log"
)

const autoDetect = "Auto-detect"

// MainUI is the application window state.
type MainUI struct {
	window fyne.Window
	cfg    *config.Config
	trans  *translator.Translator
	board  clipboard.Board

	input        *widget.Entry
	output       *widget.Entry
	targetSelect *widget.Select
	sourceSelect *widget.Select
	translateBtn *widget.Button
	copyBtn      *widget.Button
	status       *widget.Label
}

// Run opens the main window and blocks until it is closed.
func Run(version string) error {
	cfg, err := config.New()
	if err != nil {
		return err
	}

	a := app.New()
	w := a.NewWindow("DeepL Translator " + version)

	ui := NewMainUI(w, cfg)
	w.SetContent(ui.Build())
	w.Resize(fyne.NewSize(900, 620))
	w.ShowAndRun()
	return nil
}

// NewMainUI creates the window state.
func NewMainUI(w fyne.Window, cfg *config.Config) *MainUI {
	return &MainUI{
		window: w,
		cfg:    cfg,
		board:  clipboard.System(),
	}
}

// Build assembles the widget tree.
func (ui *MainUI) Build() fyne.CanvasObject {
	ui.input = widget.NewMultiLineEntry()
	ui.input.SetPlaceHolder("Text to translate...")
	ui.input.Wrapping = fyne.TextWrapWord

	ui.output = widget.NewMultiLineEntry()
	ui.output.SetPlaceHolder("Translation appears here")
	ui.output.Wrapping = fyne.TextWrapWord

	codes := translator.Languages()
	ui.targetSelect = widget.NewSelect(codes, nil)
	ui.targetSelect.SetSelected(ui.defaultTarget())

	ui.sourceSelect = widget.NewSelect(append([]string{autoDetect}, codes...), nil)
	ui.sourceSelect.SetSelected(autoDetect)

	ui.translateBtn = widget.NewButton("Translate", ui.onTranslate)
	ui.copyBtn = widget.NewButton("Copy output", ui.onCopyOutput)

	ui.status = widget.NewLabel("")
	go ui.refreshUsage()

	langBar := container.NewHBox(
		widget.NewLabel("Source:"), ui.sourceSelect,
		widget.NewLabel("Target:"), ui.targetSelect,
		ui.translateBtn, ui.copyBtn,
	)

	split := container.NewVSplit(ui.input, ui.output)
	split.SetOffset(0.5)

	return container.NewBorder(langBar, ui.status, nil, nil, split)
}

func (ui *MainUI) defaultTarget() string {
	if t := strings.ToUpper(ui.cfg.DefaultTargetLang); translator.IsSupported(t) {
		return t
	}
	return "EN-US"
}

func (ui *MainUI) onTranslate() {
	text := ui.input.Text
	if strings.TrimSpace(text) == "" {
		ui.status.SetText("Nothing to translate")
		return
	}

	targetLang := ui.targetSelect.Selected
	sourceLang := ui.sourceSelect.Selected
	if sourceLang == autoDetect {
		sourceLang = ""
	}

	ui.translateBtn.Disable()
	ui.status.SetText(fmt.Sprintf("Translating to %s...", targetLang))

	go func() {
		trans, err := ui.translator()
		var translated string
		if err == nil {
			translated, err = segment.New(trans).TranslateLarge(
				context.Background(), text, targetLang, sourceLang, ui.cfg.SegmentSize)
		}

		fyne.Do(func() {
			ui.translateBtn.Enable()
			if err != nil {
				ui.status.SetText("Error: " + err.Error())
				return
			}
			ui.output.SetText(translated)
			ui.status.SetText("Done")
		})
	}()
}

func (ui *MainUI) onCopyOutput() {
	if ui.output.Text == "" {
		ui.status.SetText("Nothing to copy")
		return
	}
	if !ui.board.Available() {
		ui.status.SetText("Clipboard not available on this system")
		return
	}
	if err := ui.board.Write(ui.output.Text); err != nil {
		ui.status.SetText("Error: " + err.Error())
		return
	}
	ui.status.SetText("Copied to clipboard")
}

// refreshUsage fetches account usage in the background for the status
// bar. Failures only log, the window stays usable for configuration.
func (ui *MainUI) refreshUsage() {
	trans, err := ui.translator()
	if err != nil {
		log.Warn("Usage unavailable: %v", err)
		fyne.Do(func() { ui.status.SetText("API key not configured") })
		return
	}

	usage, err := trans.Usage(context.Background())
	if err != nil {
		log.Warn("Usage unavailable: %v", err)
		return
	}
	fyne.Do(func() {
		ui.status.SetText(fmt.Sprintf("API usage: %d / %d characters (%.1f%%)",
			usage.CharactersUsed, usage.CharacterLimit, usage.PercentageUsed))
	})
}

func (ui *MainUI) translator() (*translator.Translator, error) {
	if ui.trans != nil {
		return ui.trans, nil
	}

	apiKey := ui.cfg.ResolveAPIKey("")
	if apiKey == "" {
		return nil, fmt.Errorf("no API key found, set DEEPL_API_KEY")
	}

	client, err := deepl.NewClient(apiKey, deepl.WithBaseURL(ui.cfg.APIURL))
	if err != nil {
		return nil, err
	}
	ui.trans = translator.New(client)
	return ui.trans, nil
}
