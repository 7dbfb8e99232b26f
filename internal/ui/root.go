package ui

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/media-saver/internal/config"
	"github.com/ytget/media-saver/internal/dispatch"
	"github.com/ytget/media-saver/internal/engine"
	"github.com/ytget/media-saver/internal/format"
	"github.com/ytget/media-saver/internal/job"
	"github.com/ytget/media-saver/internal/model"
	"github.com/ytget/media-saver/internal/platform"
)

// UI constants
const (
	FormatOptionVideo = "Video (MP4)"
	FormatOptionAudio = "Audio (MP3)"

	DefaultFileName = "download"
	ReadyStatus     = "Ready"
	SettingsIcon    = "⚙"
)

// RootUI represents the main UI structure
type RootUI struct {
	window      fyne.Window
	settings    *config.Settings
	coordinator *job.Coordinator

	urlEntry    *widget.Entry
	formatRadio *widget.RadioGroup
	downloadBtn *widget.Button
	progressBar *widget.ProgressBar
	statusLog   *widget.Entry

	// destination of the in-flight job, for reveal on completion
	pendingPath string
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, app fyne.App, eng engine.Engine) *RootUI {
	settings := config.NewSettings(app)

	if err := platform.CreateDirectoryIfNotExists(settings.GetSaveDirectory()); err != nil {
		log.Printf("Failed to ensure save dir: %v", err)
	}

	ui := &RootUI{
		window:   window,
		settings: settings,
	}

	// All four lifecycle callbacks arrive through the Fyne dispatcher, so
	// the handlers below may touch widgets directly.
	ui.coordinator = job.NewCoordinator(eng, dispatch.Fyne(), job.Callbacks{
		OnStatus:   ui.onStatus,
		OnProgress: ui.onProgress,
		OnError:    ui.onError,
		OnComplete: ui.onComplete,
	})

	ui.setupUI()
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.urlEntry = widget.NewEntry()
	ui.urlEntry.SetPlaceHolder("Paste a media URL")
	ui.urlEntry.Validator = ui.validateURL
	ui.urlEntry.OnSubmitted = func(string) {
		ui.onDownloadClick()
	}

	ui.formatRadio = widget.NewRadioGroup([]string{FormatOptionVideo, FormatOptionAudio}, nil)
	ui.formatRadio.Horizontal = true
	ui.formatRadio.SetSelected(optionForFormat(ui.settings.GetOutputFormat()))

	ui.downloadBtn = widget.NewButton("Download", ui.onDownloadClick)
	ui.downloadBtn.Importance = widget.HighImportance

	settingsBtn := widget.NewButton(SettingsIcon, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	ui.progressBar = widget.NewProgressBar()

	ui.statusLog = widget.NewMultiLineEntry()
	ui.statusLog.Wrapping = fyne.TextWrapWord
	ui.statusLog.Disable()
	ui.appendLog(ReadyStatus)

	urlRow := container.NewBorder(nil, nil, settingsBtn, ui.downloadBtn, ui.urlEntry)
	formatRow := container.NewHBox(widget.NewLabel("Save as:"), ui.formatRadio)
	top := container.NewVBox(urlRow, formatRow)
	bottom := container.NewVBox(widget.NewSeparator(), ui.progressBar)

	content := container.NewBorder(
		top,    // top
		bottom, // bottom
		nil,    // left
		nil,    // right
		container.NewScroll(ui.statusLog),
	)

	ui.window.SetContent(content)
}

// validateURL validates the entered URL
func (ui *RootUI) validateURL(input string) error {
	if strings.TrimSpace(input) == "" {
		return nil // Empty is allowed
	}

	parsedURL, err := url.Parse(input)
	if err != nil {
		return err
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("URL must start with http:// or https://")
	}

	return nil
}

// selectedFormat maps the radio selection to the output format enum
func (ui *RootUI) selectedFormat() model.OutputFormat {
	if ui.formatRadio.Selected == FormatOptionAudio {
		return model.FormatAudio
	}
	return model.FormatVideo
}

// optionForFormat maps an output format to its radio label
func optionForFormat(f model.OutputFormat) string {
	if f == model.FormatAudio {
		return FormatOptionAudio
	}
	return FormatOptionVideo
}

// onDownloadClick validates input, asks for a save location, and starts the job
func (ui *RootUI) onDownloadClick() {
	urlText := strings.TrimSpace(ui.urlEntry.Text)
	if urlText == "" {
		ui.appendLog("Please enter a URL")
		widget.ShowPopUp(widget.NewLabel("Please enter a URL"), ui.window.Canvas())
		return
	}
	if err := ui.validateURL(urlText); err != nil {
		ui.appendLog("Invalid URL: " + err.Error())
		widget.ShowPopUp(widget.NewLabel("Invalid URL: "+err.Error()), ui.window.Canvas())
		return
	}

	outputFormat := ui.selectedFormat()
	policy, err := format.Resolve(outputFormat)
	if err != nil {
		dialog.ShowError(err, ui.window)
		return
	}

	saveDialog := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, ui.window)
			return
		}
		if writer == nil {
			return // cancelled
		}

		destination := writer.URI().Path()
		writer.Close()

		ui.startJob(urlText, destination, outputFormat)
	}, ui.window)

	saveDialog.SetFileName(DefaultFileName + policy.DefaultExtension)
	saveDialog.SetFilter(storage.NewExtensionFileFilter(filterExtensions(policy.FileFilters)))
	if lister, err := storage.ListerForURI(storage.NewFileURI(ui.settings.GetSaveDirectory())); err == nil {
		saveDialog.SetLocation(lister)
	}
	saveDialog.Show()
}

// startJob hands the request to the coordinator and locks the input row
func (ui *RootUI) startJob(urlText, destination string, f model.OutputFormat) {
	ui.settings.SetSaveDirectory(filepath.Dir(destination))
	ui.settings.SetOutputFormat(f)
	ui.pendingPath = destination

	ui.setBusy(true)
	if err := ui.coordinator.Start(urlText, destination, f); err != nil {
		log.Printf("Start rejected: %v", err)
		ui.appendLog("Cannot start: " + err.Error())
		widget.ShowPopUp(widget.NewLabel("Cannot start: "+err.Error()), ui.window.Canvas())
		ui.setBusy(false)
	}
}

// setBusy toggles the input widgets while a job is in flight
func (ui *RootUI) setBusy(busy bool) {
	if busy {
		ui.downloadBtn.Disable()
		ui.urlEntry.Disable()
		ui.formatRadio.Disable()
		return
	}
	ui.downloadBtn.Enable()
	ui.urlEntry.Enable()
	ui.formatRadio.Enable()
}

// appendLog adds one line to the scrolling status log
func (ui *RootUI) appendLog(message string) {
	ui.statusLog.SetText(ui.statusLog.Text + message + "\n")
	ui.statusLog.CursorRow = len(strings.Split(ui.statusLog.Text, "\n"))
}

// onStatus handles status updates from the coordinator
func (ui *RootUI) onStatus(message string) {
	ui.appendLog(message)
}

// onProgress handles progress updates from the coordinator
func (ui *RootUI) onProgress(percent int) {
	ui.progressBar.SetValue(float64(percent) / 100)
}

// onError handles the failure terminal event; the UI must always come back
// to a state where the user can retry
func (ui *RootUI) onError(message string) {
	ui.appendLog("Error: " + message)
	dialog.ShowError(errors.New(message), ui.window)
	ui.setBusy(false)
}

// onComplete handles the success terminal event
func (ui *RootUI) onComplete(message string) {
	ui.appendLog(message)

	fyne.CurrentApp().SendNotification(&fyne.Notification{
		Title:   "Download complete",
		Content: ui.pendingPath,
	})

	if ui.settings.GetAutoRevealOnComplete() && ui.pendingPath != "" {
		if err := platform.OpenFileInManager(ui.pendingPath); err != nil {
			log.Printf("Failed to reveal %s: %v", ui.pendingPath, err)
		}
	}

	ui.setBusy(false)
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	ShowSettingsDialog(ui.window, ui.settings)
}

// filterExtensions converts policy file patterns to dialog extensions,
// dropping the catch-all pattern which Fyne expresses as no filter
func filterExtensions(filters []format.Filter) []string {
	var exts []string
	for _, f := range filters {
		if f.Pattern == "*.*" {
			continue
		}
		exts = append(exts, strings.TrimPrefix(f.Pattern, "*"))
	}
	return exts
}
