package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/media-saver/internal/config"
	"github.com/ytget/media-saver/internal/model"
)

// ShowSettingsDialog displays the settings configuration dialog
func ShowSettingsDialog(window fyne.Window, settings *config.Settings) {
	saveDirEntry := widget.NewEntry()
	saveDirEntry.SetText(settings.GetSaveDirectory())

	browseBtn := widget.NewButton("Browse", func() {
		dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
			if err != nil || uri == nil {
				return
			}
			saveDirEntry.SetText(uri.Path())
		}, window)
	})
	saveDirRow := container.NewBorder(nil, nil, nil, browseBtn, saveDirEntry)

	formatOptions := []string{}
	for _, f := range settings.GetOutputFormatOptions() {
		formatOptions = append(formatOptions, f.String())
	}
	formatSelect := widget.NewSelect(formatOptions, nil)
	formatSelect.SetSelected(settings.GetOutputFormat().String())

	autoRevealCheck := widget.NewCheck("Reveal file when download finishes", nil)
	autoRevealCheck.SetChecked(settings.GetAutoRevealOnComplete())

	form := container.NewVBox(
		widget.NewLabel("Save Location:"),
		saveDirRow,

		widget.NewLabel("Default Format:"),
		formatSelect,

		widget.NewSeparator(),
		autoRevealCheck,
	)

	settingsDialog := dialog.NewCustomConfirm(
		"Settings",
		"Save",
		"Cancel",
		form,
		func(confirmed bool) {
			if !confirmed {
				return
			}

			if saveDirEntry.Text != "" {
				settings.SetSaveDirectory(saveDirEntry.Text)
			}
			if formatSelect.Selected != "" {
				settings.SetOutputFormat(model.OutputFormat(formatSelect.Selected))
			}
			settings.SetAutoRevealOnComplete(autoRevealCheck.Checked)
		},
		window,
	)

	settingsDialog.Resize(fyne.NewSize(420, 280))
	settingsDialog.Show()
}
