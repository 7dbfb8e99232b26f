package main

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/ytget/media-saver/internal/engine"
	"github.com/ytget/media-saver/internal/ui"
)

func main() {
	// Create new Fyne app
	myApp := app.NewWithID("com.ytget.media-saver")
	myWindow := myApp.NewWindow("Media Saver")
	myWindow.Resize(fyne.NewSize(600, 420))

	// Create and setup UI
	ui.NewRootUI(myWindow, myApp, engine.NewClient())

	// Show and run
	myWindow.ShowAndRun()
}
