package main

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/ytget/media-saver/internal/engine"
	"github.com/ytget/media-saver/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.media-saver"
	AppName = "Media Saver"

	WindowWidth  = 600
	WindowHeight = 420
)

func main() {
	fmt.Printf("%s v%s starting...\n", AppName, version)

	myApp := app.NewWithID(AppID)

	windowTitle := fmt.Sprintf("%s v%s", AppName, version)
	myWindow := myApp.NewWindow(windowTitle)
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))
	myWindow.SetFixedSize(true)

	eng := engine.NewClient()

	// Create and setup UI
	ui.NewRootUI(myWindow, myApp, eng)

	// Show and run
	myWindow.ShowAndRun()
}
