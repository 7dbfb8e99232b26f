package ui

// Package ui builds the single-window Fyne interface: URL input, format
// choice, save dialog, progress bar, and the scrolling status log. It owns
// the coordinator's lifecycle callbacks and re-enables itself on every
// terminal event.
