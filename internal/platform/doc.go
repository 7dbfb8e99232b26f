package platform

// Package platform contains OS/platform integration glue: filesystem
// helpers and OS-native open/reveal of the saved file.
