package model

// Package model defines domain data structures used across the app: the job
// request, normalized progress events, and the format and phase enums.
// Structures are designed for direct binding in the UI and explicit state
// transitions.
