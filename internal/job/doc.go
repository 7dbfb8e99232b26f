package job

// Package job contains the download coordinator: the stateful owner of the
// single in-flight job. It accepts start requests on the presentation
// thread, runs the blocking fetch and post-process pipeline on a detached
// worker goroutine, and drives the four lifecycle callbacks through the
// dispatch boundary.
