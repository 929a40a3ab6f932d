// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for picking and fetching a track:
//  1. [ResultListView] : Browse catalog search results for the query
//  2. [ConfirmView] : Confirm the download
//  3. [DownloadView] : Wait while the audio streams to disk
//  4. [ResultView] : Display the output path or the failure
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, y/n, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
