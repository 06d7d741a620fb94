// Package ws streams view-model change notifications over websockets.
//
// A client connects to /ws, optionally with ?models=launcher,categories.
// It first receives one snapshot frame per model, then begin/end frames
// for every structural change and data frames for attribute changes.
// Frames carry projected rows so clients never query back mid-change.
// Every frame has a per-client sequence number.
package ws
