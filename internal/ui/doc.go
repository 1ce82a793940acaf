// Package ui renders command results for the xvgu CLI.
//
// Three output formats are supported:
//
//   - text: the plain confirmation lines ("OK", "OK buzzer OFF", "RAW: <hex>")
//     that scripts parse. This is the default.
//   - styled: Lipgloss result boxes, with troubleshooting tips on failure.
//   - json: one JSON object per result.
//
// Errors always go to the error writer. In text mode they are printed as
// "Error: <Kind>: message".
//
// # Countdown
//
// CountdownWaiter shows a Bubble Tea progress bar while a timed buzzer is
// sounding. It only renders to a terminal; callers fall back to a plain sleep
// otherwise. The wait cannot be cut short: if the program stops early the
// remainder is slept.
//
// # Logging Integration
//
// Logging is controlled by the XVGU_LOG_LEVEL environment variable. When it
// is unset zap is silent and only this package writes to the terminal.
package ui
