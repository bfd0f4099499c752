// Package ui provides terminal output helpers for the quarry CLI.
package ui

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
)

var (
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan)
)

// PrintSuccess prints a success message.
func PrintSuccess(format string, a ...interface{}) {
	successColor.Printf("✔ "+format+"\n", a...)
}

// PrintError prints an error message.
func PrintError(format string, a ...interface{}) {
	errorColor.Printf("✘ "+format+"\n", a...)
}

// PrintWarning prints a warning message.
func PrintWarning(format string, a ...interface{}) {
	warningColor.Printf("! "+format+"\n", a...)
}

// PrintInfo prints an informational message.
func PrintInfo(format string, a ...interface{}) {
	infoColor.Printf(format+"\n", a...)
}

// Spinner starts a spinner with the given text. The caller stops it via
// the returned printer.
func Spinner(text string) *pterm.SpinnerPrinter {
	spinner, _ := pterm.DefaultSpinner.Start(text)
	return spinner
}

// MigrationTable renders applied and pending migration versions.
func MigrationTable(applied, pending []string) {
	data := pterm.TableData{{"Version", "Status"}}
	for _, v := range applied {
		data = append(data, []string{v, "applied"})
	}
	for _, v := range pending {
		data = append(data, []string{v, "pending"})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		fmt.Println("applied:", applied, "pending:", pending)
	}
}
