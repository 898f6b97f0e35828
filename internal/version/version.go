// ABOUTME: Version constants for the loopline player
// ABOUTME: Identifies the product in logs and the TUI header
package version

const (
	// Product is the product name
	Product = "Loopline Player"

	// Manufacturer is the producing organization
	Manufacturer = "Loopline Audio"

	// Version is the software version
	Version = "0.1.0"
)
