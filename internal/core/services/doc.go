// Package services implements the driving port interfaces.
// Services contain the core projection logic and orchestrate
// calls to driven ports (adapters).
//
// Services only reach files through driven ports.
package services
