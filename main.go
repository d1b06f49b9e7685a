// Package main is the entry point for the dupescan CLI.
package main

import "dupescan.dev/pkg/dupescan/cmd"

func main() {
	cmd.Execute()
}
