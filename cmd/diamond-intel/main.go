// Command diamond-intel runs the brokerage ledger server and its maintenance
// commands.
package main

import "github.com/prajan97/diamond-intel/internal/cli"

func main() {
	cli.Execute()
}
