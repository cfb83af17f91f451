// cmd/tradesift/main.go
package main

import (
	cmd "github.com/tradesift/tradesift/internal/cli"
)

// main starts the tradesift CLI application by delegating to the
// cobra root command defined in the tradesift package. It does not
// take any arguments and does not return a value.
func main() {
	cmd.Execute()
}
