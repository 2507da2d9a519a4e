// Command guestbook runs the Nadifa Space guestbook in a terminal.
package main

import (
	"os"

	"github.com/nadifa/guestbook/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
