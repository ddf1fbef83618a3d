package main

import (
	"os"

	"github.com/abdidvp/archguard/internal/adapters/inbound/cli"
)

func main() {
	os.Exit(cli.Execute())
}
