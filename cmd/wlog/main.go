package main

import (
	"github.com/bmcalindin/wlog/internal/cli"
)

func main() {
	cli.Execute()
}
