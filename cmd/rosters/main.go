package main

import (
	"github.com/emmalilie/scouting-strategy-yr2526/internal/cli"
)

func main() {
	cli.Execute()
}
