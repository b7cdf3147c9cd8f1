package main

import "github.com/cobranza-network/cobranza/internal/cli"

func main() {
	cli.Execute()
}
