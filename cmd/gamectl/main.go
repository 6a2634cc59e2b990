package main

import "github.com/wh33les/HusbandsGames/internal/cli"

func main() {
	cli.Execute()
}
