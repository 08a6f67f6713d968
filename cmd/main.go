package main

import "github.com/dyike/stockinfo/internal/cli"

func main() {
	cli.Run()
}
