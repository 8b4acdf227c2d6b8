package main

import "github.com/ppiankov/phoneinput/internal/cli"

func main() {
	cli.Execute()
}
