package main

import "github.com/halu23489/genba/internal/cli"

func main() {
	cli.Execute()
}
