package main

import "github.com/piringsehat/piring-cli/cmd/piring"

func main() {
	piring.Execute()
}
