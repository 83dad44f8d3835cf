package main

import (
	"github.com/nvkv/credstore/cmd/credstore/cmd"
)

func main() {
	cmd.Execute()
}
