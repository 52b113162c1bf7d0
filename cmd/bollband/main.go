package main

import (
	"github.com/c9s/bollband/pkg/cmd"
)

func main() {
	cmd.Execute()
}
