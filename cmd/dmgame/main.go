package main

import (
	"github.com/kmuir/dirtyminds-go/internal/cli"
)

func main() {
	cli.Execute()
}
