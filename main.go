package main

import (
	"os"

	"github.com/sariflens/sariflens/cmd"
)

func main() {
	code := cmd.Execute()
	os.Exit(code)
}
