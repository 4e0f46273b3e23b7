package main

import (
	"fmt"
	"os"

	"github.com/tasaronina/MyDiary/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		if cli.IsNotFound(err) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
