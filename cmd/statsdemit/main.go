package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "statsdemit: %v\n", err)
		os.Exit(1)
	}
}
