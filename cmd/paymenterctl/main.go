package main

import (
	"fmt"
	"os"

	"github.com/ckyuri/Paymenter-Install-Script/internal/paymenter"
	"github.com/ckyuri/Paymenter-Install-Script/internal/tui"
)

func main() {
	var err error
	if len(os.Args) < 2 {
		err = tui.StartMenu()
	} else {
		err = paymenter.Run(os.Args[1:])
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
