package main

import (
	"fmt"
	"os"

	"yashubustudio/admatrix/internal/app"
)

func main() {
	if err := app.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "admatrix: %v\n", err)
		os.Exit(1)
	}
}
