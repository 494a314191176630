package main

import (
	"fmt"
	"os"
)

// @title           Portfolio Site API
// @version         1.0
// @description     JSON API behind the portfolio page: contact form, theme preference and content.
// @host            localhost:8080
// @BasePath        /v1
func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
