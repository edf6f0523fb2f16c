//go:build unix

// cmd/peptaxa-viz/main.go
package main

import (
	"peptaxa/internal/appshell"
	"peptaxa/internal/vizapp"
)

func main() {
	appshell.Main(vizapp.RunContext)
}
