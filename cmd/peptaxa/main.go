// cmd/peptaxa/main.go
package main

import (
	"peptaxa/internal/app"
	"peptaxa/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}
