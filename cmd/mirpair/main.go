// cmd/mirpair/main.go
package main

import (
	"mirpair/internal/app"
	"mirpair/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}
