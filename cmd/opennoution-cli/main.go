package main

import (
	"github.com/joho/godotenv"

	"opennoution/cmd/opennoution-cli/cmd"
)

func main() {
	_ = godotenv.Load()
	cmd.Execute()
}
