package main

import "github.com/nfrund/roster/cmd/roster-cli/cmd"

func main() {
	cmd.Execute()
}
