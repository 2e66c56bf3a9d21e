package main

import "babyjournal/cmd/journalctl/cmd"

func main() {
	cmd.Execute()
}
