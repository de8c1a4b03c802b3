package main

import "github.com/samirrijal/maplink/cmd/maplink/command"

func main() {
	command.Execute()
}
