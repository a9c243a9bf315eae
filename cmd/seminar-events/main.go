package main

import "github.com/sbruckner/seminar-events/internal/cli"

func main() {
	cli.Execute()
}
