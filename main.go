package main

import "github.com/KaramelBytes/csvpeek-cli/cmd"

func main() {
	cmd.Execute()
}
