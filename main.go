package main

import "gittrack/cmd"

func main() {
	cmd.Execute()
}
