package main

import "rule-sync/cmd"

func main() {
	cmd.Execute()
}
