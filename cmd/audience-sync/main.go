package main

import "audience-sync/cmd"

func main() {
	cmd.Execute()
}
