package main

import "blockcheck/cmd"

func main() {
	cmd.Execute()
}
