package main

import "preset-manager/cmd"

func main() {
	cmd.Execute()
}
