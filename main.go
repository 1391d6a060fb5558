package main

import "github.com/preeja73/robocurrent/cmd"

func main() {
	cmd.Execute()
}
