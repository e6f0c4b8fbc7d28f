package main

import "a2t/cmd/a2t/cmd"

func main() {
	cmd.Execute()
}
