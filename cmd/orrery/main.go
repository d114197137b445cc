package main

import "github.com/seren-space/orrery/cmd/orrery/cmd"

func main() {
	cmd.Execute()
}
