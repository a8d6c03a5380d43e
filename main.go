package main

import "gossipsim/cmd"

func main() {
	cmd.Execute()
}
