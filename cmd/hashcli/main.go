package main

import "massnet.org/hashcore/cmd/hashcli/cmd"

func main() {
	cmd.Execute()
}
