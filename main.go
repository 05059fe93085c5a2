package main

import "openwith/cmd"

func main() {
	cmd.Execute()
}
