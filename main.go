package main

import "media-cutter/cmd"

func main() {
	cmd.Execute()
}
