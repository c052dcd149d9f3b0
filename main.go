package main

import "streamgate/cmd"

func main() {
	cmd.Execute()
}
