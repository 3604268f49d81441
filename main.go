package main

import "serverlister/cmd"

func main() {
	cmd.Execute()
}
