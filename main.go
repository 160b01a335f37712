package main

import "farewatch/cmd"

func main() {
	cmd.Execute()
}
