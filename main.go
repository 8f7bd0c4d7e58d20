package main

import "zhi-theme/cmd"

func main() {
	cmd.Execute()
}
