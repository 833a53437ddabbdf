package main

import "github.com/VoxDroid/lnchr/cmd"

func main() {
	cmd.Execute()
}
