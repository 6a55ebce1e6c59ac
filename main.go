package main

import "github.com/user/fraudscope/cmd"

func main() {
	cmd.Execute()
}
