package main

import "github.com/Bitlatte/quill/cmd"

func main() {
	cmd.Execute()
}
