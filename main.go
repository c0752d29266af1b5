package main

import "github.com/theirongolddev/banktally/cmd"

func main() {
	cmd.Execute()
}
