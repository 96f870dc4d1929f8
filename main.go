package main

import "github.com/theirongolddev/spend/cmd"

func main() {
	cmd.Execute()
}
