package main

import "github.com/theirongolddev/crmd/cmd"

func main() {
	cmd.Execute()
}
