package main

import "github.com/keyfs/keyfs/cmd/keyfs/cmd"

func main() {
	cmd.Execute()
}
