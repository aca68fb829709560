package main

import "github.com/dzjyyds666/cifq/cmd"

func main() {
	cmd.Execute()
}
