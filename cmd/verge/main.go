package main

import "github.com/vergeframework/verge/cli"

func main() {
	cli.Execute()
}
