package main

import "github.com/wkhere/tarantool/cmd"

func main() {
	cmd.Execute()
}
