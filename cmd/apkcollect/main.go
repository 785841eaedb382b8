package main

import "apkcollect/cmd/apkcollect/cmd"

func main() {
	cmd.Execute()
}
