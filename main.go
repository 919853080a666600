package main

import "github.com/avelasqz/library-management/cmd"

func main() {
	cmd.Execute()
}
