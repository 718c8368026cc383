package main

import "ixtza/ajk/pagesim/cmd"

func main() {
	cmd.Execute()
}
