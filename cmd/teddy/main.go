package main

import "teddy/cmd/teddy/root"

func main() {
	root.Execute()
}
