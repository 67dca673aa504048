package main

import "questboss/cmd/qb/root"

func main() {
	root.Execute()
}
