package main

import "github.com/dmitrijs2005/bynderpress/internal/server"

func main() {
	server.Main()
}
