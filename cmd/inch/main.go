package main

import "github.com/inchgenetics/inch"

func main() {
	inch.Main()
}
