package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("start")
	os.Exit(1) // want "direct os.Exit call in main function"
}

func helper() {
	os.Exit(2)
}
