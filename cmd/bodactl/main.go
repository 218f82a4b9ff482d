package main

import (
	"log"

	"github.com/SversusN/bodacious/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		log.Fatalln(err)
	}
}
