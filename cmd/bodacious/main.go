package main

import (
	"log"

	"github.com/SversusN/bodacious/internal/app"
)

func main() {
	a := app.New()
	if err := a.Run(); err != nil {
		log.Fatalln("упали...", err)
	}
}
