package main

import (
	"log"
	"os"

	"github.com/sthagen/RedHatProductSecurity-cvelib/pkg"
)

var (
	version = "1.1.0"
)

func main() {
	app := pkg.NewApp(version)
	err := app.Run(os.Args)
	if err != nil {
		log.Fatalf("%+v", err)
	}
}
