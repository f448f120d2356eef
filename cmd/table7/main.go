// Command table7 builds Table 7, prints it and writes it to tables/table7.md
// or the path given as the only argument.
package main

import (
	"os"

	"github.com/farxc/fastfood_minwage/internal/app"
)

func main() {
	os.Exit(app.RunTable(7, os.Args[1:], os.Stdout, app.Bootstrap()))
}
