// Command table5 builds Table 5, prints it and writes it to tables/table5.md
// or the path given as the only argument.
package main

import (
	"os"

	"github.com/farxc/fastfood_minwage/internal/app"
)

func main() {
	os.Exit(app.RunTable(5, os.Args[1:], os.Stdout, app.Bootstrap()))
}
