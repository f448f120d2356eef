// Command table4 builds Table 4, prints it and writes it to tables/table4.md
// or the path given as the only argument.
package main

import (
	"os"

	"github.com/farxc/fastfood_minwage/internal/app"
)

func main() {
	os.Exit(app.RunTable(4, os.Args[1:], os.Stdout, app.Bootstrap()))
}
