// Command table2 builds Table 2, prints it and writes it to tables/table2.md
// or the path given as the only argument.
package main

import (
	"os"

	"github.com/farxc/fastfood_minwage/internal/app"
)

func main() {
	os.Exit(app.RunTable(2, os.Args[1:], os.Stdout, app.Bootstrap()))
}
