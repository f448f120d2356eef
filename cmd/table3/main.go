// Command table3 builds Table 3, prints it and writes it to tables/table3.md
// or the path given as the only argument.
package main

import (
	"os"

	"github.com/farxc/fastfood_minwage/internal/app"
)

func main() {
	os.Exit(app.RunTable(3, os.Args[1:], os.Stdout, app.Bootstrap()))
}
