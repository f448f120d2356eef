// Command table6 builds Table 6, prints it and writes it to tables/table6.md
// or the path given as the only argument.
package main

import (
	"os"

	"github.com/farxc/fastfood_minwage/internal/app"
)

func main() {
	os.Exit(app.RunTable(6, os.Args[1:], os.Stdout, app.Bootstrap()))
}
