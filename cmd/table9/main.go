// Command table9 builds Table 9, prints it and writes it to tables/table9.md
// or the path given as the only argument.
package main

import (
	"os"

	"github.com/farxc/fastfood_minwage/internal/app"
)

func main() {
	os.Exit(app.RunTable(9, os.Args[1:], os.Stdout, app.Bootstrap()))
}
