// Command table10 builds Table 10, prints it and writes it to tables/table10.md
// or the path given as the only argument.
package main

import (
	"os"

	"github.com/farxc/fastfood_minwage/internal/app"
)

func main() {
	os.Exit(app.RunTable(10, os.Args[1:], os.Stdout, app.Bootstrap()))
}
