package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"github.com/usekaneo/kaneo-sub002/tools/linters/enumvalidator"
)

func main() {
	singlechecker.Main(enumvalidator.Analyzer)
}
