package main

import (
	"github.com/hhkbp2/freqgen"
	"github.com/hhkbp2/freqgen/binding"
)

func main() {
	binding.AddBindings()
	freqgen.Main()
}
