package main

import (
	"os"

	"github.com/rtchallenge/installdeps/cmd/install-deps/internal"
)

func main() {
	os.Exit(internal.Execute())
}
