package main

import (
	"context"
	"fmt"
	"os"

	"github.com/gear6io/protoreg/cli"
	"github.com/gear6io/protoreg/pkg/errors"
)

func main() {
	if err := cli.ExecuteWithContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, errors.FormatError(err))
		os.Exit(1)
	}
}
