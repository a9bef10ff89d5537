package main

import (
	"flag"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/vilass86/cardgame/internal/config"
)

var output = flag.String("o", "", "write the config to a file instead of stdout")

func main() {
	flag.Parse()

	out := os.Stdout
	if *output != "" {
		// refuse to clobber an existing config
		file, err := os.OpenFile(*output, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
		if err != nil {
			panic(err)
		}
		defer file.Close()

		out = file
	}

	if err := yaml.NewEncoder(out).Encode(config.DefaultConfig()); err != nil {
		panic(err)
	}
}
