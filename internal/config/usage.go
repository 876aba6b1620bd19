package config

import (
	"flag"
	"fmt"
)

// setCustomUsage configures the flag set with a formatted usage function.
func setCustomUsage(fs *flag.FlagSet) {
	fs.Usage = func() {
		out := fs.Output()

		fmt.Fprintf(out, "\nssmul\n")
		fmt.Fprintf(out, "Arbitrary-precision integer multiplier.\n\n")
		fmt.Fprintf(out, "Usage:\n  %s [flags] X Y\n\n", fs.Name())
		fmt.Fprintf(out, "X and Y are integers in decimal, or with a 0x, 0o or 0b prefix.\n\nFlags:\n")

		fs.VisitAll(func(f *flag.Flag) {
			name, usage := flag.UnquoteUsage(f)
			flagSig := fmt.Sprintf("-%s", f.Name)
			if len(name) > 0 {
				flagSig += " " + name
			}

			fmt.Fprintf(out, "  %-25s %s", flagSig, usage)

			if f.DefValue != "" && f.DefValue != "0" && f.DefValue != "false" {
				fmt.Fprintf(out, " (default %s)", f.DefValue)
			}
			fmt.Fprintln(out)
		})
		fmt.Fprintln(out)
	}
}
