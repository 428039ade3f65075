// SPDX-FileCopyrightText: © 2025 Nfrastack <code@nfrastack.com>
//
// SPDX-License-Identifier: BSD-3-Clause

package cli

import (
	"fmt"
	"io"
)

// PrintUsage writes the help text for name to out.
func PrintUsage(out io.Writer, name string) {
	fmt.Fprintf(out, "USAGE: %s [options]\n\n", name)
	fmt.Fprintln(out, "Options:")
	fmt.Fprintln(out, "  -h, --help                  Print usage and exit")
	fmt.Fprintln(out, "  -v, --version               Print version and exit")
	fmt.Fprintln(out, "  -p, --prime <arg>           Find primes less than this number (default: 1,000,000)")
	fmt.Fprintln(out, "                              can be expressed as floating point (1.0e6)")
	fmt.Fprintln(out, "  -r, --rounds <n>            Run the sieve n times and report each round (default: 1)")
	fmt.Fprintln(out, "  -o, --format <fmt>          Output format: text, json, yaml (default: text)")
	fmt.Fprintln(out, "      --locale <tag>          Locale for thousands separators, or none (default: en-US)")
	fmt.Fprintln(out, "      --memory-limit <size>   auto, off, or a size like 2GiB (default: auto)")
	fmt.Fprintln(out, "  -c, --config-file <path>    YAML or JSON configuration file")
	fmt.Fprintln(out, "      --profile <name>        Profile to use from the configuration file")
	fmt.Fprintln(out, "      --log-level <level>     error, warn, info, verbose, debug, trace (default: info)")
	fmt.Fprintln(out, "      --log-timestamps        Enable timestamps in logs")
	fmt.Fprintln(out, "      --log-type <type>       console, file, both (default: console)")
	fmt.Fprintln(out, "      --log-file <path>       Log file for log-type file or both")
	fmt.Fprintln(out, "\nExamples:")
	fmt.Fprintf(out, "  %s -p 1000000\n", name)
	fmt.Fprintf(out, "  %s -p 1e10\n", name)
	fmt.Fprintf(out, "  %s -p 1e8 -r 5 -o json\n", name)
}
