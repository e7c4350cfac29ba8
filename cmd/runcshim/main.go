// SPDX-License-Identifier: MPL-2.0

// runcshim is a supervisor for OCI runtime containers. The binary's
// subcommands expose the runtime's query surface for operators; the
// lifecycle surface is consumed programmatically through the internal
// packages.
package main

func main() {
	Execute()
}
