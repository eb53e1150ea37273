// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/mfsim/mfsim/cmd/mfsim"

func main() {
	cmd.Execute()
}
