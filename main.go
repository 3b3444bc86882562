// Copyright 2020 Nokia
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package main

import "github.com/certree/certree/cmd"

func main() {
	cmd.Execute()
}
