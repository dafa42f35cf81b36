/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package static

import "embed"

// Static holds the stylesheet and the history form script served under
// /static.
//
//go:embed *.css *.js
var Static embed.FS
