// SPDX-License-Identifier: MPL-2.0

// Package platform holds portability checks for names that end up on disk.
// Model names become file stems (gwf1.dis) and package filenames are written
// verbatim, so both must avoid names Windows reserves.
package platform
