/*
Copyright © 2025 The marchexec authors
SPDX-License-Identifier: Apache-2.0
*/

// Package cli implements the command-line interface of marchexec.
//
// # Overview
//
// marchexec is a transparent launcher: it resolves the requested program,
// checks for a machine-optimised variant in a march-suffixed sibling
// directory, and replaces its own process image with the chosen binary.
//
//	marchexec [-Vvs] [-l logfile] [-m march] [--dry-run [--format f]] prog [args...]
//
// # Flags
//
//	--march, -m     explicit march tag; wins over the config file and the
//	                kernel command line
//	--logfile, -l   log destination file (default: stderr)
//	--syslog, -s    duplicate error records to the systemd journal
//	--verbose, -v   cumulative verbosity (warn, info, debug)
//	--config        defaults file (default: /etc/marchexec.yaml)
//	--dry-run       print the resolution decision instead of executing
//	--format        dry-run output format: yaml, json, table
//	--version, -V   print version and exit
//
// # March precedence
//
// The effective march tag is the first of: the -m flag, the march value of
// the defaults file, the march= token on the kernel command line. If none
// is present the program runs unmodified.
//
// # Exit statuses
//
// On success there is no exit status: the process image is replaced. A
// command that cannot be found or exec'd yields 127, an interrupt during
// the launch window yields 3, and usage errors yield 2.
package cli
