/*
The lighthouse command reports how many delivered bytes of each script resource never executed.

	Usage: lighthouse [flags] -har network.har coverage1.json coverage2.json ...

The command joins precise-coverage dumps captured from the profiler against a
HAR network log, decomposes the nested coverage ranges of every script into
non-double-counted used/unused byte totals, and prints the potential savings
per resource.

# How it works

For each coverage sample file:
 1. Parses the profiler dump into per-script function/range records
 2. Joins each script to the network record with the exact same URL;
    scripts never observed on the wire are dropped
 3. Flattens and sorts the ranges, then decomposes them into used and
    unused byte counts, with nested ranges counted exactly once
 4. Applies the unused ratio to the delivered transfer size

Samples of the same URL (duplicate navigations, re-instrumentation) are
deduplicated, keeping the reading with the smaller waste. Resources whose
potential savings are at or below the ignore threshold are not reported.

# Example

Audit a page captured with two navigation samples:

	$ lighthouse -har network.har nav1.coverage.json nav2.coverage.json

# Flags

The -har flag names the HAR network log to join coverage against (required).

The -threshold flag sets the ignore threshold in bytes (default 2048).
Resources whose potential savings are at or below it are dropped.

The -config flag names a YAML config file. Explicit flags override its values.

The -json flag outputs results in JSON format.

The -debug flag enables verbose debug output.

# Caveat

The waste ratio is measured over source byte offsets but applied to the
network transfer size, which is usually compressed. The reported savings are
therefore an approximation of wasted delivered bytes, not an exact count.
*/
package main
