// Package tasks drives multi-request operations against YouTube Music with real-time progress reporting.
//
// # Collection
//
// [Collector.Collect] fetches the first page of a browse id and [Collector.Run] follows continuation tokens:
//
//  1. Each page is parsed with the extract package, merged into the running diagnostics and de-duplicated by video id
//  2. A continuation that fails as an invalid argument is resent once with the originating browse id
//  3. The loop ends when the token runs out, the track or page ceiling is reached, or two consecutive pages
//     yield no tracks
//  4. A run that finds nothing is repeated once against the id with the "VL" prefix toggled (LM and VLLM),
//     except for the liked videos feed
//
// Continuation fetches wait on a [rate.Limiter] so long runs can be throttled.
//
// # Bulk Export
//
// [Collector.BulkExport] collects several playlists one after another and hands the results to a small
// worker pool that writes them with the formatter package, then writes a manifest.
//
// # Progress Reporting
//
// All operations accept an optional channel of [ProgressUpdate] values.
// Updates use select with default to prevent blocking.
package tasks
