// Package gather provides a fan-out/fan-in pipeline for running independent,
// possibly-failing tasks concurrently and combining their outcomes.
//
// This package implements the error-multiplexing pipeline pattern: launch N
// tasks, fan their completions into one merged stream, drain that stream
// fully, and report either every value (in declaration order) or a single
// deterministic error.
//
// The main components include:
//
//   - Task: A unit of asynchronous work producing exactly one value or error
//   - Slot: A single-writer outcome cell guaranteeing exactly-once completion per task
//   - Worker: A goroutine wrapper that runs one Task and records its outcome into a Slot
//   - Merge: Fan-in of many Slot channels into one completion stream, closed behind a counting barrier
//   - All / Join2 / Join3: Launch, drain and combine; on failure the lowest-indexed task's error wins
//   - Stream: Direct access to the merged completion stream for incremental consumption
//
// Every entry point fully drains the merged stream before returning, so no
// task's goroutine is left blocked on an unread completion send. Failure
// reporting is deterministic: when several tasks fail, the error of the task
// with the lowest declaration index is reported regardless of which task
// finished first.
package gather
