// Package assemble turns candidate groups into finished attachments.
//
// Plan fixes the AV-sync policy and the output index of every group before
// any worker starts, so filenames are deterministic and collision-free.
// The Assembler drives the external media engine for one task at a time;
// the Scheduler runs assemblers across a bounded pool with per-task
// failure isolation.
package assemble
