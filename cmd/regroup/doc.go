// Command regroup reassembles original media posts from fragmented,
// unlabeled download artifacts.
//
// Given a set of input files it probes each with ffprobe, groups streams
// that belong to the same original by duration and timestamp proximity,
// remuxes the best audio/video pair of every group with ffmpeg, renders a
// thumbnail per output, and prints a JSON report of the results to stdout.
package main
