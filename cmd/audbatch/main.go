// SPDX-License-Identifier: EPL-2.0

// Command audbatch converts a tree of audio files to PCM WAV, optionally
// trimming silence and normalizing loudness on the way.
//
// Usage:
//
//	audbatch ~/Music -o ~/Processed -t -n -j 4
package main

func main() {
	Execute()
}
