// Command clipstudio is the terminal studio for the short-form content
// pipeline: it drives script generation, narration, imagery, motion, and
// final rendering against the backend service while tracking progress
// through a six-stage wizard session.
package main
