// Package services implements the driving port interfaces.
// Services contain the pipeline logic: ingestion, retrieval, transcript
// segmentation and store maintenance. They orchestrate calls to driven
// ports (adapters) and hold no storage of their own.
package services
