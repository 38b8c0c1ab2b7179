// Package updater checks GitHub Releases for a newer build of the workflow.
// Results are cached in the data directory for a day so the "check for
// updates" row answers instantly on repeat visits. Installing the update is
// left to Alfred, which opens the downloaded .alfredworkflow bundle.
package updater
