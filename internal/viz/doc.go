// Package viz renders algorithm steps as styled terminal text.
//
// Every step family has a panel:
//
//   - [Styles.Bars]: vertical bars for array payloads, coloured by role
//     (compared, swapped, current, highlighted, sorted)
//   - [Styles.Graph]: current vertex, visited order, frontier, path, MST
//     edges and tentative distances
//   - [Styles.Match]: text and pattern aligned at the matcher's cursors
//   - [Styles.Table]: the DP table with the written cells marked
//
// [Styles.Step] picks the right panel for a step. Colours come from a
// [Theme]; five are built in.
package viz
