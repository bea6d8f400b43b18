// Package midas harvests the MIDAS Open archive of UK hourly weather
// observations from the CEDA data catalog. It resolves the catalog
// hierarchy (county → station → quality-controlled folder → data files),
// downloads the CSV files it finds, and parses them into a local
// station and observation database.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, http/).
package midas
