package models

// Region codes used to partition visibility.
const (
	RegionMENA   = "MENA"
	RegionEU     = "EU"
	RegionNA     = "NA"
	RegionSA     = "SA"
	RegionAPAC   = "APAC"
	RegionSSA    = "SSA"
	RegionGlobal = "GLOBAL"
)

// CustomerRegions are the regions customers and cases live in.
var CustomerRegions = []string{RegionMENA, RegionEU, RegionNA, RegionSA, RegionAPAC, RegionSSA}

// FilterAll is the reserved filter value meaning "no restriction".
const FilterAll = "all"
