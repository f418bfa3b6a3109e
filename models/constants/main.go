package constants

/*
	Defines a set of base level
	constants and enums to be used
	throughout the Beacon and its
	associated services.
*/
type AssemblyId string
type ExistsPolicy string
type StoreBackend string
