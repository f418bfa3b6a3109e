package errors

import (
	"beacon/api/models/dtos"
)

/*
	Utility functions to facillitate returning Beacon error responses to HTTP clients
*/

const (
	MissingParameter = "MissingParameter"
	InvalidParameter = "InvalidParameter"
	UpstreamFault    = "UpstreamFault"
	Timeout          = "Timeout"
)

// -- Simplest: 1 error with name and description
func CreateQueryValidationError(beaconId string, query map[string]interface{}, name string, description string) dtos.BeaconErrorResponseDto {
	return dtos.BeaconErrorResponseDto{
		Beacon: beaconId,
		Query:  query,
		Error: dtos.BeaconError{
			Name:        name,
			Description: description,
		},
	}
}
func CreateUpstreamFault(beaconId string, query map[string]interface{}, description string) dtos.BeaconErrorResponseDto {
	return dtos.BeaconErrorResponseDto{
		Beacon: beaconId,
		Query:  query,
		Error: dtos.BeaconError{
			Name:        UpstreamFault,
			Description: description,
		},
	}
}
func CreateTimeout(beaconId string, query map[string]interface{}) dtos.BeaconErrorResponseDto {
	return dtos.BeaconErrorResponseDto{
		Beacon: beaconId,
		Query:  query,
		Error: dtos.BeaconError{
			Name:        Timeout,
			Description: "the variant store did not answer in time",
		},
	}
}

// --
